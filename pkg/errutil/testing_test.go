// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"

	"github.com/holomush/holobank/pkg/errutil"
)

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	err := oops.Code("UNKNOWN_ACCOUNT").Errorf("test error")
	// Should not fail
	errutil.AssertErrorCode(t, err, "UNKNOWN_ACCOUNT")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("name", "Alice").Errorf("test error")
	// Should not fail
	errutil.AssertErrorContext(t, err, "name", "Alice")
}
