// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package ledger implements the in-memory account ledger.
//
// # Domain Types
//
// Accounts are created only through Registry.Create, which draws a unique
// account id, solicits and validates the auth code and reset keyword, and
// registers the account under its name:
//   - Registry - owns every Account and the set of issued ids
//   - Account - balance plus hashed credentials
//
// # Operations
//
// Every Account operation talks to the user through a Console. Operations
// that touch the balance first run the authentication challenge:
//   - Authenticate - the gate, returns an AuthResult
//   - CheckBalance, Deposit, Withdraw - gated balance operations
//   - ResetCredentials - keyword-authorised auth code replacement
//
// Errors returned by Account operations have already been reported to the
// Console; see IsReported.
package ledger
