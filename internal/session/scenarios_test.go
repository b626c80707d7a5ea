// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package session_test

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/holobank/internal/command"
	"github.com/holomush/holobank/internal/command/handlers"
	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/internal/ledger/ledgertest"
	"github.com/holomush/holobank/internal/session"
)

// run plays script through a fresh bank and returns the transcript.
func run(ctx context.Context, idSource ledger.IDSource, script ...string) (string, *ledger.Registry, error) {
	out := &bytes.Buffer{}
	term := session.NewTerminal(strings.NewReader(strings.Join(script, "\n")+"\n"), out)

	reg, err := ledger.NewRegistry(term,
		ledger.WithHasher(ledgertest.CheapHasher()),
		ledger.WithIDSource(idSource),
	)
	Expect(err).NotTo(HaveOccurred())

	menu := command.NewRegistry()
	handlers.RegisterAll(menu)
	dispatcher, err := command.NewDispatcher(menu)
	Expect(err).NotTo(HaveOccurred())
	services, err := command.NewServices(reg)
	Expect(err).NotTo(HaveOccurred())

	s, err := session.New(term, dispatcher, services)
	Expect(err).NotTo(HaveOccurred())
	err = s.Run(ctx)
	return out.String(), reg, err
}

var createAlice = []string{"1", "Alice", "123456", "secret"}

func script(parts ...[]string) []string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

var _ = Describe("Banking session", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("money movement", func() {
		It("keeps the balance consistent across deposits and withdrawals", func() {
			out, reg, err := run(ctx, ledgertest.NewFixedIDs(0), script(
				createAlice,
				[]string{"2", "Alice", "500", "123456"},
				[]string{"3", "Alice", "600", "123456"},
				[]string{"3", "Alice", "500", "123456"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())

			Expect(out).To(ContainSubstring("Current Balance: 500"))
			Expect(out).To(ContainSubstring("Insufficient funds available in your bank account."))
			Expect(out).To(ContainSubstring("Rs. 500 withdrawn from your bank account.\nCurrent Balance: 0"))

			alice, err := reg.Lookup("Alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(alice.Balance()).To(BeZero())
		})

		DescribeTable("amount bounds",
			func(amount string, accepted bool) {
				out, reg, err := run(ctx, ledgertest.NewFixedIDs(0), script(
					createAlice,
					[]string{"2 Alice " + amount, "123456"},
					[]string{"5"},
				)...)
				Expect(err).NotTo(HaveOccurred())

				alice, err := reg.Lookup("Alice")
				Expect(err).NotTo(HaveOccurred())
				if accepted {
					Expect(alice.Balance()).To(BeNumerically(">", 0))
					Expect(out).To(ContainSubstring("deposited to your bank account"))
				} else {
					Expect(alice.Balance()).To(BeZero())
					Expect(out).To(ContainSubstring("Please enter a value within 1-999999."))
				}
			},
			Entry("zero", "0", false),
			Entry("one", "1", true),
			Entry("maximum", "999999", true),
			Entry("above maximum", "1000000", false),
			Entry("negative", "-5", false),
		)
	})

	Describe("authentication", func() {
		It("leaves the balance unchanged when the user cancels", func() {
			out, reg, err := run(ctx, ledgertest.NewFixedIDs(0), script(
				createAlice,
				[]string{"2", "Alice", "500", "0"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())

			Expect(out).To(ContainSubstring("Authentication interrupted by user!\nAuthentication failed. Access denied!"))
			alice, err := reg.Lookup("Alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(alice.Balance()).To(BeZero())
		})

		It("re-prompts after malformed and wrong codes", func() {
			out, _, err := run(ctx, ledgertest.NewFixedIDs(0), script(
				createAlice,
				[]string{"4", "Alice", "12345", "654321", "123456"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())

			Expect(out).To(ContainSubstring("Authentication code must be 6 digits long. Please re-enter!"))
			Expect(out).To(ContainSubstring("Invalid code entered. Please re-enter!"))
			Expect(out).To(ContainSubstring("Current Balance: 0\nNOTE: Zero balance detected!"))
		})
	})

	Describe("credential reset", func() {
		It("replaces the auth code after the keyword is proven", func() {
			out, _, err := run(ctx, ledgertest.NewFixedIDs(0), script(
				createAlice,
				[]string{"7", "Alice", "secrett", "secret", "1", "12345", "654321"},
				[]string{"4", "Alice", "123456", "654321"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())

			Expect(out).To(ContainSubstring("Invalid reset keyword received. Try again!"))
			Expect(out).To(ContainSubstring("Authentication code must be 6 digits long. Please re-enter!"))
			Expect(out).To(ContainSubstring("Auth code successfully changed!\nYour new auth code is 654321."))
			Expect(out).To(ContainSubstring("Invalid code entered. Please re-enter!"))
			Expect(out).To(ContainSubstring("Current Balance: 0"))
		})

		It("keeps the old code when the user does not confirm", func() {
			out, _, err := run(ctx, ledgertest.NewFixedIDs(0), script(
				createAlice,
				[]string{"7 Alice", "secret", "2"},
				[]string{"4 Alice", "123456"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())

			Expect(out).To(ContainSubstring("Auth code unchanged."))
			Expect(out).To(ContainSubstring("Current Balance: 0"))
		})

		It("cancels with q", func() {
			out, _, err := run(ctx, ledgertest.NewFixedIDs(0), script(
				createAlice,
				[]string{"reset Alice", "q"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Reset interrupted by user!"))
		})
	})

	Describe("account registry", func() {
		It("never issues the same id twice under forced collisions", func() {
			ids := ledgertest.NewFixedIDs(0, 0, 0, 1, 1, 2)
			out, reg, err := run(ctx, ids, script(
				createAlice,
				[]string{"1", "Bob", "111111", "bob"},
				[]string{"1", "Carol", "222222", "carol"},
				[]string{"6"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())

			Expect(reg.IssuedIDs()).To(Equal([]int{1111, 1112, 1113}))
			Expect(out).To(ContainSubstring("1111\n1112\n1113\n"))
		})

		It("rejects a duplicate holder name", func() {
			out, reg, err := run(ctx, ledgertest.NewFixedIDs(0, 1), script(
				createAlice,
				[]string{"1", "Alice"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())

			Expect(out).To(ContainSubstring(`An account named "Alice" already exists.`))
			Expect(reg.Len()).To(Equal(1))
		})

		It("filters the listing by holder pattern", func() {
			out, _, err := run(ctx, ledgertest.NewFixedIDs(0, 1), script(
				createAlice,
				[]string{"1", "Albert", "111111", "albert"},
				[]string{"6 Alb*"},
				[]string{"5"},
			)...)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("1112  Albert"))
			Expect(out).NotTo(ContainSubstring("1111  Alice"))
		})
	})

	Describe("session lifecycle", func() {
		It("ends quietly at end of input", func() {
			out, _, err := run(ctx, ledgertest.NewFixedIDs(0), "6")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HavePrefix(session.Banner))
			Expect(out).To(HaveSuffix("Program terminated!\n"))
		})

		It("terminates after repeated invalid choices", func() {
			out, _, err := run(ctx, ledgertest.NewFixedIDs(0), "8", "x", "0")
			Expect(err).To(HaveOccurred())
			Expect(ledger.Code(err)).To(Equal(session.CodeTooManyFailures))
			Expect(out).To(HaveSuffix("Terminating Program!\n"))
		})
	})
})
