// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// IDSource draws account id candidates. IntN returns a value in [0, n).
type IDSource interface {
	IntN(n int) int
}

type randSource struct{}

func (randSource) IntN(n int) int { return rand.IntN(n) } //nolint:gosec // ids are labels, not secrets

// drawsPerID bounds the number of candidates drawn per free id slot.
const drawsPerID = 64

// Registry owns every account and the set of issued ids.
type Registry struct {
	accounts map[string]*Account
	issued   map[int]struct{}

	console Console
	policy  Policy
	hasher  CodeHasher
	ids     IDSource
	logger  *slog.Logger
	metrics *Metrics
}

// RegistryOption configures a Registry during construction.
type RegistryOption func(*Registry)

// WithPolicy sets the ledger limits.
func WithPolicy(p Policy) RegistryOption {
	return func(r *Registry) {
		r.policy = p
	}
}

// WithHasher sets the auth code hasher.
func WithHasher(h CodeHasher) RegistryOption {
	return func(r *Registry) {
		r.hasher = h
	}
}

// WithIDSource sets the random source for account ids.
func WithIDSource(src IDSource) RegistryOption {
	return func(r *Registry) {
		r.ids = src
	}
}

// WithLogger sets the logger shared by the registry and its accounts.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithMetrics enables metrics recording.
func WithMetrics(m *Metrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry that talks to the user through console.
func NewRegistry(console Console, opts ...RegistryOption) (*Registry, error) {
	if console == nil {
		return nil, ErrNilConsole
	}
	r := &Registry{
		accounts: make(map[string]*Account),
		issued:   make(map[int]struct{}),
		console:  console,
		policy:   DefaultPolicy(),
		ids:      randSource{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.policy.Validate(); err != nil {
		return nil, err
	}
	if r.hasher == nil {
		r.hasher = NewArgon2idHasher()
	}
	return r, nil
}

// Create registers a new account under name. It draws a unique id, then
// solicits the auth code and reset keyword until both are well formed.
// Outcomes are reported to the console; nothing is registered on failure.
func (r *Registry) Create(ctx context.Context, name string) (*Account, int, error) {
	account, err := r.create(ctx, strings.TrimSpace(name))
	if err != nil {
		r.console.Report(ctx, "Account creation failed.\n"+UserMessage(err))
		r.metrics.RecordOperation(OpCreate, outcomeStatus(err))
		r.logger.InfoContext(ctx, "account creation failed", "code", Code(err))
		return nil, 0, markReported(err)
	}

	r.accounts[account.name] = account
	r.issued[account.id] = struct{}{}
	r.metrics.RecordOperation(OpCreate, StatusSuccess)
	r.metrics.SetAccounts(len(r.accounts))
	r.logger.InfoContext(ctx, "account created", "account_id", account.id)

	r.console.Report(ctx, fmt.Sprintf("Your ACN ID: %d\nAccount created successfully!", account.id))
	return account, account.id, nil
}

func (r *Registry) create(ctx context.Context, name string) (*Account, error) {
	if name == "" {
		return nil, ErrInvalidName()
	}
	if _, exists := r.accounts[name]; exists {
		return nil, ErrDuplicateAccount(name)
	}

	id, err := r.nextID()
	if err != nil {
		return nil, err
	}

	loop := promptLoop{operation: OpCreate, policy: r.policy, console: r.console, metrics: r.metrics}

	var code string
	codePrompt := fmt.Sprintf("Enter your auth code (%d digit integer): ", r.policy.CodeLength)
	err = loop.run(ctx, func(ctx context.Context) error {
		raw, err := r.console.RequestValue(ctx, codePrompt)
		if err != nil {
			return ErrFatal(OpCreate, err)
		}
		n, ok := parseCode(raw)
		if !ok {
			return ErrFatal(OpCreate, notANumber(raw))
		}
		if !hasDigits(n, r.policy.CodeLength) {
			return ErrMalformedCode(r.policy.CodeLength)
		}
		code = formatCode(n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var keyword string
	err = loop.run(ctx, func(ctx context.Context) error {
		raw, err := r.console.RequestValue(ctx, "Enter your reset keyword (letters only): ")
		if err != nil {
			return ErrFatal(OpCreate, err)
		}
		if !validKeyword(raw) {
			return ErrMalformedKeyword()
		}
		keyword = raw
		return nil
	})
	if err != nil {
		return nil, err
	}

	codeHash, err := r.hasher.Hash(code)
	if err != nil {
		return nil, ErrFatal(OpCreate, err)
	}

	return &Account{
		id:   id,
		name: name,
		creds: credentials{
			codeHash:    codeHash,
			codeLength:  r.policy.CodeLength,
			keywordHash: digestKeyword(keyword),
		},
		policy:  r.policy,
		console: r.console,
		hasher:  r.hasher,
		logger:  r.logger.With("account_id", id),
		metrics: r.metrics,
	}, nil
}

// nextID draws a random id that has never been issued.
func (r *Registry) nextID() (int, error) {
	space := r.policy.idSpace()
	free := space - len(r.issued)
	if free <= 0 {
		return 0, ErrFatal(OpCreate, oops.
			With("min_account_id", r.policy.MinAccountID).
			With("max_account_id", r.policy.MaxAccountID).
			Errorf("account id space %d-%d exhausted", r.policy.MinAccountID, r.policy.MaxAccountID))
	}

	draws := drawBudget(space, free)
	for range draws {
		id := r.policy.MinAccountID + r.ids.IntN(space)
		if _, taken := r.issued[id]; !taken {
			return id, nil
		}
	}
	return 0, ErrFatal(OpCreate, oops.With("draws", draws).Errorf("no free account id after %d draws", draws))
}

// drawBudget scales drawsPerID by how crowded the id space is, saturating at math.MaxInt.
func drawBudget(space, free int) int {
	ratio := space / free
	if ratio >= math.MaxInt/drawsPerID {
		return math.MaxInt
	}
	return drawsPerID * ratio
}

// Lookup returns the account registered under name.
func (r *Registry) Lookup(name string) (*Account, error) {
	name = strings.TrimSpace(name)
	account, ok := r.accounts[name]
	if !ok {
		return nil, ErrUnknownAccount(name)
	}
	return account, nil
}

// IssuedIDs returns every issued account id in ascending order.
func (r *Registry) IssuedIDs() []int {
	ids := make([]int, 0, len(r.issued))
	for id := range r.issued {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Find returns summaries of accounts whose name matches a glob pattern,
// ordered by id. An empty pattern matches every account.
func (r *Registry) Find(pattern string) ([]Summary, error) {
	var matcher glob.Glob
	if pattern = strings.TrimSpace(pattern); pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, ErrInvalidPattern(pattern, err)
		}
		matcher = g
	}

	out := make([]Summary, 0, len(r.accounts))
	for _, account := range r.accounts {
		if matcher != nil && !matcher.Match(account.name) {
			continue
		}
		out = append(out, account.Summary())
	}
	slices.SortFunc(out, func(a, b Summary) int { return a.ID - b.ID })
	return out, nil
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int {
	return len(r.accounts)
}
