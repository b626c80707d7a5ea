// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package command

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Registry manages menu option registration and lookup.
// Options resolve by menu key or by name. It is safe for concurrent access.
type Registry struct {
	byKey  map[string]CommandEntry
	byName map[string]string // lowercase name -> key
	mu     sync.RWMutex
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]CommandEntry),
		byName: make(map[string]string),
	}
}

// Register adds a menu option to the registry.
// If an option with the same key exists, it is overwritten and a warning is logged.
func (r *Registry) Register(entry CommandEntry) error {
	if err := ValidateMenuKey(entry.Key); err != nil {
		return err
	}
	if err := ValidateCommandName(entry.Name); err != nil {
		return err
	}
	if entry.Handler == nil {
		return ErrNilHandler(entry.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(entry.Name)
	if key, ok := r.byName[name]; ok && key != entry.Key {
		return ErrDuplicateName(entry.Name, key)
	}
	if existing, ok := r.byKey[entry.Key]; ok {
		slog.Warn("menu conflict: overwriting existing option",
			"key", entry.Key,
			"previous", existing.Name,
			"new", entry.Name)
		delete(r.byName, strings.ToLower(existing.Name))
	}

	r.byKey[entry.Key] = entry
	r.byName[name] = entry.Key
	return nil
}

// Get retrieves an option by menu key or case-insensitive name.
// Returns the entry and true if found, or zero value and false if not found.
func (r *Registry) Get(token string) (CommandEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.byKey[token]; ok {
		return entry, true
	}
	if key, ok := r.byName[strings.ToLower(token)]; ok {
		return r.byKey[key], true
	}
	return CommandEntry{}, false
}

// All returns all registered options ordered by menu key.
// The returned slice is a copy and safe to modify.
func (r *Registry) All() []CommandEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]CommandEntry, 0, len(r.byKey))
	for _, e := range r.byKey {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b CommandEntry) int {
		ai, _ := strconv.Atoi(a.Key)
		bi, _ := strconv.Atoi(b.Key)
		return ai - bi
	})
	return entries
}

// Menu renders the numbered option list followed by the choice prompt.
func (r *Registry) Menu() string {
	var b strings.Builder
	for _, e := range r.All() {
		b.WriteString(e.Key)
		b.WriteString(". ")
		b.WriteString(e.Label)
		b.WriteByte('\n')
	}
	b.WriteString("Enter your choice: ")
	return b.String()
}
