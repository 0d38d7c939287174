// Package store holds the in-memory map from date key to journal entry and
// tells listeners about every change.
package store

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/media"
)

// Source tells a listener where a change came from.
type Source int

const (
	// Local changes are user edits.
	Local Source = iota
	// Remote changes mirror the remote service and must not be sent back.
	Remote
)

func (s Source) String() string {
	switch s {
	case Local:
		return "local"
	case Remote:
		return "remote"
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// Change describes one entry after a mutation. Version is the store version
// the change produced; Removed is set when the date was deleted.
type Change struct {
	Date    string
	Entry   entry.Entry
	Version uint64
	Source  Source
	Removed bool
}

// Listener is called synchronously, outside the store lock, after each
// mutation.
type Listener func(Change)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for save stamps.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithNormalizer sets how installed media references are made displayable.
func WithNormalizer(n media.Normalizer) Option {
	return func(s *Store) { s.norm = n }
}

// Store maps date keys to entries. The zero value is not usable; call New.
type Store struct {
	mu        sync.RWMutex
	entries   map[string]entry.Entry
	versions  map[string]uint64
	sources   map[string]Source
	version   uint64
	listeners []Listener

	clock Clock
	norm  media.Normalizer
}

// New returns a store seeded with initial, which is copied. Seeding does not
// notify anyone.
func New(initial map[string]entry.Entry, opts ...Option) *Store {
	s := &Store{
		entries:  make(map[string]entry.Entry, len(initial)),
		versions: make(map[string]uint64, len(initial)),
		sources:  make(map[string]Source, len(initial)),
		clock:    RealClock{},
	}
	for _, o := range opts {
		o(s)
	}
	for k, e := range initial {
		e.Date = k
		s.entries[k] = e.Normalize().WithoutInvalidMedia().Clone()
	}
	return s
}

// Subscribe registers l for every later change.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Get returns the entry for date, or an empty one. It never adds to the map.
func (s *Store) Get(date string) entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[date]; ok {
		return e.Clone()
	}
	return entry.New(date)
}

// Has reports whether date has been materialized.
func (s *Store) Has(date string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[date]
	return ok
}

// Update merges p over the entry for date, creating it on first write, and
// stamps the save time. Invalid dates and values are rejected before anything
// is stored.
func (s *Store) Update(date string, p entry.Patch) (entry.Entry, error) {
	return s.Modify(date, func(entry.Entry) (entry.Patch, error) { return p, nil })
}

// Modify is Update with a patch computed from the current entry. fn runs
// under the store lock, so edits built from the current value cannot lose
// each other; it must not call back into the store.
func (s *Store) Modify(date string, fn func(cur entry.Entry) (entry.Patch, error)) (entry.Entry, error) {
	if _, err := entry.ParseDate(date); err != nil {
		return entry.Entry{}, err
	}

	s.mu.Lock()
	cur, ok := s.entries[date]
	if !ok {
		cur = entry.New(date)
	}
	p, err := fn(cur.Clone())
	if err == nil {
		err = p.Validate()
	}
	if err != nil {
		s.mu.Unlock()
		return entry.Entry{}, err
	}
	next := p.Apply(cur)
	next.Date = date
	next.LastSavedAt = entry.SavedAt(s.clock.Now())
	s.entries[date] = next
	ch := s.bump(date, next.Clone(), Local, false)
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, ch)
	return next.Clone(), nil
}

// InstallBulk replaces every entry with the given set, passing media
// references through the display normalizer. Listeners see Remote changes.
// It returns the store version after installation.
func (s *Store) InstallBulk(entries map[string]entry.Entry) uint64 {
	v, _ := s.InstallBulkSince(math.MaxUint64, entries)
	return v
}

// InstallBulkSince is InstallBulk for a set read from the remote when the
// store was at version mark. Days edited locally after mark keep the local
// entry and days removed after mark stay removed; their dates are returned.
// Keys that are not valid dates and media of unknown kind are skipped.
func (s *Store) InstallBulkSince(mark uint64, entries map[string]entry.Entry) (uint64, []string) {
	s.mu.Lock()
	var kept []string
	installed := make(map[string]entry.Entry, len(entries))
	for k, v := range s.versions {
		if v <= mark {
			continue
		}
		if cur, ok := s.entries[k]; ok && s.sources[k] == Local {
			installed[k] = cur
			kept = append(kept, k)
		} else if !ok {
			kept = append(kept, k)
		}
	}
	sort.Strings(kept)
	skip := make(map[string]bool, len(kept))
	for _, k := range kept {
		skip[k] = true
	}

	changes := make([]Change, 0, len(entries))
	for _, k := range sortedKeys(entries) {
		if skip[k] {
			continue
		}
		if _, err := entry.ParseDate(k); err != nil {
			continue
		}
		e := entries[k].Normalize().WithoutInvalidMedia().MapMedia(s.norm.ToDisplay)
		e.Date = k
		installed[k] = e
		changes = append(changes, s.bump(k, e.Clone(), Remote, false))
	}
	for _, k := range sortedKeys(s.entries) {
		if _, ok := installed[k]; !ok {
			changes = append(changes, s.bump(k, entry.New(k), Remote, true))
		}
	}
	s.entries = installed
	v := s.version
	listeners := s.listeners
	s.mu.Unlock()

	for _, ch := range changes {
		notify(listeners, ch)
	}
	return v, kept
}

// bump records a mutation of date. Callers hold s.mu.
func (s *Store) bump(date string, e entry.Entry, src Source, removed bool) Change {
	s.version++
	s.versions[date] = s.version
	s.sources[date] = src
	return Change{Date: date, Entry: e, Version: s.version, Source: src, Removed: removed}
}

// Remove drops date, mirroring a delete on the remote service. It reports
// whether anything was removed.
func (s *Store) Remove(date string) bool {
	s.mu.Lock()
	if _, ok := s.entries[date]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.entries, date)
	ch := s.bump(date, entry.New(date), Remote, true)
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, ch)
	return true
}

// Dates lists the materialized date keys in order.
func (s *Store) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.entries)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns a deep copy of every entry.
func (s *Store) Snapshot() map[string]entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]entry.Entry, len(s.entries))
	for k, e := range s.entries {
		out[k] = e.Clone()
	}
	return out
}

// Version is bumped by every mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// VersionOf returns the version of the last mutation touching date, or 0.
func (s *Store) VersionOf(date string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions[date]
}

func notify(listeners []Listener, ch Change) {
	for _, l := range listeners {
		l(ch)
	}
}

func sortedKeys(m map[string]entry.Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
