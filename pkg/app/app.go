// Package app is the journal client: it loads the cached state, applies user
// edits through the entry store, saves after every change and keeps the
// remote service in step while signed in.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"tableflip.dev/daybook/pkg/cache"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/media"
	"tableflip.dev/daybook/pkg/reconcile"
	"tableflip.dev/daybook/pkg/remote"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/summary"
)

var (
	// ErrSignedOut is returned by operations that need the remote service.
	ErrSignedOut = errors.New("app: not signed in")
	// ErrNoItem is returned for a list index that does not exist.
	ErrNoItem = errors.New("app: no such item")
)

// Remote is the remote entry service.
type Remote interface {
	reconcile.Remote
	Delete(ctx context.Context, date string) error
	Upload(ctx context.Context, name string, r io.Reader, entryDate string) (entry.Media, error)
	Login(ctx context.Context, email, password string) (remote.User, error)
	Register(ctx context.Context, email, password, name string) (remote.User, error)
	Me(ctx context.Context) (remote.User, error)
	Logout() error
	Authenticated() bool
}

// Service provides the journal operations shared by every command.
type Service struct {
	Cache   cache.Cache
	Remote  Remote
	Summary summary.Generator
	Norm    media.Normalizer
	Clock   store.Clock

	mu     sync.Mutex
	saveMu sync.Mutex
	view  store.View
	cal   calendar.Granularity
	date  string
	store *store.Store
	sync  *reconcile.Reconciler
	log   *slog.Logger
}

// Start loads the cached state and opens a session on today's daily record.
// When a token is held it pulls from the remote; a failed pull is logged and
// the cached entries are kept.
func (s *Service) Start(ctx context.Context) error {
	if s.Cache == nil {
		return errors.New("app: no cache configured")
	}
	if s.Clock == nil {
		s.Clock = store.RealClock{}
	}
	if s.Summary == nil {
		s.Summary = summary.New(nil, summary.DefaultLanguage)
	}
	s.log = slog.Default().With("component", "app")

	st, found, err := s.Cache.Load()
	if err != nil {
		return err
	}
	if !found {
		s.log.Debug("no cached state, starting fresh")
	}
	st = st.StartSession(s.Clock.Now())

	entries := make(map[string]entry.Entry, len(st.Entries))
	for k, e := range st.Entries {
		entries[k] = e.MapMedia(s.Norm.ToDisplay)
	}

	s.mu.Lock()
	s.view, s.cal, s.date = st.CurrentView, st.CalendarView, st.SelectedDate
	s.store = store.New(entries, store.WithClock(s.Clock), store.WithNormalizer(s.Norm))
	s.mu.Unlock()

	if s.Remote != nil {
		s.sync = reconcile.New(s.store, s.Remote, s.Norm)
		if s.Remote.Authenticated() {
			if _, err := s.sync.SignIn(ctx); err != nil {
				s.log.Warn("pull on start failed, using cached entries", "err", err)
			}
		}
	}
	return s.save()
}

// Close waits for pushes still in flight.
func (s *Service) Close(ctx context.Context) error {
	if s.sync == nil {
		return nil
	}
	return s.sync.Wait(ctx)
}

// Store exposes the entry store, e.g. as a calendar.Index.
func (s *Service) Store() *store.Store {
	return s.store
}

// Status reports what the reconciler is doing.
func (s *Service) Status() reconcile.Status {
	if s.sync == nil {
		return reconcile.Idle
	}
	return s.sync.Status()
}

// Authenticated reports whether edits are being pushed.
func (s *Service) Authenticated() bool {
	return s.sync != nil && s.sync.Authenticated()
}

// State returns the current client state, media in display form.
func (s *Service) State() store.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.State{
		SelectedDate: s.date,
		CurrentView:  s.view,
		CalendarView: s.cal,
		Entries:      s.store.Snapshot(),
	}
}

// Entry returns the record for date without creating it.
func (s *Service) Entry(date string) entry.Entry {
	return s.store.Get(date)
}

// Select moves the selection to date.
func (s *Service) Select(date string) error {
	if _, err := entry.ParseDate(date); err != nil {
		return err
	}
	s.mu.Lock()
	s.date = date
	s.mu.Unlock()
	return s.save()
}

// SetView switches the top-level view.
func (s *Service) SetView(v store.View) error {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return s.save()
}

// SetCalendarView switches the calendar granularity.
func (s *Service) SetCalendarView(g calendar.Granularity) error {
	s.mu.Lock()
	s.cal = g
	s.mu.Unlock()
	return s.save()
}

// Update applies p to date and saves.
func (s *Service) Update(date string, p entry.Patch) (entry.Entry, error) {
	e, err := s.store.Update(date, p)
	if err != nil {
		return entry.Entry{}, err
	}
	return e, s.save()
}

// Modify applies the patch fn builds from the current entry of date and
// saves. Edits that depend on the current lists go through here.
func (s *Service) Modify(date string, fn func(cur entry.Entry) (entry.Patch, error)) (entry.Entry, error) {
	e, err := s.store.Modify(date, fn)
	if err != nil {
		return entry.Entry{}, err
	}
	return e, s.save()
}

// Delete removes date on the remote service and then locally.
func (s *Service) Delete(ctx context.Context, date string) error {
	if _, err := entry.ParseDate(date); err != nil {
		return err
	}
	if !s.Authenticated() {
		return ErrSignedOut
	}
	if err := s.Remote.Delete(ctx, date); err != nil {
		return fmt.Errorf("app: delete %s: %w", date, err)
	}
	s.store.Remove(date)
	return s.save()
}

// Attach uploads the file at path and adds it to date's media.
func (s *Service) Attach(ctx context.Context, date, path string) (entry.Media, error) {
	if _, err := entry.ParseDate(date); err != nil {
		return entry.Media{}, err
	}
	if !s.Authenticated() {
		return entry.Media{}, ErrSignedOut
	}
	name := filepath.Base(path)
	if _, err := media.KindForName(name); err != nil {
		return entry.Media{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return entry.Media{}, err
	}
	defer f.Close()

	m, err := s.Remote.Upload(ctx, name, f, date)
	if err != nil {
		return entry.Media{}, fmt.Errorf("app: upload %s: %w", name, err)
	}
	if !m.Type.Valid() {
		m.Type, _ = media.KindForName(name)
	}
	if m.Name == "" {
		m.Name = name
	}
	m.URL = s.Norm.ToDisplay(m.URL)

	_, err = s.Modify(date, func(cur entry.Entry) (entry.Patch, error) {
		return entry.SetMedia(append(cur.Media, m)...), nil
	})
	if err != nil {
		return entry.Media{}, err
	}
	return m, nil
}

// Summarize generates and stores the summary of date.
func (s *Service) Summarize(ctx context.Context, date string) (string, error) {
	if _, err := entry.ParseDate(date); err != nil {
		return "", err
	}
	text := s.Summary.Generate(ctx, s.store.Get(date))
	if _, err := s.Update(date, entry.SetSummary(text)); err != nil {
		return "", err
	}
	return text, nil
}

// Login signs in and pulls.
func (s *Service) Login(ctx context.Context, email, password string) (remote.User, error) {
	return s.signIn(ctx, func() (remote.User, error) {
		return s.Remote.Login(ctx, email, password)
	})
}

// Register creates an account, signs in and pulls.
func (s *Service) Register(ctx context.Context, email, password, name string) (remote.User, error) {
	return s.signIn(ctx, func() (remote.User, error) {
		return s.Remote.Register(ctx, email, password, name)
	})
}

func (s *Service) signIn(ctx context.Context, auth func() (remote.User, error)) (remote.User, error) {
	if s.sync == nil {
		return remote.User{}, errors.New("app: no remote configured")
	}
	u, err := auth()
	if err != nil {
		return remote.User{}, err
	}
	if _, err := s.sync.SignIn(ctx); err != nil {
		s.log.Warn("pull after sign-in failed", "err", err)
	}
	return u, s.save()
}

// Me returns the signed-in account.
func (s *Service) Me(ctx context.Context) (remote.User, error) {
	if !s.Authenticated() {
		return remote.User{}, ErrSignedOut
	}
	return s.Remote.Me(ctx)
}

// Logout forgets the token and stops pushing. Local entries stay.
func (s *Service) Logout() error {
	if s.sync != nil {
		s.sync.SignOut()
	}
	if s.Remote == nil {
		return nil
	}
	return s.Remote.Logout()
}

// Pull replaces local entries with the remote set.
func (s *Service) Pull(ctx context.Context) (int, error) {
	if !s.Authenticated() {
		return 0, ErrSignedOut
	}
	n, err := s.sync.Pull(ctx)
	if err != nil {
		return 0, err
	}
	return n, s.save()
}

// Watch reports writes to the cache made by other processes.
func (s *Service) Watch(ctx context.Context) (<-chan cache.Event, error) {
	return s.Cache.Watch(ctx)
}

// Reload re-reads the cached entries after another process changed them.
// Reloaded entries are never pushed.
func (s *Service) Reload() error {
	st, _, err := s.Cache.Load()
	if err != nil {
		return err
	}
	s.store.InstallBulk(st.Entries)
	return nil
}

// save writes the current state. Snapshot and write happen under one lock so
// an older snapshot never lands after a newer one.
func (s *Service) save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	st := s.State()
	for k, e := range st.Entries {
		st.Entries[k] = e.MapMedia(s.Norm.ToStorage)
	}
	if err := s.Cache.Save(st); err != nil {
		s.log.Error("save failed", "err", err)
		return err
	}
	return nil
}
