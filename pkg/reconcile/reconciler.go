// Package reconcile keeps the local entry store and the remote service in
// step: it pulls everything on sign-in and pushes each local edit.
//
// Edits flow outward only. Entries installed from the remote are tagged with
// store.Remote and are never sent back, and a push is dropped when a newer
// edit of the same day is already on its way. A pull never overwrites a day
// edited locally after the pull started; that edit is pushed instead.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/media"
	"tableflip.dev/daybook/pkg/store"
)

// ErrSignedOut is returned by Pull outside a session.
var ErrSignedOut = errors.New("reconcile: not signed in")

// ErrStale is returned by Pull when the session ended while it was in flight.
// Nothing was installed.
var ErrStale = errors.New("reconcile: session ended during pull")

const defaultPushTimeout = 15 * time.Second

// Status is what the reconciler is doing right now.
type Status int

const (
	Idle Status = iota
	Pulling
	Pushing
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pulling:
		return "pulling"
	case Pushing:
		return "pushing"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Remote is the part of the remote service the reconciler needs.
type Remote interface {
	FetchAll(ctx context.Context) (map[string]entry.Entry, error)
	Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error)
}

// Entries is the part of the entry store the reconciler needs.
type Entries interface {
	Subscribe(l store.Listener)
	InstallBulkSince(mark uint64, entries map[string]entry.Entry) (uint64, []string)
	Version() uint64
	VersionOf(date string) uint64
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithContext sets the parent context of every push. Cancelling it aborts
// pushes in flight.
func WithContext(ctx context.Context) Option {
	return func(r *Reconciler) { r.base = ctx }
}

// WithPushTimeout bounds each push.
func WithPushTimeout(d time.Duration) Option {
	return func(r *Reconciler) { r.pushTimeout = d }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) { r.log = l }
}

type Reconciler struct {
	entries Entries
	remote  Remote
	norm    media.Normalizer

	base        context.Context
	pushTimeout time.Duration
	log         *slog.Logger

	mu            sync.Mutex
	authenticated bool
	generation    uint64
	pulling       int
	pushing       int
	wg            sync.WaitGroup
}

// New subscribes a reconciler to entries. It starts signed out.
func New(entries Entries, remote Remote, norm media.Normalizer, opts ...Option) *Reconciler {
	r := &Reconciler{
		entries:     entries,
		remote:      remote,
		norm:        norm,
		base:        context.Background(),
		pushTimeout: defaultPushTimeout,
		log:         slog.Default().With("component", "reconcile"),
	}
	for _, o := range opts {
		o(r)
	}
	entries.Subscribe(r.onChange)
	return r
}

// Status reports pulling while any pull is in flight, else pushing while any
// push is, else idle.
func (r *Reconciler) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.pulling > 0:
		return Pulling
	case r.pushing > 0:
		return Pushing
	}
	return Idle
}

// Authenticated reports whether a session is open.
func (r *Reconciler) Authenticated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.authenticated
}

// SignIn opens a session and pulls. A failed pull leaves the session open and
// local entries untouched.
func (r *Reconciler) SignIn(ctx context.Context) (int, error) {
	r.mu.Lock()
	r.authenticated = true
	r.generation++
	r.mu.Unlock()
	return r.Pull(ctx)
}

// SignOut ends the session. Pulls still in flight are discarded when they
// land; pushes in flight finish.
func (r *Reconciler) SignOut() {
	r.mu.Lock()
	r.authenticated = false
	r.generation++
	r.mu.Unlock()
}

// Pull fetches every remote entry and, when there are any, installs them in
// place of the local set. It returns how many were installed.
func (r *Reconciler) Pull(ctx context.Context) (int, error) {
	r.mu.Lock()
	if !r.authenticated {
		r.mu.Unlock()
		return 0, ErrSignedOut
	}
	gen := r.generation
	mark := r.entries.Version()
	r.pulling++
	r.mu.Unlock()

	remote, err := r.remote.FetchAll(ctx)

	r.mu.Lock()
	r.pulling--
	current := r.authenticated && r.generation == gen
	r.mu.Unlock()

	if err != nil {
		r.log.Error("pull failed", "err", err)
		return 0, fmt.Errorf("reconcile: pull: %w", err)
	}
	if !current {
		r.log.Info("discarding pull from ended session", "entries", len(remote))
		return 0, ErrStale
	}
	if len(remote) == 0 {
		r.log.Debug("pull returned nothing, keeping local entries")
		return 0, nil
	}
	valid := make(map[string]entry.Entry, len(remote))
	for k, e := range remote {
		if _, err := entry.ParseDate(k); err != nil {
			r.log.Warn("skipping pulled entry with bad date", "date", k)
			continue
		}
		valid[k] = e
	}
	v, kept := r.entries.InstallBulkSince(mark, valid)
	if len(kept) > 0 {
		r.log.Info("kept days changed during pull", "dates", kept)
	}
	r.log.Info("pulled", "entries", len(valid), "version", v)
	return len(valid), nil
}

func (r *Reconciler) onChange(ch store.Change) {
	if ch.Source != store.Local || ch.Removed {
		return
	}
	r.mu.Lock()
	if !r.authenticated {
		r.mu.Unlock()
		return
	}
	r.pushing++
	r.wg.Add(1)
	r.mu.Unlock()

	go r.push(ch)
}

func (r *Reconciler) push(ch store.Change) {
	defer func() {
		r.mu.Lock()
		r.pushing--
		r.mu.Unlock()
		r.wg.Done()
	}()

	log := r.log.With("date", ch.Date, "version", ch.Version)
	if latest := r.entries.VersionOf(ch.Date); latest > ch.Version {
		log.Debug("skipping superseded push", "latest", latest)
		return
	}

	e := ch.Entry.
		DropMedia(func(m entry.Media) bool { return media.IsTransient(m.URL) }).
		MapMedia(r.norm.ToStorage)

	ctx, cancel := context.WithTimeout(r.base, r.pushTimeout)
	defer cancel()
	if _, err := r.remote.Upsert(ctx, e); err != nil {
		log.Error("push failed", "err", err)
		return
	}
	log.Debug("pushed")
}

// Wait blocks until every push started so far has finished or ctx is done.
func (r *Reconciler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
