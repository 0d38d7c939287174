package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/media"
	"tableflip.dev/daybook/pkg/store"
)

type fakeRemote struct {
	mu       sync.Mutex
	entries  map[string]entry.Entry
	fetchErr error
	pushErr  error
	gate     chan struct{}
	upserts  []entry.Entry
}

func (f *fakeRemote) FetchAll(ctx context.Context) (map[string]entry.Entry, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make(map[string]entry.Entry, len(f.entries))
	for k, v := range f.entries {
		out[k] = v.Clone()
	}
	return out, nil
}

func (f *fakeRemote) Upsert(_ context.Context, e entry.Entry) (entry.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, e)
	return e, f.pushErr
}

func (f *fakeRemote) pushed() []entry.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entry.Entry{}, f.upserts...)
}

func setup(remote *fakeRemote) (*store.Store, *Reconciler) {
	norm := media.NewNormalizer("https://host")
	st := store.New(nil, store.WithNormalizer(norm))
	return st, New(st, remote, norm)
}

func wait(t *testing.T, r *Reconciler) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))
}

func TestPullInstallsDisplayFormWithoutPushing(t *testing.T) {
	remote := &fakeRemote{entries: map[string]entry.Entry{
		"2024-03-10": {
			Date:  "2024-03-10",
			Media: []entry.Media{{ID: "a", Type: media.KindImage, URL: "/uploads/a.png", Name: "a.png"}},
		},
	}}
	st, r := setup(remote)

	n, err := r.SignIn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "https://host/uploads/a.png", st.Get("2024-03-10").Media[0].URL)

	wait(t, r)
	assert.Empty(t, remote.pushed())
	assert.Equal(t, Idle, r.Status())
}

func TestEmptyPullKeepsLocal(t *testing.T) {
	remote := &fakeRemote{}
	st, r := setup(remote)
	_, err := st.Update("2024-01-01", entry.SetInsight("offline note"))
	require.NoError(t, err)

	n, err := r.SignIn(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "offline note", st.Get("2024-01-01").Insight)
}

func TestPullFailureKeepsLocal(t *testing.T) {
	boom := errors.New("boom")
	remote := &fakeRemote{fetchErr: boom}
	st, r := setup(remote)
	_, err := st.Update("2024-01-01", entry.SetInsight("offline note"))
	require.NoError(t, err)

	_, err = r.SignIn(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, r.Authenticated())
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, Idle, r.Status())
}

func TestPullRequiresSession(t *testing.T) {
	_, r := setup(&fakeRemote{})
	_, err := r.Pull(context.Background())
	assert.ErrorIs(t, err, ErrSignedOut)
}

func TestLocalEditPushesStorageForm(t *testing.T) {
	remote := &fakeRemote{}
	st, r := setup(remote)
	_, err := r.SignIn(context.Background())
	require.NoError(t, err)

	_, err = st.Update("2024-03-10", entry.SetMedia(
		entry.Media{ID: "a", Type: media.KindImage, URL: "https://host/uploads/a.png", Name: "a.png"},
		entry.Media{ID: "b", Type: media.KindImage, URL: "blob:https://host/123", Name: "b.png"},
	))
	require.NoError(t, err)
	wait(t, r)

	pushed := remote.pushed()
	require.Len(t, pushed, 1)
	assert.Equal(t, "2024-03-10", pushed[0].Date)
	require.Len(t, pushed[0].Media, 1)
	assert.Equal(t, "/uploads/a.png", pushed[0].Media[0].URL)
	// Local copy stays in display form.
	assert.Equal(t, "https://host/uploads/a.png", st.Get("2024-03-10").Media[0].URL)
}

func TestNoPushWhenSignedOut(t *testing.T) {
	remote := &fakeRemote{}
	st, r := setup(remote)
	_, err := st.Update("2024-03-10", entry.SetInsight("x"))
	require.NoError(t, err)

	_, err = r.SignIn(context.Background())
	require.NoError(t, err)
	r.SignOut()
	_, err = st.Update("2024-03-10", entry.SetInsight("y"))
	require.NoError(t, err)

	wait(t, r)
	assert.Empty(t, remote.pushed())
}

func TestPushFailureKeepsLocal(t *testing.T) {
	remote := &fakeRemote{pushErr: errors.New("offline")}
	st, r := setup(remote)
	_, err := r.SignIn(context.Background())
	require.NoError(t, err)

	_, err = st.Update("2024-03-10", entry.SetInsight("kept"))
	require.NoError(t, err)
	wait(t, r)

	assert.Len(t, remote.pushed(), 1)
	assert.Equal(t, "kept", st.Get("2024-03-10").Insight)
}

func TestSupersededPushSkipped(t *testing.T) {
	remote := &fakeRemote{}
	st, r := setup(remote)
	r.SignOut() // keep the listener from pushing on its own

	_, err := st.Update("2024-03-10", entry.SetInsight("old"))
	require.NoError(t, err)
	_, err = st.Update("2024-03-10", entry.SetInsight("new"))
	require.NoError(t, err)

	stale := store.Change{Date: "2024-03-10", Entry: entry.New("2024-03-10"), Version: 1, Source: store.Local}
	r.wg.Add(1)
	r.pushing++
	r.push(stale)
	assert.Empty(t, remote.pushed())

	fresh := store.Change{Date: "2024-03-10", Entry: st.Get("2024-03-10"), Version: st.VersionOf("2024-03-10"), Source: store.Local}
	r.wg.Add(1)
	r.pushing++
	r.push(fresh)
	require.Len(t, remote.pushed(), 1)
	assert.Equal(t, "new", remote.pushed()[0].Insight)
}

func TestPullFromEndedSessionDiscarded(t *testing.T) {
	remote := &fakeRemote{
		gate:    make(chan struct{}),
		entries: map[string]entry.Entry{"2024-03-10": {Date: "2024-03-10", Insight: "remote"}},
	}
	st, r := setup(remote)
	_, err := st.Update("2024-01-01", entry.SetInsight("local"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := r.SignIn(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return r.Status() == Pulling }, time.Second, 5*time.Millisecond)
	r.SignOut()
	close(remote.gate)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.False(t, st.Has("2024-03-10"))
	assert.Equal(t, "local", st.Get("2024-01-01").Insight)
}

func TestEditDuringPullSurvives(t *testing.T) {
	remote := &fakeRemote{
		gate: make(chan struct{}),
		entries: map[string]entry.Entry{
			"2024-03-10": {Date: "2024-03-10", Insight: "old remote"},
			"2024-03-11": {Date: "2024-03-11", Insight: "remote only"},
		},
	}
	st, r := setup(remote)
	_, err := st.Update("2024-03-09", entry.SetInsight("cached"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := r.SignIn(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return r.Status() == Pulling }, time.Second, 5*time.Millisecond)
	_, err = st.Update("2024-03-10", entry.SetInsight("typed while pulling"))
	require.NoError(t, err)
	close(remote.gate)
	require.NoError(t, <-done)
	wait(t, r)

	assert.Equal(t, "typed while pulling", st.Get("2024-03-10").Insight)
	assert.Equal(t, "remote only", st.Get("2024-03-11").Insight)
	assert.False(t, st.Has("2024-03-09"), "days untouched since the pull started follow the remote")

	pushed := remote.pushed()
	require.Len(t, pushed, 1)
	assert.Equal(t, "2024-03-10", pushed[0].Date)
	assert.Equal(t, "typed while pulling", pushed[0].Insight)
}

func TestPullSkipsBadDates(t *testing.T) {
	remote := &fakeRemote{entries: map[string]entry.Entry{
		"2024-1-1":   {Date: "2024-1-1", Insight: "bad key"},
		"2024-01-02": {Date: "2024-01-02", Insight: "good"},
	}}
	st, r := setup(remote)

	n, err := r.SignIn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"2024-01-02"}, st.Dates())
}

func TestWaitHonorsContext(t *testing.T) {
	_, r := setup(&fakeRemote{})
	r.wg.Add(1)
	defer r.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pulling", Pulling.String())
	assert.Equal(t, "pushing", Pushing.String())
}
