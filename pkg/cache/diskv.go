// Package cache keeps the client state on local disk so the journal works
// offline and survives restarts.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/media"
	"tableflip.dev/daybook/pkg/store"
)

// StateKey is the single key the whole state is written under.
const StateKey = "diary_app_state"

// Cache is the durable home of the client state.
type Cache interface {
	// Load returns the cached state and whether one existed.
	Load() (store.State, bool, error)
	Save(st store.State) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Open returns a Cache backed by diskv under the configured base path. A nil
// cfg is read with LoadConfig.
func Open(cfg Config) (Cache, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("cache: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("cache: ensure base path: %w", err)
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
		clock:    store.RealClock{},
		log:      slog.Default().With("component", "cache"),
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	clock    store.Clock
	log      *slog.Logger
}

func (p *persistence) Load() (store.State, bool, error) {
	// Bypass the diskv read cache: another process may have written since.
	rc, err := p.d.ReadStream(StateKey, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.DefaultState(p.clock.Now()), false, nil
		}
		return store.State{}, false, fmt.Errorf("cache: read: %w", err)
	}
	defer rc.Close()
	var st store.State
	if err := json.NewDecoder(rc).Decode(&st); err != nil {
		return store.State{}, false, fmt.Errorf("cache: decode: %w", err)
	}
	st = st.Normalize(p.clock.Now())
	dropped := 0
	for k, e := range st.Entries {
		kept := storable(e)
		dropped += len(e.Media) - len(kept.Media)
		st.Entries[k] = kept
	}
	if dropped > 0 {
		p.log.Debug("dropped transient or untyped media", "count", dropped)
	}
	return st, true, nil
}

func (p *persistence) Save(st store.State) error {
	entries := make(map[string]entry.Entry, len(st.Entries))
	for k, e := range st.Entries {
		entries[k] = storable(e)
	}
	st.Entries = entries
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	if err := p.d.Write(StateKey, data); err != nil {
		return fmt.Errorf("cache: write: %w", err)
	}
	return nil
}

// storable drops media that must never reach the cache: blob references
// die with the process, and an unknown kind cannot be encoded.
func storable(e entry.Entry) entry.Entry {
	return e.DropMedia(func(m entry.Media) bool {
		return media.IsTransient(m.URL) || m.Validate() != nil
	})
}

// flatTransform keeps every key directly under the base path.
func flatTransform(string) []string {
	return []string{}
}
