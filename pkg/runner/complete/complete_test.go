package complete

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/cache"
	"tableflip.dev/daybook/pkg/media"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

func newTestApp(t *testing.T) *app.Service {
	t.Helper()
	cfg := cache.StaticConfig{Path: t.TempDir(), APIURL: "http://localhost:3001/api"}
	c, err := cache.Open(cfg)
	if err != nil {
		t.Fatalf("cache.Open failed: %v", err)
	}
	a := &app.Service{
		Cache: c,
		Norm:  media.NewNormalizer(cfg.Origin()),
		Clock: store.FixedClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
	}
	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return a
}

func TestCompleteToggles(t *testing.T) {
	color.NoColor = true
	a := newTestApp(t)
	date := "2024-03-10"
	if _, err := a.AddTodo(date, "water plants"); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	c := Complete{App: a, Date: date, Position: 1, Print: &printers.PrettyPrint{Out: out}}
	if err := c.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !a.Entry(date).Todos[0].Completed {
		t.Error("todo not completed")
	}
	if !strings.Contains(out.String(), "☑ water plants") {
		t.Errorf("output = %q", out.String())
	}

	if err := c.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.Entry(date).Todos[0].Completed {
		t.Error("second toggle should reopen the todo")
	}
}

func TestCompleteOutOfRange(t *testing.T) {
	a := newTestApp(t)
	c := Complete{App: a, Date: "2024-03-10", Position: 3, Print: &printers.PrettyPrint{Out: &bytes.Buffer{}}}
	if err := c.Do(context.Background()); err == nil {
		t.Error("expected an error for a missing todo")
	}
}

func TestCompleteNoJournal(t *testing.T) {
	if err := (&Complete{Position: 1}).Do(context.Background()); err == nil {
		t.Error("expected an error without a journal")
	}
}
