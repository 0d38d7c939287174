// Package summary writes the one-line "my day" summary of an entry.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"

	"tableflip.dev/daybook/pkg/entry"
)

// MaxRunes caps a generated summary.
const MaxRunes = 30

// DefaultModel is the Gemini model asked for summaries.
const DefaultModel = "gemini-2.5-flash"

// Generator turns an entry into a short summary. It never fails: problems
// come back as a fixed, localized sentence.
type Generator interface {
	Generate(ctx context.Context, e entry.Entry) string
}

// Model completes a prompt.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Gemini is a Model backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini connects with the key in GEMINI_API_KEY or GOOGLE_API_KEY.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("summary: gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Summarizer is the Generator used by the client.
type Summarizer struct {
	model Model
	msgs  Messages
	log   *slog.Logger
}

// New returns a Summarizer answering in lang. A nil model yields the
// "not configured" sentence for every entry.
func New(model Model, lang string) *Summarizer {
	return &Summarizer{
		model: model,
		msgs:  NewMessages(lang),
		log:   slog.Default().With("component", "summary"),
	}
}

func (s *Summarizer) Generate(ctx context.Context, e entry.Entry) string {
	if s.model == nil {
		return s.msgs.Get("fallback_unconfigured")
	}
	out, err := s.model.Complete(ctx, s.Prompt(e))
	if err != nil {
		s.log.Error("generate failed", "date", e.Date, "err", err)
		if isRateLimited(err) {
			return s.msgs.Get("fallback_rate_limited")
		}
		return s.msgs.Get("fallback_failed")
	}
	out = Truncate(strings.TrimSpace(out), MaxRunes)
	if out == "" {
		return s.msgs.Get("fallback_default")
	}
	return out
}

// Prompt builds the request sent to the model for e.
func (s *Summarizer) Prompt(e entry.Entry) string {
	none := s.msgs.Get("none")

	var todos []string
	for _, t := range e.Todos {
		state := s.msgs.Get("todo_open")
		if t.Completed {
			state = s.msgs.Get("todo_done")
		}
		todos = append(todos, fmt.Sprintf("- %s (%s)", t.Text, state))
	}
	var expenses []string
	for _, x := range e.Expenses {
		expenses = append(expenses, fmt.Sprintf("- %s: ¥%s", x.Item, x.Amount.String()))
	}
	thoughts := entry.PlainText(e.Insight)

	var b strings.Builder
	b.WriteString(s.msgs.Get("section_todos") + "\n")
	b.WriteString(orNone(strings.Join(todos, "\n"), none) + "\n\n")
	b.WriteString(s.msgs.Get("section_expenses") + "\n")
	b.WriteString(orNone(strings.Join(expenses, "\n"), none) + "\n\n")
	b.WriteString(s.msgs.Get("section_insight") + "\n")
	b.WriteString(orNone(thoughts, none))

	return s.msgs.With("prompt", map[string]string{"Record": b.String()})
}

// Truncate keeps at most n runes of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func orNone(s, none string) string {
	if strings.TrimSpace(s) == "" {
		return none
	}
	return s
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429
	}
	return strings.Contains(err.Error(), "429")
}

// Static always answers with the same sentence.
type Static string

func (s Static) Generate(context.Context, entry.Entry) string {
	return string(s)
}
