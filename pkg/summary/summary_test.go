package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"tableflip.dev/daybook/pkg/entry"
)

type fakeModel struct {
	out    string
	err    error
	prompt string
}

func (f *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.out, f.err
}

func sample(t *testing.T) entry.Entry {
	e := entry.New("2024-03-10")
	e.Todos = []entry.Todo{{ID: "1", Text: "run 5k", Completed: true}, {ID: "2", Text: "call mom"}}
	x, err := entry.NewExpense("noodles", "18.5")
	require.NoError(t, err)
	e.Expenses = []entry.Expense{x}
	e.Insight = "<p>tired <b>but</b> happy</p>"
	return e
}

func TestPromptCarriesRecord(t *testing.T) {
	m := &fakeModel{out: "good day"}
	s := New(m, "en")
	assert.Equal(t, "good day", s.Generate(context.Background(), sample(t)))

	assert.Contains(t, m.prompt, "- run 5k (done)")
	assert.Contains(t, m.prompt, "- call mom (open)")
	assert.Contains(t, m.prompt, "- noodles: ¥18.5")
	assert.Contains(t, m.prompt, "tired but happy")
	assert.NotContains(t, m.prompt, "<b>")
	assert.NotContains(t, m.prompt, "{{")
}

func TestPromptEmptyEntryChinese(t *testing.T) {
	s := New(&fakeModel{}, "zh")
	p := s.Prompt(entry.New("2024-03-10"))
	assert.Contains(t, p, "【待办事项】\n无")
	assert.Contains(t, p, "【心情感悟】\n无")
}

func TestGenerateTruncates(t *testing.T) {
	long := strings.Repeat("好", 50)
	got := New(&fakeModel{out: "  " + long + "\n"}, "zh").Generate(context.Background(), sample(t))
	assert.Equal(t, MaxRunes, utf8.RuneCountInString(got))
}

func TestFallbacks(t *testing.T) {
	ctx := context.Background()
	e := sample(t)

	tests := []struct {
		name  string
		model Model
		lang  string
		want  string
	}{
		{"unconfigured", nil, "zh", "API Key 未配置"},
		{"empty", &fakeModel{out: "   "}, "zh", "今天也是平凡又特别的一天"},
		{"rate limited", &fakeModel{err: genai.APIError{Code: 429}}, "zh", "API 调用次数已达上限，请稍后再试"},
		{"rate limited text", &fakeModel{err: errors.New("status 429 too many")}, "en", "API quota reached, try again later"},
		{"failed", &fakeModel{err: errors.New("boom")}, "en", "Summary failed, try again later"},
		{"unknown language", &fakeModel{err: errors.New("boom")}, "fr", "生成失败，请稍后重试"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.model, tt.lang).Generate(ctx, e))
		})
	}
}

func TestLanguages(t *testing.T) {
	assert.ElementsMatch(t, []string{"en", "zh"}, Languages())
}

func TestMissingMessageReturnsID(t *testing.T) {
	assert.Equal(t, "no_such_message", NewMessages("en").Get("no_such_message"))
}

func TestStatic(t *testing.T) {
	var g Generator = Static("fixed")
	assert.Equal(t, "fixed", g.Generate(context.Background(), entry.Entry{}))
}
