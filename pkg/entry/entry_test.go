package entry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/media"
)

func TestNewIsEmpty(t *testing.T) {
	e := New("2024-03-10")
	assert.Equal(t, "2024-03-10", e.Date)
	assert.NotNil(t, e.Todos)
	assert.NotNil(t, e.Expenses)
	assert.NotNil(t, e.Media)
	assert.True(t, e.IsEmpty())
}

func TestPatchReplacesSequencesWholesale(t *testing.T) {
	e := New("2024-03-10")
	e = SetTodos(Todo{ID: "1", Text: "a"}, Todo{ID: "2", Text: "b"}).Apply(e)
	e = SetTodos(Todo{ID: "3", Text: "c"}).Apply(e)

	require.Len(t, e.Todos, 1)
	assert.Equal(t, "3", e.Todos[0].ID)
}

func TestPatchLeavesUnsetFields(t *testing.T) {
	e := New("2024-03-10")
	e = SetInsight("<p>hello</p>").Apply(e)
	x, err := NewExpense("coffee", "12.50")
	require.NoError(t, err)
	e = SetExpenses(x).Apply(e)

	assert.Equal(t, "<p>hello</p>", e.Insight)
	require.Len(t, e.Expenses, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(e.Total()))
}

func TestPatchApplyDoesNotAlias(t *testing.T) {
	todos := []Todo{{ID: "1", Text: "a"}}
	p := Patch{Todos: &todos}
	e := p.Apply(New("2024-03-10"))
	todos[0].Text = "changed"
	assert.Equal(t, "a", e.Todos[0].Text)
}

func TestPatchMerge(t *testing.T) {
	p := SetInsight("one").Merge(SetSummary("sum"))
	require.NotNil(t, p.Insight)
	require.NotNil(t, p.MyDaySummary)
	assert.Equal(t, "one", *p.Insight)
	assert.Nil(t, p.Todos)
	assert.False(t, p.IsZero())
	assert.True(t, Patch{}.IsZero())
}

func TestNewExpenseRejectsNegative(t *testing.T) {
	_, err := NewExpense("refund", "-3")
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewExpense("lunch", "abc")
	assert.Error(t, err)
}

func TestPatchValidate(t *testing.T) {
	neg := Expense{ID: "x", Item: "bad", Amount: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, SetExpenses(neg).Validate(), ErrNegativeAmount)

	unknown := Media{ID: "m", Name: "a.bin"}
	assert.ErrorIs(t, SetMedia(unknown).Validate(), media.ErrUnknownKind)

	assert.NoError(t, SetInsight("fine").Validate())
}

func TestExpenseJSONAmountIsNumber(t *testing.T) {
	x := Expense{ID: "1", Item: "tea", Amount: decimal.RequireFromString("8.5")}
	b, err := json.Marshal(x)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","item":"tea","amount":8.5}`, string(b))

	var back Expense
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, x.Amount.Equal(back.Amount))
}

func TestEntryDecodeToleratesMissingFields(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-01","insight":"x"}`), &e))
	e = e.Normalize()
	assert.Empty(t, e.Todos)
	assert.NotNil(t, e.Todos)
	assert.Equal(t, "", e.MyDaySummary)
}

func TestMapAndDropMedia(t *testing.T) {
	e := New("2024-01-01")
	e.Media = []Media{
		{ID: "1", Type: media.KindImage, URL: "/uploads/a.png"},
		{ID: "2", Type: media.KindAudio, URL: "blob:x"},
	}
	mapped := e.MapMedia(func(s string) string { return "https://host" + s })
	assert.Equal(t, "https://host/uploads/a.png", mapped.Media[0].URL)
	assert.Equal(t, "/uploads/a.png", e.Media[0].URL)

	kept := e.DropMedia(func(m Media) bool { return media.IsTransient(m.URL) })
	require.Len(t, kept.Media, 1)
	assert.Equal(t, "1", kept.Media[0].ID)
}

func TestWithoutInvalidMedia(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-01","media":[
		{"id":"1","type":"image","url":"/uploads/a.png"},
		{"id":"2","url":"/uploads/b.bin"}]}`), &e))
	require.Len(t, e.Media, 2)
	assert.Error(t, e.Validate())

	e = e.WithoutInvalidMedia()
	require.Len(t, e.Media, 1)
	assert.Equal(t, "1", e.Media[0].ID)
	assert.NoError(t, e.Validate())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	for _, bad := range []string{"", "2024-2-1", "2023-02-29", "2024/01/01", "2024-13-01", "20240101"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDayNormalizesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	late := time.Date(2024, 3, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-10", Key(late))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Day(late))
	assert.True(t, SameDay(late, time.Date(2024, 3, 10, 1, 0, 0, 0, loc)))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"empty", "", ""},
		{"plain", "just text", "just text"},
		{"paragraphs", "<p>first</p><p>second <b>bold</b></p>", "first\nsecond bold"},
		{"entities", "<p>fish &amp; chips</p>", "fish & chips"},
		{"script", "<p>a</p><script>alert(1)</script><p>b</p>", "a\nb"},
		{"break", "line one<br>line two", "line one\nline two"},
		{"blanks", "<div>  lots   of\tspace </div>", "lots of space"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.markup))
		})
	}
}
