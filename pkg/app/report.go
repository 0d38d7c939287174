package app

import (
	"time"

	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/entry"
)

// ReportDay is one recorded day of a report.
type ReportDay struct {
	Date      string
	Todos     int
	Completed int
	Spent     decimal.Decimal
	Media     int
	Summary   string
}

// ReportResult covers every recorded day between Since and Until inclusive.
type ReportResult struct {
	Since     time.Time
	Until     time.Time
	Days      []ReportDay
	Completed int
	Spent     decimal.Decimal
}

// Report totals the recorded days between the two dates, in date order.
func (s *Service) Report(since, until time.Time) ReportResult {
	since, until = entry.Day(since), entry.Day(until)
	if since.After(until) {
		since, until = until, since
	}
	res := ReportResult{Since: since, Until: until, Spent: decimal.Zero}
	lo, hi := entry.Key(since), entry.Key(until)

	for _, date := range s.store.Dates() {
		if date < lo || date > hi {
			continue
		}
		e := s.store.Get(date)
		day := ReportDay{
			Date:      date,
			Todos:     len(e.Todos),
			Completed: e.Completed(),
			Spent:     e.Total(),
			Media:     len(e.Media),
			Summary:   e.MyDaySummary,
		}
		res.Days = append(res.Days, day)
		res.Completed += day.Completed
		res.Spent = res.Spent.Add(day.Spent)
	}
	return res
}
