// Package track prints what was done and spent over a window of days.
package track

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
)

// Track reports on the recorded days between Since and Until.
type Track struct {
	App   *app.Service
	Since time.Time
	Until time.Time
	Print *printers.PrettyPrint
}

// Do prints the report and returns it for callers that want the totals.
func (n *Track) Do(ctx context.Context) (app.ReportResult, error) {
	if n.App == nil {
		return app.ReportResult{}, errors.New("can not track, no journal")
	}
	pp := n.Print
	if pp == nil {
		pp = printers.New()
	}
	r := n.App.Report(n.Since, n.Until)
	pp.NewLine()
	pp.Report(r)
	return r, nil
}
