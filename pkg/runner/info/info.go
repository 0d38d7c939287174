// Package info reports where the journal is configured and stored.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/cache"
)

type Info struct {
	Config cache.Config
	App    *app.Service
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "DAYBOOK_CONFIG_PATH found on env, using", override)
	} else {
		fmt.Fprintln(out, "DAYBOOK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = cache.LoadConfig()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("path"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("api"), n.Config.API())
	tbl.AddRow(bold.Sprint("media origin"), n.Config.Origin())
	tbl.AddRow(bold.Sprint("language"), n.Config.Language())
	tbl.AddRow(bold.Sprint("model"), n.Config.Model())

	if n.App == nil {
		return fmt.Errorf("failed to open the journal")
	}
	st := n.App.State()
	session := "signed out"
	if n.App.Authenticated() {
		session = "signed in"
	}
	tbl.AddRow(bold.Sprint("session"), session)
	tbl.AddRow(bold.Sprint("sync"), n.App.Status().String())
	tbl.AddRow(bold.Sprint("days"), len(st.Entries))
	tbl.AddRow(bold.Sprint("selected"), fmt.Sprintf("%s (%s)", st.SelectedDate, st.CurrentView))
	fmt.Fprintln(out, tbl)
	return nil
}
