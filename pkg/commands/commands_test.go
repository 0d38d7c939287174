package commands

import (
	"bytes"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/almanac"
)

func init() {
	color.NoColor = true
}

func TestCommandsAreRegistered(t *testing.T) {
	root := New()
	for _, name := range []string{
		"get", "add", "complete", "strike", "carry", "attach", "summarize",
		"delete", "log", "almanac", "report", "export", "login", "register",
		"logout", "sync", "whoami", "ui", "mcp", "info", "version", "upgrade",
		"completion",
	} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, path := range [][]string{
		{"add", "todo"}, {"add", "expense"}, {"add", "insight"},
		{"strike", "todo"}, {"strike", "expense"}, {"strike", "media"},
		{"export", "ics"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[1], cmd.Name())
	}
}

func TestAliases(t *testing.T) {
	root := New()
	for alias, name := range map[string]string{
		"show": "get", "done": "complete", "rm": "strike", "cal": "log",
		"track": "report", "key": "almanac", "pull": "sync", "migrate": "carry",
	} {
		cmd, _, err := root.Find([]string{alias})
		require.NoError(t, err, alias)
		assert.Equal(t, name, cmd.Name(), alias)
	}
}

func TestAlmanacJSON(t *testing.T) {
	t.Cleanup(func() { output.JSON = false })
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"almanac", "--on", "2000-1-7", "--days", "2", "--json"})
	require.NoError(t, root.Execute())

	var got map[string]almanac.Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "甲子", got["2000-01-07"].DayLabel)
	assert.Equal(t, "乙丑", got["2000-01-08"].DayLabel)
}

func TestAlmanacText(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"almanac", "--on", "2000-1-7"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "甲子日")
}

func TestVersionShort(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--short"})
	require.NoError(t, root.Execute())
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}

func TestCompletion(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "zsh"})
	require.NoError(t, root.Execute())
	assert.True(t, strings.Contains(out.String(), "daybook"))

	root.SetArgs([]string{"completion", "tcsh"})
	assert.Error(t, root.Execute())
}

func TestDeleteNeedsOn(t *testing.T) {
	root := New()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"delete", "--yes"})
	assert.Error(t, root.Execute())
}

func TestPosition(t *testing.T) {
	n, err := position("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"0", "-1", "two"} {
		_, err := position(bad)
		assert.Error(t, err, bad)
	}
}

func TestListenURL(t *testing.T) {
	tcp := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}
	assert.Equal(t, "http://127.0.0.1:8080/mcp", listenURL("127.0.0.1", tcp, false, "/mcp"))
	assert.Equal(t, "https://127.0.0.1:8080/mcp", listenURL("0.0.0.0", tcp, true, "/mcp"))

	unspec := &net.TCPAddr{IP: net.IPv6unspecified, Port: 9000}
	assert.Equal(t, "http://127.0.0.1:9000/x", listenURL("::", unspec, false, "/x"))

	v6 := &net.TCPAddr{IP: net.ParseIP("::1"), Port: 9000}
	assert.Equal(t, "http://[::1]:9000/x", listenURL("::1", v6, false, "/x"))
}
