package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard"
)

const panelScript = `
components:
  - namespace: panel
  - namespace: navigator
    name: nav
routes:
  - panel/elements
  - panel/editor/style
  - navigator
steps:
  - to: panel/elements
    expect: {is: panel/elements, part_of: panel}
  - to: panel/editor/style
    args: {id: 5}
    expect: {is: panel/editor/style, args: {id: 5}, part_of: panel/editor}
  - save: panel
  - close: panel
    expect: {closed: panel}
  - restore: panel
    expect: {is: panel/editor/style, args: {id: 5}}
  - shortcut: ctrl+i
    expect: {is: navigator}
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	keysLocale, keysJSON = "", false
	verbose, noColor = false, false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "routeplay")
	assert.Contains(t, out, "play")
	assert.Contains(t, out, "keys")
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", rootCmd.Version)

	SetVersion("")
	assert.Equal(t, "1.2.3", rootCmd.Version)
}

func TestPlayCommand(t *testing.T) {
	out, err := execute(t, "play", writeScript(t, panelScript))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines, "> to panel/elements")
	assert.Contains(t, lines, "  panel.open")
	assert.Contains(t, lines, "  panel.onRoute(map[])")
	assert.Contains(t, lines, "  panel.onRoute(map[id:5])")
	assert.Contains(t, lines, "  panel.close")
	assert.Contains(t, lines, "  panel.inactivate")
	assert.Contains(t, lines, "  nav.open")
	assert.Contains(t, lines, "= navigator: navigator map[]")
	assert.Contains(t, lines, "= panel: panel/editor/style map[id:5]")

	// Switching routes inside an open container leaves the old route without
	// reopening the component.
	second := strings.Index(out, "> to panel/editor/style")
	require.Positive(t, second)
	segment := out[second:strings.Index(out, "> save panel")]
	assert.Contains(t, segment, "panel.onCloseRoute")
	assert.NotContains(t, segment, "panel.open")
}

func TestPlayCommand_VerboseEnablesDebug(t *testing.T) {
	t.Cleanup(func() { switchboard.SetRawLogLevel("info") })
	ctx := context.Background()

	_, err := execute(t, "play", writeScript(t, panelScript))
	require.NoError(t, err)
	assert.False(t, switchboard.GetLogger().Enabled(ctx, slog.LevelDebug))

	_, err = execute(t, "-v", "play", writeScript(t, panelScript))
	require.NoError(t, err)
	assert.True(t, switchboard.GetLogger().Enabled(ctx, slog.LevelDebug))
}

func TestPlayCommand_ExpectationFails(t *testing.T) {
	script := `
components:
  - namespace: panel
routes:
  - panel/elements
steps:
  - to: panel/elements
  - close: panel
    expect: {is: panel/elements}
`
	out, err := execute(t, "play", writeScript(t, script))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
	assert.Contains(t, out, "error: expected panel/elements")
}

func TestPlayCommand_DeclinedOpen(t *testing.T) {
	script := `
components:
  - namespace: panel
    decline_open: true
routes:
  - panel/elements
steps:
  - to: panel/elements
    expect: {closed: panel}
`
	out, err := execute(t, "play", writeScript(t, script))
	require.NoError(t, err)
	assert.Contains(t, out, "panel.open -> declined")
	assert.NotContains(t, out, "panel.onRoute")
	assert.Contains(t, out, "= no open containers")
}

func TestPlayCommand_UnknownRoute(t *testing.T) {
	script := `
components:
  - namespace: panel
routes:
  - panel/elements
steps:
  - to: panel/missing
`
	_, err := execute(t, "play", writeScript(t, script))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPlayCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "play", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read script")
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"no components", "steps: []", "no components"},
		{"two actions", "components: [{namespace: a}]\nsteps:\n  - {to: a, close: a}", "exactly one action"},
		{"no action", "components: [{namespace: a}]\nsteps:\n  - {args: {x: 1}}", "exactly one action"},
		{"expect only", "components: [{namespace: a}]\nsteps:\n  - {expect: {closed: a}}", ""},
		{"bad yaml", "components: [", "failed to parse script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.body))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKeysCommand(t *testing.T) {
	out, err := execute(t, "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "Keyboard shortcuts")
	assert.Contains(t, out, "ctrl+p")
	assert.Contains(t, out, "panel/elements")
}

func TestKeysCommand_JSON(t *testing.T) {
	out, err := execute(t, "keys", "--json", "--locale", "es")
	require.NoError(t, err)

	var lines []struct {
		Combo       string `json:"combo"`
		Command     string `json:"command"`
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &lines))
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.NotEmpty(t, l.Combo)
		assert.NotEmpty(t, l.Description)
	}
}
