package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomarkup/internal/cli"
)

const testDocument = `Release Notes

What Changed

Upgrade *carefully* and read https://example.com/upgrade
before starting.

- faster parsing
- fewer allocations

- new term format`

// execute runs the root command with args and stdin, returning stdout and
// the command error. A throwaway config file keeps results independent of
// configuration found around the test binary.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("title: Test\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestIntegration_RenderStdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantContains []string
	}{
		{
			name: "html by default",
			args: []string{"render"},
			wantContains: []string{
				"<title>Test</title>",
				"<h1>Release Notes</h1>",
				"<h2>What Changed</h2>",
				"<em>carefully</em>",
				`<a href="https://example.com/upgrade">`,
				"<li>new term format</li>",
			},
		},
		{
			name:         "title flag overrides config",
			args:         []string{"render", "--title", "Flags Win"},
			wantContains: []string{"<title>Flags Win</title>"},
		},
		{
			name:         "markdown alias",
			args:         []string{"render", "--format", "md"},
			wantContains: []string{"# Release Notes\n", "## What Changed\n", "- new term format\n"},
		},
		{
			name:         "plain terminal",
			args:         []string{"render", "--format", "term"},
			wantContains: []string{"Release Notes", "• new term format"},
		},
		{
			name:         "disabled filter leaves text",
			args:         []string{"render", "--disable-filter", "emphasis"},
			wantContains: []string{"*carefully*"},
		},
		{
			name:         "dash reads stdin",
			args:         []string{"render", "-"},
			wantContains: []string{"<h1>Release Notes</h1>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, testDocument, tt.args...)
			require.NoError(t, err)

			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestIntegration_RenderStdinEvents(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "Only Title", "render", "--format", "events", "--compact")
	require.NoError(t, err)

	var events []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.NotEmpty(t, events)
	assert.Equal(t, "document", events[0]["tag"])
	assert.Equal(t, "document", events[len(events)-1]["tag"])
}

func TestIntegration_RenderStdinToOutputFile(t *testing.T) {
	t.Parallel()

	outFile := filepath.Join(t.TempDir(), "nested", "notes.md")

	out, err := execute(t, testDocument, "render", "--format", "markdown", "-o", outFile)
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(got), "# Release Notes")
}

func TestIntegration_RenderStdinDryRunSkipsOutputFile(t *testing.T) {
	t.Parallel()

	outFile := filepath.Join(t.TempDir(), "notes.html")

	_, err := execute(t, testDocument, "render", "--dry-run", "-o", outFile)
	require.NoError(t, err)
	assert.NoFileExists(t, outFile)
}

func TestIntegration_RenderPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":            testDocument,
		"sub/b.text":       "Heading\n\nA paragraph\nof two lines.",
		"sub/skip.md":      "# not picked up",
		"drafts/draft.txt": "Draft",
	})
	outDir := filepath.Join(t.TempDir(), "build")

	out, err := execute(t, "",
		"render", "--report", "json", "--out-dir", outDir, "--ignore", "drafts", dir)
	require.NoError(t, err)

	var report struct {
		Files []struct {
			Path    string `json:"path"`
			Output  string `json:"output"`
			Written bool   `json:"written"`
		} `json:"files"`
		Summary struct {
			FilesDiscovered int `json:"filesDiscovered"`
			FilesConverted  int `json:"filesConverted"`
			FilesWritten    int `json:"filesWritten"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, 2, report.Summary.FilesDiscovered)
	assert.Equal(t, 2, report.Summary.FilesConverted)
	assert.Equal(t, 2, report.Summary.FilesWritten)
	require.Len(t, report.Files, 2)

	assert.FileExists(t, filepath.Join(outDir, "a.html"))
	assert.FileExists(t, filepath.Join(outDir, "b.html"))
	assert.NoFileExists(t, filepath.Join(outDir, "draft.html"))
}

func TestIntegration_RenderPathsTextReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"notes.txt": testDocument})

	out, err := execute(t, "", "render", "--dry-run", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "notes.html")
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "Converted 1 file")
	assert.NoFileExists(t, filepath.Join(dir, "notes.html"))
}

func TestIntegration_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"notes.txt":   testDocument,
		"blocker":     "a file where a directory is expected",
		"bad.yml":     "format: pdf\n",
		"invalid.yml": "rules:\n  paragraph:\n    enabled: false\n",
		"dup/a/x.txt": testDocument,
		"dup/b/x.txt": testDocument,
	})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown format flag value", []string{"render", "--format", "pdf"}, cli.ExitInvalidUsage},
		{"unknown flag", []string{"render", "--no-such-flag"}, cli.ExitInvalidUsage},
		{"output with paths", []string{"render", "-o", "x.html", dir}, cli.ExitInvalidUsage},
		{"negative jobs", []string{"render", "--jobs", "-1"}, cli.ExitInvalidUsage},
		{"invalid config format", []string{"--config", filepath.Join(dir, "bad.yml"), "render"}, cli.ExitConfigError},
		{"required rule disabled", []string{"--config", filepath.Join(dir, "invalid.yml"), "render"}, cli.ExitConfigError},
		{"missing path", []string{"render", filepath.Join(dir, "missing")}, cli.ExitIOError},
		{
			"conversion failures",
			[]string{"render", "--out-dir", filepath.Join(dir, "blocker"), filepath.Join(dir, "notes.txt")},
			cli.ExitConversionErrors,
		},
		{
			"shared output path",
			[]string{"render", "--dry-run", "--out-dir", filepath.Join(dir, "flat"), filepath.Join(dir, "dup")},
			cli.ExitConversionErrors,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, testDocument, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err), "error: %v", err)
		})
	}
}

func TestIntegration_Inspect(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "Title\n\n- one\n\n- two", "inspect", "--json")
	require.NoError(t, err)

	var result struct {
		Blocks []struct {
			Line   int    `json:"line"`
			Rule   string `json:"rule"`
			Events []struct {
				Kind string `json:"kind"`
				Tag  string `json:"tag"`
			} `json:"events"`
		} `json:"blocks"`
		Closing []struct {
			Kind string `json:"kind"`
			Tag  string `json:"tag"`
		} `json:"closing"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	require.Len(t, result.Blocks, 3)
	assert.Equal(t, "title", result.Blocks[0].Rule)
	assert.Equal(t, 1, result.Blocks[0].Line)
	assert.Equal(t, "listitem", result.Blocks[1].Rule)
	assert.Equal(t, 3, result.Blocks[1].Line)
	assert.Equal(t, "list", result.Blocks[1].Events[0].Tag)
	assert.Equal(t, 5, result.Blocks[2].Line)

	require.Len(t, result.Closing, 1)
	assert.Equal(t, "end", result.Closing[0].Kind)
	assert.Equal(t, "list", result.Closing[0].Tag)
}

func TestIntegration_InspectFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("Title\n\nbody text\nmore body"), 0o644))

	out, err := execute(t, "", "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "paragraph")

	_, err = execute(t, "", "inspect", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_RulesJSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "rules", "--format", "json")
	require.NoError(t, err)

	var list struct {
		Rules []struct {
			Name     string `json:"name"`
			Required bool   `json:"required"`
		} `json:"rules"`
		Filters []struct {
			Name    string `json:"name"`
			Pattern string `json:"pattern"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))

	require.NotEmpty(t, list.Rules)
	assert.Equal(t, "paragraph", list.Rules[len(list.Rules)-1].Name)
	assert.True(t, list.Rules[len(list.Rules)-1].Required)
	require.Len(t, list.Filters, 4)
	assert.Equal(t, "curly_braces", list.Filters[0].Name)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gomarkup.yml")

	_, err := execute(t, "", "init", "--output", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = execute(t, "", "init", "--output", path)
	require.Error(t, err, "existing file without --force")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, "", "init", "--output", path, "--force", "--full")
	require.NoError(t, err)

	// The generated file is a valid configuration.
	_, err = execute(t, "Title", "--config", path, "render")
	require.NoError(t, err)
}
