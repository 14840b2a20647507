package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// projectDir creates a temp directory marked as a VCS root so that project
// config discovery never escapes it.
func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Format != config.FormatHTML {
		t.Errorf("expected format %q, got %q", config.FormatHTML, result.Config.Format)
	}
	if result.Config.HeadingMaxLength != config.DefaultHeadingMaxLength {
		t.Errorf("expected heading max length %d, got %d", config.DefaultHeadingMaxLength, result.Config.HeadingMaxLength)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".gomarkup.yml"), `
format: md
title: Handbook
heading_max_length: 40
rules:
  title:
    enabled: false
filters:
  Curly-Braces:
    enabled: false
ignore:
  - "drafts/**"
`)

	// Discovery walks up from a subdirectory.
	sub := filepath.Join(dir, "docs", "guides")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Format != config.FormatMarkdown {
		t.Errorf("expected format alias to resolve to markdown, got %q", cfg.Format)
	}
	if cfg.Title != "Handbook" {
		t.Errorf("expected title Handbook, got %q", cfg.Title)
	}
	if cfg.HeadingMaxLength != 40 {
		t.Errorf("expected heading max length 40, got %d", cfg.HeadingMaxLength)
	}
	if cfg.RuleEnabled("title") {
		t.Error("expected title rule disabled")
	}
	if cfg.FilterEnabled("curly_braces") {
		t.Error("expected curly_braces filter disabled via normalized key")
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "drafts/**" {
		t.Errorf("unexpected ignore: %v", cfg.Ignore)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected one loaded file, got %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".gomarkup.yml"), "format: tree\ntitle: Project\n")
	customPath := filepath.Join(dir, "custom.yml")
	writeConfig(t, customPath, "title: Explicit\n")

	opts := isolated(dir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Title != "Explicit" {
		t.Errorf("expected explicit title, got %q", result.Config.Title)
	}
	if result.Config.Format != config.FormatTree {
		t.Errorf("expected project format to survive, got %q", result.Config.Format)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("unexpected load order: %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".gomarkup.yml"), "format: tree\nout_dir: build\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Format:       config.FormatEvents,
		Jobs:         8,
		DryRun:       true,
		DisableRules: []string{"table"},
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Format != config.FormatEvents {
		t.Errorf("expected CLI format, got %q", cfg.Format)
	}
	if cfg.OutDir != "build" {
		t.Errorf("expected project out_dir to survive, got %q", cfg.OutDir)
	}
	if cfg.Jobs != 8 || !cfg.DryRun {
		t.Errorf("expected CLI-only fields applied, got jobs=%d dry_run=%v", cfg.Jobs, cfg.DryRun)
	}
	if cfg.RuleEnabled("table") {
		t.Error("expected table rule disabled from CLI")
	}
}

func TestLoad_Env(t *testing.T) {
	// Not parallel because it sets environment variables.
	t.Setenv("GOMARKUP_FORMAT", "ansi")
	t.Setenv("GOMARKUP_JOBS", "3")
	t.Setenv("GOMARKUP_IGNORE", "a/**, b/*.txt")

	opts := isolated(projectDir(t))
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatTerm {
		t.Errorf("expected term format from env, got %q", result.Config.Format)
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3 from env, got %d", result.Config.Jobs)
	}
	if len(result.Config.Ignore) != 2 || result.Config.Ignore[1] != "b/*.txt" {
		t.Errorf("unexpected ignore from env: %v", result.Config.Ignore)
	}
}

func TestLoad_EnvInvalid(t *testing.T) {
	t.Setenv("GOMARKUP_JOBS", "many")

	opts := isolated(projectDir(t))
	opts.IgnoreEnv = false

	if _, err := Load(context.Background(), opts); err == nil {
		t.Fatal("expected error for invalid GOMARKUP_JOBS")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown format", "format: pdf\n", "format"},
		{"negative heading length", "heading_max_length: -1\n", "heading_max_length"},
		{"required rule disabled", "rules:\n  paragraph:\n    enabled: false\n", "rules.paragraph.enabled"},
		{"bad glob", "ignore:\n  - \"docs/[\"\n", "ignore[0]"},
		{"bad extension", "extensions:\n  - txt\n", "extensions[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := projectDir(t)
			path := filepath.Join(dir, ".gomarkup.yml")
			writeConfig(t, path, tt.content)

			_, err := Load(context.Background(), isolated(dir))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
			if verr.FilePath != path {
				t.Errorf("expected file path %q, got %q", path, verr.FilePath)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".gomarkup.yml"), "rules: [not a map\n")

	if _, err := Load(context.Background(), isolated(dir)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".gomarkup.yml"), `
rules:
  footnote:
    enabled: true
filters:
  url:
    enabled: false
  URL:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	joined := strings.Join(result.Warnings, "\n")
	if !strings.Contains(joined, `unknown rule "footnote"`) {
		t.Errorf("expected unknown rule warning, got %v", result.Warnings)
	}
	if !strings.Contains(joined, "duplicate filter") {
		t.Errorf("expected duplicate filter warning, got %v", result.Warnings)
	}
	// "URL" sorts before "url", so the lowercase key wins.
	if result.Config.FilterEnabled("url") {
		t.Error("expected url filter disabled by the last key")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	enabled, disabled := true, false
	base := config.NewConfig()
	base.Rules["title"] = config.ToggleConfig{Enabled: &disabled}
	base.Filters["mail"] = config.ToggleConfig{Enabled: &disabled}

	override := &config.Config{
		Title: "T",
		Rules: map[string]config.ToggleConfig{
			"title": {},
			"table": {Enabled: &enabled},
		},
		Extensions: []string{".note"},
	}

	got := MergeAll(base, override)

	if got.Title != "T" {
		t.Errorf("expected title override, got %q", got.Title)
	}
	if got.Format != config.FormatHTML {
		t.Errorf("expected base format kept, got %q", got.Format)
	}
	if got.RuleEnabled("title") {
		t.Error("an unset override toggle must not re-enable a rule")
	}
	if !got.RuleEnabled("table") {
		t.Error("expected table rule enabled")
	}
	if got.FilterEnabled("mail") {
		t.Error("expected base filter toggle kept")
	}
	if len(got.Extensions) != 1 || got.Extensions[0] != ".note" {
		t.Errorf("expected extensions replaced, got %v", got.Extensions)
	}

	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}
}

func TestValidate_DisableLists(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DisableRules = []string{"paragraph", "nope"}
	cfg.DisableFilters = []string{"emphasis", "bogus"}

	result := Validate(cfg)
	if result.Valid() {
		t.Fatal("expected error for disabling the paragraph rule")
	}
	if !result.HasWarnings() || len(result.Warnings) != 2 {
		t.Errorf("expected two unknown-name warnings, got %v", result.AllMessages())
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if _, ok := vars["GOMARKUP_FORMAT"]; !ok {
		t.Error("expected GOMARKUP_FORMAT to be listed")
	}
	if GetEnvVarName("jobs") != "GOMARKUP_JOBS" {
		t.Errorf("unexpected env var for jobs: %q", GetEnvVarName("jobs"))
	}
	if GetEnvVarName("unknown") != "" {
		t.Error("expected empty name for unknown field")
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , ,b ", []string{"a", "b"}},
		{",,", nil},
	}

	for _, tt := range tests {
		got := splitList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestAncestors_StopsEarly(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "a", "b")

	var seen []string
	for dir := range ancestors(root) {
		seen = append(seen, dir)
		if len(seen) == 2 {
			break
		}
	}

	if len(seen) != 2 || seen[0] != root || seen[1] != filepath.Dir(root) {
		t.Errorf("unexpected ancestors: %v", seen)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".gomarkup.yml"), "title: outer\n")

	inner := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(inner, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := FindProjectConfig(context.Background(), inner)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at the repository root, found %q", path)
	}
}
