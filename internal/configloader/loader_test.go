package configloader

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/spans"
)

// isolated returns options that only see files under dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if !slices.Equal(result.Config.Extensions, config.DefaultExtensions()) {
		t.Errorf("expected default extensions, got %v", result.Config.Extensions)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, filepath.Join(tmpDir, ".wikispan.yml"), `
extensions: [.txt]
parsable_tags: [custom]
jobs: 2
`)

	subDir := filepath.Join(tmpDir, "pages", "nested")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(subDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if !slices.Equal(cfg.Extensions, []string{".txt"}) {
		t.Errorf("expected extensions [.txt], got %v", cfg.Extensions)
	}
	if cfg.Jobs != 2 {
		t.Errorf("expected jobs 2, got %d", cfg.Jobs)
	}
	if !slices.Contains(cfg.ScanNames().ParsableTags, "custom") {
		t.Error("expected custom parsable tag")
	}
	if !slices.Contains(cfg.ScanNames().ParsableTags, "ref") {
		t.Error("built-in parsable tags must be kept")
	}
	if len(result.LoadedFrom) != 1 || !strings.HasSuffix(result.LoadedFrom[0], ".wikispan.yml") {
		t.Errorf("unexpected LoadedFrom %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfigAddsNames(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, filepath.Join(tmpDir, ".wikispan.yml"), "parser_functions: [FOO]\nignore: [a/*]\n")
	explicit := filepath.Join(tmpDir, "other.yml")
	writeConfig(t, explicit, "parser_functions: [BAR]\nignore: [b/*]\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	fns := result.Config.Names.ParserFunctions
	if !slices.Contains(fns, "FOO") || !slices.Contains(fns, "BAR") {
		t.Errorf("expected FOO and BAR, got %v", fns)
	}
	if !slices.Equal(result.Config.Ignore, []string{"b/*"}) {
		t.Errorf("expected explicit ignore to replace project ignore, got %v", result.Config.Ignore)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected 2 loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, filepath.Join(tmpDir, ".wikispan.yml"), "jobs: 2\ncategories: [Template]\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Format:     config.FormatJSON,
		Jobs:       8,
		Categories: []string{"Comment"},
		DryRun:     true,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
	if cfg.Jobs != 8 {
		t.Errorf("expected jobs 8, got %d", cfg.Jobs)
	}
	if !cfg.DryRun {
		t.Error("expected dry run")
	}
	cats, err := cfg.ReportCategories()
	if err != nil {
		t.Fatalf("ReportCategories() error = %v", err)
	}
	if !slices.Equal(cats, []spans.Category{spans.Comment}) {
		t.Errorf("expected [Comment], got %v", cats)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad yaml", content: "extensions: [", wantErr: "load project config"},
		{name: "unknown key", content: "flavor: gfm\n", wantErr: "flavor"},
		{name: "negative jobs", content: "jobs: -1\n", wantErr: "jobs"},
		{name: "bad category", content: "categories: [Heading]\n", wantErr: "categories[0]"},
		{name: "bad glob", content: "ignore: ['[']\n", wantErr: "ignore[0]"},
		{name: "blank tag", content: "parsable_tags: ['a b']\n", wantErr: "parsable_tags[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			writeConfig(t, filepath.Join(tmpDir, ".wikispan.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, filepath.Join(tmpDir, ".wikispan.yml"), `
parsable_tags: [code]
unparsable_tags: [CODE]
parser_functions: ['#foo']
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], ".wikispan.yml") {
		t.Errorf("warning should name the file: %q", result.Warnings[0])
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Error("Load() expected error for cancelled context")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WIKISPAN_FORMAT", "Table")
	t.Setenv("WIKISPAN_JOBS", "3")
	t.Setenv("WIKISPAN_IGNORE", " a/*, ,b/* ")
	t.Setenv("WIKISPAN_PARSER_FUNCTIONS", "FOO,BAR")
	t.Setenv("WIKISPAN_FOLLOW_SYMLINKS", "1")

	cfg := config.NewConfig()
	cfg.Names.ParserFunctions = []string{"BAZ"}
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Format != config.FormatTable {
		t.Errorf("expected format table, got %q", cfg.Format)
	}
	if cfg.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", cfg.Jobs)
	}
	if !slices.Equal(cfg.Ignore, []string{"a/*", "b/*"}) {
		t.Errorf("unexpected ignore %v", cfg.Ignore)
	}
	if !slices.Equal(cfg.Names.ParserFunctions, []string{"BAZ", "FOO", "BAR"}) {
		t.Errorf("unexpected parser functions %v", cfg.Names.ParserFunctions)
	}
	if !cfg.FollowSymlinks {
		t.Error("expected follow symlinks")
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, value string
	}{
		{"WIKISPAN_JOBS", "many"},
		{"WIKISPAN_FORMAT", "sarif"},
		{"WIKISPAN_DRY_RUN", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			err := LoadFromEnv(config.NewConfig())
			if err == nil || !strings.Contains(err.Error(), tt.name) {
				t.Errorf("expected error naming %s, got %v", tt.name, err)
			}
		})
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	got := MergeAll(
		&config.Config{Jobs: 1, Extensions: []string{".wiki"}, Names: spans.Names{ParsableTags: []string{"a"}}},
		&config.Config{FollowSymlinks: true, Names: spans.Names{ParsableTags: []string{"b"}}},
		&config.Config{Jobs: 4},
	)

	if got.Jobs != 4 {
		t.Errorf("expected jobs 4, got %d", got.Jobs)
	}
	if !got.FollowSymlinks {
		t.Error("expected follow symlinks")
	}
	if !slices.Equal(got.Extensions, []string{".wiki"}) {
		t.Errorf("unexpected extensions %v", got.Extensions)
	}
	if !slices.Equal(got.Names.ParsableTags, []string{"a", "b"}) {
		t.Errorf("unexpected parsable tags %v", got.Names.ParsableTags)
	}
	if MergeAll() != nil {
		t.Error("MergeAll() of nothing should be nil")
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".wikispan.yml"), "jobs: 1\n")
	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("search should stop at the repository root, found %q", path)
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultProjectConfigName())
	content := config.GenerateTemplate(config.TemplateOptions{})
	if err := WriteConfig(context.Background(), path, content); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("generated template must load: %v", err)
	}
	if !Validate(cfg).Valid() {
		t.Errorf("generated template must validate: %v", Validate(cfg).AllMessages())
	}
}
