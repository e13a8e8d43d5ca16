package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "Nil", in: nil, want: nil},
		{name: "Plain list", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "Comma separated env", in: []string{"a, b ,,c"}, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := validate(cfg); err == nil {
		t.Fatal("expected error for empty config")
	}

	cfg.Gerrit.URL = "https://gerrit.example.org/r"
	cfg.Gerrit.PrimaryProject = "mediawiki/core"
	cfg.Phabricator.URL = "https://phab.example.org"
	cfg.Tagger.SpoolDir = "/tmp/spool"
	if err := validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "tagger.yaml")
	raw := `gerrit:
  url: https://gerrit.example.org/r/
  watched_projects:
    - operations/deploy
phabricator:
  api_token: api-abc
tagger:
  dry_run: true
  suggest_release_branch: true
telegram:
  chat_id: -100123
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Gerrit.URL != "https://gerrit.example.org/r" {
		t.Errorf("gerrit url not trimmed: %q", cfg.Gerrit.URL)
	}
	if !reflect.DeepEqual(cfg.Gerrit.WatchedProjects, []string{"operations/deploy"}) {
		t.Errorf("unexpected watched projects: %v", cfg.Gerrit.WatchedProjects)
	}
	if cfg.Gerrit.PrimaryProject != "mediawiki/core" {
		t.Errorf("expected default primary project, got %q", cfg.Gerrit.PrimaryProject)
	}
	if cfg.Phabricator.RequestsPerSecond != 5 {
		t.Errorf("expected default rate 5, got %v", cfg.Phabricator.RequestsPerSecond)
	}
	if !cfg.Tagger.DryRun || !cfg.Tagger.SuggestReleaseBranch {
		t.Errorf("tagger flags not loaded: %+v", cfg.Tagger)
	}
	if cfg.Telegram.ChatID != -100123 {
		t.Errorf("unexpected chat id %d", cfg.Telegram.ChatID)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
