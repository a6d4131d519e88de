// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// isolate points the config directory at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ASKDOCS_HOME", dir)
	for _, key := range []string{
		"ASKDOCS_BASE_URL", "ASKDOCS_API_TOKEN", "ASKDOCS_TIMEOUT", "ASKDOCS_RPM",
		"ASKDOCS_STYLE", "ASKDOCS_HISTORY", "ASKDOCS_LOG_LEVEL", "ASKDOCS_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	ResetGlobalForTesting()
	return dir
}

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// called concurrently. Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := Default()
			c.API.BaseURL = "http://localhost:3000"
			SetGlobal(c)
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

// TestConfig_ConcurrentMixedOperations mixes Global, SetGlobal and loads.
func TestConfig_ConcurrentMixedOperations(t *testing.T) {
	isolate(t)

	var wg sync.WaitGroup
	for i := 0; i < 90; i++ {
		wg.Add(1)
		switch i % 3 {
		case 0:
			go func() {
				defer wg.Done()
				if Global() == nil {
					t.Error("Global() returned nil")
				}
			}()
		case 1:
			go func() {
				defer wg.Done()
				SetGlobal(Default())
			}()
		case 2:
			go func() {
				defer wg.Done()
				if cfg, _ := Load(); cfg != nil {
					SetGlobal(cfg)
				}
			}()
		}
	}
	wg.Wait()
}

func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolate(t)
	_ = Global()

	custom := Default()
	custom.Theme.Logo = "Acme Docs"
	SetGlobal(custom)

	if got := Global().Theme.Logo; got != "Acme Docs" {
		t.Errorf("Expected logo 'Acme Docs', got '%s'", got)
	}
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.API.BuildPromptPath != "/api/buildPrompt" {
		t.Errorf("BuildPromptPath = %q", cfg.API.BuildPromptPath)
	}
	if cfg.API.QAPath != "/api/qa" {
		t.Errorf("QAPath = %q", cfg.API.QAPath)
	}
	if cfg.Theme.Placeholder != "Ask a question..." {
		t.Errorf("Placeholder = %q", cfg.Theme.Placeholder)
	}
	if cfg.Theme.ModalPlaceholder != "Search..." {
		t.Errorf("ModalPlaceholder = %q", cfg.Theme.ModalPlaceholder)
	}
	if len(cfg.Search.SampleQuestions) != 1 || cfg.Search.SampleQuestions[0] != "What is Embedbase?" {
		t.Errorf("SampleQuestions = %v", cfg.Search.SampleQuestions)
	}
	if cfg.Theme.PoweredByLink != "https://embedbase.xyz" {
		t.Errorf("PoweredByLink = %q", cfg.Theme.PoweredByLink)
	}
	// throttled unless set to 0
	if cfg.API.RequestsPerMinute != 30 {
		t.Errorf("RequestsPerMinute = %d, want 30", cfg.API.RequestsPerMinute)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid default config", func(c *Config) {}, ""},
		{"relative base url", func(c *Config) { c.API.BaseURL = "docs.example.com" }, "api.base_url"},
		{"ftp base url", func(c *Config) { c.API.BaseURL = "ftp://docs.example.com" }, "api.base_url"},
		{"qa path without slash", func(c *Config) { c.API.QAPath = "api/qa" }, "api.qa_path"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }, "api.timeout_seconds"},
		{"negative rpm", func(c *Config) { c.API.RequestsPerMinute = -1 }, "api.requests_per_minute"},
		{"unknown style", func(c *Config) { c.Theme.Style = "neon" }, "theme.style"},
		{"style file", func(c *Config) { c.Theme.Style = "~/styles/mine.json" }, ""},
		{"unknown formatter", func(c *Config) { c.Theme.CodeFormatter = "nope" }, "theme.code_formatter"},
		{"unknown code style", func(c *Config) { c.Theme.CodeStyle = "not-a-style" }, "theme.code_style"},
		{"known code style", func(c *Config) { c.Theme.CodeStyle = "monokai" }, ""},
		{"blank sample", func(c *Config) { c.Search.SampleQuestions = []string{"ok", "  "} }, "search.sample_questions[1]"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad project link", func(c *Config) { c.Theme.ProjectLink = "github.com/x" }, "theme.project_link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidateErrors", err)
			}
			found := false
			for _, v := range verrs {
				if v.Field == tt.wantErr {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want an error for %s", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LoadTOMLKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	content := `
[api]
base_url = "http://localhost:3000/"

[search]
sample_questions = ["How do I install it?", "What is a dataset?"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.API.QAPath != "/api/qa" {
		t.Errorf("QAPath = %q, want default kept", cfg.API.QAPath)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled default should survive a partial file")
	}
	if len(cfg.Search.SampleQuestions) != 2 {
		t.Errorf("SampleQuestions = %v", cfg.Search.SampleQuestions)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config permissions = %o, want 0600", info.Mode().Perm())
	}
}

func TestConfig_LoadJSONFallback(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"theme":{"logo":"JSON Docs"}}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme.Logo != "JSON Docs" {
		t.Errorf("Logo = %q", cfg.Theme.Logo)
	}
	resolved, _ := ResolvedPath()
	if resolved != path {
		t.Errorf("ResolvedPath() = %q, want %q", resolved, path)
	}
}

func TestConfig_LoadBrokenFileFallsBackToDefaults(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[api\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Fatal("expected decode error to be reported")
	}
	if cfg == nil || cfg.API.QAPath != "/api/qa" {
		t.Fatalf("expected defaults alongside the error, got %+v", cfg)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ASKDOCS_BASE_URL", "http://127.0.0.1:8080")
	t.Setenv("ASKDOCS_RPM", "0")
	t.Setenv("ASKDOCS_HISTORY", "false")
	t.Setenv("ASKDOCS_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestsPerMinute != 0 {
		t.Errorf("RequestsPerMinute = %d", cfg.API.RequestsPerMinute)
	}
	if cfg.History.Enabled {
		t.Error("History should be disabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Theme.Logo = "Saved Docs"
	cfg.API.Token = "secret"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path, _ := ConfigPathTOML()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# askdocs configuration file") {
		t.Errorf("missing header: %q", string(data)[:40])
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Theme.Logo != "Saved Docs" {
		t.Errorf("Logo = %q", loaded.Theme.Logo)
	}
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("api.qa_path")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "/api/qa" {
		t.Errorf("Get('api.qa_path') = %v", val)
	}

	if err := cfg.Set("api.timeout_seconds", "45"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.API.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d", cfg.API.TimeoutSeconds)
	}

	if err := cfg.Set("search.sample_questions", "What is Embedbase?, How do I add data?"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if len(cfg.Search.SampleQuestions) != 2 || cfg.Search.SampleQuestions[1] != "How do I add data?" {
		t.Errorf("SampleQuestions = %v", cfg.Search.SampleQuestions)
	}

	if err := cfg.Set("history.enabled", "no"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should be false")
	}

	if _, err := cfg.Get("invalid.key"); err == nil {
		t.Error("Get() with invalid key should return error")
	}
	if _, err := cfg.Get("api.qa_path.more"); err == nil {
		t.Error("Get() through a non-section should return error")
	}
}

func TestConfig_GetAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}

func TestConfig_CloneIsDeep(t *testing.T) {
	original := Default()
	clone := original.Clone()
	clone.Search.SampleQuestions[0] = "changed"

	if original.Search.SampleQuestions[0] != "What is Embedbase?" {
		t.Error("Clone should copy the sample question slice")
	}
}

func TestConfig_StringRedactsToken(t *testing.T) {
	cfg := Default()
	cfg.API.Token = "super-secret-token"

	s := cfg.String()
	if strings.Contains(s, "super-secret-token") {
		t.Error("String() leaked the API token")
	}
	if !strings.Contains(s, "[REDACTED]") {
		t.Error("String() should mark the token as redacted")
	}
	if cfg.API.Token != "super-secret-token" {
		t.Error("String() must not modify the receiver")
	}
}

func TestConfig_HistoryPathDefaultsToConfigDir(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	path, err := cfg.HistoryPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "history.db") {
		t.Errorf("HistoryPath() = %q", path)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[theme]\nlogo = \"Before\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	err := Watch(ctx, path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil && cfg != nil {
			got <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("[theme]\nlogo = \"After\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.Theme.Logo != "After" {
			t.Errorf("reloaded logo = %q", cfg.Theme.Logo)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
