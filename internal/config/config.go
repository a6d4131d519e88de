// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for askdocs.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.askdocs/config.toml
//   - ~/.askdocs/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/formatters"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/askdocs/internal/util"
)

// CurrentVersion is written into freshly generated config files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete askdocs configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Docs backend endpoints
	API APIConfig `toml:"api" json:"api"`

	// Site branding shown around the search modal
	Theme ThemeConfig `toml:"theme" json:"theme"`

	Search  SearchConfig  `toml:"search" json:"search"`
	History HistoryConfig `toml:"history" json:"history"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// APIConfig describes the prompt-building and question-answering backend.
type APIConfig struct {
	BaseURL           string `toml:"base_url" json:"base_url"`
	BuildPromptPath   string `toml:"build_prompt_path" json:"build_prompt_path"`
	QAPath            string `toml:"qa_path" json:"qa_path"`
	Token             string `toml:"token" json:"token,omitempty"`
	TimeoutSeconds    int    `toml:"timeout_seconds" json:"timeout_seconds"`
	RequestsPerMinute int    `toml:"requests_per_minute" json:"requests_per_minute"`
}

// ThemeConfig holds the docs site theme: branding, links and rendering.
type ThemeConfig struct {
	Logo               string `toml:"logo" json:"logo"`
	ProjectLink        string `toml:"project_link" json:"project_link"`
	ChatLink           string `toml:"chat_link" json:"chat_link"`
	DocsRepositoryBase string `toml:"docs_repository_base" json:"docs_repository_base"`
	FooterText         string `toml:"footer_text" json:"footer_text"`
	PoweredByText      string `toml:"powered_by_text" json:"powered_by_text"`
	PoweredByLink      string `toml:"powered_by_link" json:"powered_by_link"`

	// Placeholder is shown in the closed search bar, ModalPlaceholder in the
	// bar inside the modal.
	Placeholder      string `toml:"placeholder" json:"placeholder"`
	ModalPlaceholder string `toml:"modal_placeholder" json:"modal_placeholder"`

	// Markdown rendering
	Style         string `toml:"style" json:"style"`
	WordWrap      int    `toml:"word_wrap" json:"word_wrap"`
	CodeFormatter string `toml:"code_formatter" json:"code_formatter"`
	CodeStyle     string `toml:"code_style" json:"code_style"`
}

// SearchConfig configures the search modal.
type SearchConfig struct {
	SampleQuestions []string `toml:"sample_questions" json:"sample_questions"`
	MaxChars        int      `toml:"max_chars" json:"max_chars"`
}

// HistoryConfig configures the local record of answered questions.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path" json:"path"`
}

// LoggingConfig configures pslog output.
type LoggingConfig struct {
	Level  string `toml:"level" json:"level"`
	File   string `toml:"file" json:"file"`
	Format string `toml:"format" json:"format"`
}

// Timeout returns the non-streaming request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:           "https://docs.embedbase.xyz",
			BuildPromptPath:   "/api/buildPrompt",
			QAPath:            "/api/qa",
			TimeoutSeconds:    30,
			RequestsPerMinute: 30,
		},
		Theme: ThemeConfig{
			Logo:               "Embedbase",
			ProjectLink:        "https://github.com/another-ai/embedbase",
			ChatLink:           "https://discord.gg/DYE6VFTJET",
			DocsRepositoryBase: "https://github.com/another-ai/embedbase-docs",
			FooterText:         "Embedbase Nextra Docs",
			PoweredByText:      "Powered by Embedbase",
			PoweredByLink:      "https://embedbase.xyz",
			Placeholder:        "Ask a question...",
			ModalPlaceholder:   "Search...",
			Style:              "auto",
			WordWrap:           0,
			CodeFormatter:      "terminal256",
		},
		Search: SearchConfig{
			SampleQuestions: []string{"What is Embedbase?"},
			MaxChars:        1000,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the askdocs configuration directory.
// ASKDOCS_HOME overrides the default of ~/.askdocs.
func ConfigDir() (string, error) {
	if dir := os.Getenv("ASKDOCS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".askdocs"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ResolvedPath returns the config file Load would read, or the TOML path
// when neither file exists yet.
func ResolvedPath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// HistoryPath returns the configured history database path, defaulting to
// history.db inside the config directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return expandHome(c.History.Path)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// LogPath returns the configured log file path, expanded. Empty means stderr.
func (c *Config) LogPath() (string, error) {
	if c.Logging.File == "" {
		return "", nil
	}
	return expandHome(c.Logging.File)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ensureSecurePermissions tightens config files to 0600; they may hold an API token.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the TOML config, then the JSON config, then falls back to
// defaults. Environment overrides are applied last. A file that fails to
// decode is reported alongside the defaults that were used instead.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = errors.Join(loadErr, fmt.Errorf("failed to load JSON config: %w", err))
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads one specific file (".json" or TOML) with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// whatever cfg already held.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		fmt.Fprintf(os.Stderr, "Warning: unknown config keys in %s: %s\n", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default TOML path.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with a short header, atomically and 0600.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# askdocs configuration file\n")
	b.WriteString("# Generated by askdocs - edit with care\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON, atomically and 0600.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validStyles  = []string{"auto", "ascii", "dark", "dracula", "light", "notty", "pink", "tokyo-night"}
	validLevels  = []string{"trace", "debug", "info", "error"}
	validFormats = []string{"console", "json"}
)

// Validate checks the configuration and returns ValidateErrors when any
// field is out of range.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// ==========================================================================
	// API
	// ==========================================================================

	if u, err := url.Parse(c.API.BaseURL); err != nil {
		add("api.base_url", "invalid URL: %v", err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		add("api.base_url", "scheme must be http or https, got '%s'", u.Scheme)
	} else if u.Host == "" {
		add("api.base_url", "missing host")
	}
	if !strings.HasPrefix(c.API.BuildPromptPath, "/") {
		add("api.build_prompt_path", "must start with '/', got '%s'", c.API.BuildPromptPath)
	}
	if !strings.HasPrefix(c.API.QAPath, "/") {
		add("api.qa_path", "must start with '/', got '%s'", c.API.QAPath)
	}
	if c.API.TimeoutSeconds < 1 || c.API.TimeoutSeconds > 600 {
		add("api.timeout_seconds", "must be between 1 and 600, got %d", c.API.TimeoutSeconds)
	}
	if c.API.RequestsPerMinute < 0 {
		add("api.requests_per_minute", "must not be negative, got %d", c.API.RequestsPerMinute)
	}

	// ==========================================================================
	// Theme
	// ==========================================================================

	for field, link := range map[string]string{
		"theme.project_link":         c.Theme.ProjectLink,
		"theme.chat_link":            c.Theme.ChatLink,
		"theme.docs_repository_base": c.Theme.DocsRepositoryBase,
		"theme.powered_by_link":      c.Theme.PoweredByLink,
	} {
		if link == "" {
			continue
		}
		if u, err := url.Parse(link); err != nil || u.Scheme == "" {
			add(field, "not an absolute URL: '%s'", link)
		}
	}
	if !contains(validStyles, c.Theme.Style) && !strings.HasSuffix(c.Theme.Style, ".json") {
		add("theme.style", "invalid style '%s', must be one of: %s or a .json style file", c.Theme.Style, strings.Join(validStyles, ", "))
	}
	if c.Theme.WordWrap < 0 || c.Theme.WordWrap > 500 {
		add("theme.word_wrap", "must be between 0 and 500, got %d", c.Theme.WordWrap)
	}
	if _, ok := formatters.Registry[c.Theme.CodeFormatter]; !ok {
		add("theme.code_formatter", "unknown formatter '%s', must be one of: %s",
			c.Theme.CodeFormatter, strings.Join(formatters.Names(), ", "))
	}
	if c.Theme.CodeStyle != "" {
		if _, ok := chromastyles.Registry[c.Theme.CodeStyle]; !ok {
			add("theme.code_style", "unknown chroma style '%s'", c.Theme.CodeStyle)
		}
	}

	// ==========================================================================
	// Search
	// ==========================================================================

	for i, q := range c.Search.SampleQuestions {
		if strings.TrimSpace(q) == "" {
			add(fmt.Sprintf("search.sample_questions[%d]", i), "must not be blank")
		}
	}
	if c.Search.MaxChars < 1 {
		add("search.max_chars", "must be positive, got %d", c.Search.MaxChars)
	}

	// ==========================================================================
	// Logging
	// ==========================================================================

	if !contains(validLevels, strings.ToLower(c.Logging.Level)) {
		add("logging.level", "invalid level '%s', must be one of: %s", c.Logging.Level, strings.Join(validLevels, ", "))
	}
	if !contains(validFormats, strings.ToLower(c.Logging.Format)) {
		add("logging.format", "invalid format '%s', must be one of: %s", c.Logging.Format, strings.Join(validFormats, ", "))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// SetDefaults fills zero values that a partial file or env override left behind.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.BuildPromptPath == "" {
		c.API.BuildPromptPath = d.API.BuildPromptPath
	}
	if c.API.QAPath == "" {
		c.API.QAPath = d.API.QAPath
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = d.API.TimeoutSeconds
	}
	if c.Theme.Placeholder == "" {
		c.Theme.Placeholder = d.Theme.Placeholder
	}
	if c.Theme.ModalPlaceholder == "" {
		c.Theme.ModalPlaceholder = d.Theme.ModalPlaceholder
	}
	if c.Theme.Style == "" {
		c.Theme.Style = d.Theme.Style
	}
	if c.Theme.CodeFormatter == "" {
		c.Theme.CodeFormatter = d.Theme.CodeFormatter
	}
	if c.Search.MaxChars == 0 {
		c.Search.MaxChars = d.Search.MaxChars
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// Migrate upgrades older config layouts in place.
func (c *Config) Migrate() error {
	switch c.Version {
	case "", "0":
		c.Version = CurrentVersion
	case CurrentVersion:
	default:
		return fmt.Errorf("unsupported config version '%s'", c.Version)
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ASKDOCS_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ASKDOCS_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("ASKDOCS_API_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("ASKDOCS_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("ASKDOCS_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.RequestsPerMinute = n
		}
	}
	if v := os.Getenv("ASKDOCS_STYLE"); v != "" {
		c.Theme.Style = v
	}
	if v := os.Getenv("ASKDOCS_HISTORY"); v != "" {
		c.History.Enabled = parseBool(v)
	}
	if v := os.Getenv("ASKDOCS_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("ASKDOCS_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g. "api.base_url").
func (c *Config) Get(key string) (any, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a configuration value using dot notation. String values are
// converted to the field's type; string slices take a comma separated list.
func (c *Config) Set(key string, value any) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts snake_case or kebab-case to the Go field name.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

func setFieldValue(field reflect.Value, value any) error {
	if s, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(s)
			return nil
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(n)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(s))
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, item := range strings.Split(s, ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns every configuration key in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"api.base_url",
		"api.build_prompt_path",
		"api.qa_path",
		"api.token",
		"api.timeout_seconds",
		"api.requests_per_minute",
		"theme.logo",
		"theme.project_link",
		"theme.chat_link",
		"theme.docs_repository_base",
		"theme.footer_text",
		"theme.powered_by_text",
		"theme.powered_by_link",
		"theme.placeholder",
		"theme.modal_placeholder",
		"theme.style",
		"theme.word_wrap",
		"theme.code_formatter",
		"theme.code_style",
		"search.sample_questions",
		"search.max_chars",
		"history.enabled",
		"history.path",
		"logging.level",
		"logging.file",
		"logging.format",
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Search.SampleQuestions != nil {
		clone.Search.SampleQuestions = append([]string(nil), c.Search.SampleQuestions...)
	}
	return &clone
}

// String renders the config as JSON with the API token redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.API.Token != "" {
		safe.API.Token = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration. Until SetGlobal is called
// it loads the default file once; a file that fails to load yields defaults.
// Commands publish their effective config here, and the TUI republishes
// each live reload.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, _ := Load()
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the global configuration.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the global state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
