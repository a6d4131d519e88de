// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWithPromptAddsFields(t *testing.T) {
	capture := &logCapture{}
	logger := New(capture, Options{Level: "info", Format: "json"})

	WithPrompt(logger, "What is Embedbase?").Info("submit")

	entry := capture.firstEntry(t)
	if entry["prompt"] != "What is Embedbase?" {
		t.Fatalf("expected prompt field, got %+v", entry)
	}
	if entry["prompt_len"] != float64(18) {
		t.Fatalf("expected prompt_len 18, got %+v", entry)
	}
}

func TestWithPromptClipsLongPrompts(t *testing.T) {
	capture := &logCapture{}
	logger := New(capture, Options{Level: "info", Format: "json"})

	WithPrompt(logger, strings.Repeat("a", 200)).Info("submit")

	entry := capture.firstEntry(t)
	prompt, _ := entry["prompt"].(string)
	if len(prompt) != 60 || !strings.HasSuffix(prompt, "...") {
		t.Fatalf("expected clipped prompt, got %q", prompt)
	}
}

func TestWithEndpointSkipsEmpty(t *testing.T) {
	capture := &logCapture{}
	logger := New(capture, Options{Level: "info", Format: "json"})

	WithEndpoint(logger, "").Info("request")

	entry := capture.firstEntry(t)
	if _, ok := entry["endpoint"]; ok {
		t.Fatalf("did not expect endpoint field, got %+v", entry)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	capture := &logCapture{}
	logger := New(capture, Options{Level: "info", Format: "json"})

	logger.Debug("hidden")
	if capture.buf.Len() != 0 {
		t.Fatalf("debug entry should be filtered at info, got %q", capture.buf.String())
	}

	logger = New(capture, Options{Level: "debug", Format: "json"})
	logger.Debug("shown")
	if capture.buf.Len() == 0 {
		t.Fatal("debug entry should be written at debug level")
	}
}

func TestContextRoundTrip(t *testing.T) {
	capture := &logCapture{}
	logger := New(capture, Options{Level: "info", Format: "json"})
	ctx := ContextWithLogger(context.Background(), logger.With("component", "search"))

	Ctx(ctx).Info("hello")

	entry := capture.firstEntry(t)
	if entry["component"] != "search" {
		t.Fatalf("expected component field, got %+v", entry)
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "askdocs.log")

	logger, closer, err := OpenFile(path, "info")
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	logger.Info("first")
	closer.Close()

	logger, closer, err = OpenFile(path, "info")
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	logger.Info("second")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := bytes.Count(data, []byte("\n")); lines != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", lines, data)
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
