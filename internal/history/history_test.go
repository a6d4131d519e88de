// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/askdocs/internal/search"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") should fail")
	}
}

func TestStore_AddAndList(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, prompt := range []string{"first", "second", "third"} {
		_, err := s.Add(ctx, Entry{
			Prompt:    prompt,
			Answer:    "answer " + prompt,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Add(%q) error = %v", prompt, err)
		}
	}

	entries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}
	if entries[0].Prompt != "third" || entries[2].Prompt != "first" {
		t.Errorf("List() order = %q..%q, want newest first", entries[0].Prompt, entries[2].Prompt)
	}
	if !entries[2].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", entries[2].CreatedAt, base)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d entries", len(limited))
	}
}

func TestStore_AddFillsIDAndTime(t *testing.T) {
	s := openTemp(t)

	e, err := s.Add(context.Background(), Entry{Prompt: "q"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(e.ID) != 36 {
		t.Errorf("ID = %q, want a UUID", e.ID)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt was not filled in")
	}
	if len(e.ShortID()) != 8 {
		t.Errorf("ShortID() = %q", e.ShortID())
	}
}

func TestStore_GetByPrefix(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	a, _ := s.Add(ctx, Entry{ID: "aaaa1111-0000-0000-0000-000000000000", Prompt: "a"})
	s.Add(ctx, Entry{ID: "aaaa2222-0000-0000-0000-000000000000", Prompt: "b"})

	tests := []struct {
		name    string
		prefix  string
		want    string
		wantErr error
	}{
		{"full id", a.ID, "a", nil},
		{"unique prefix", "aaaa1", "a", nil},
		{"upper case", "AAAA2", "b", nil},
		{"ambiguous", "aaaa", "", ErrAmbiguous},
		{"missing", "ffff", "", ErrNotFound},
		{"empty", "  ", "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Get(ctx, tt.prefix)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Get(%q) error = %v, want %v", tt.prefix, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.prefix, err)
			}
			if got.Prompt != tt.want {
				t.Errorf("Get(%q).Prompt = %q, want %q", tt.prefix, got.Prompt, tt.want)
			}
		})
	}
}

func TestStore_Search(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	s.Add(ctx, Entry{Prompt: "How do I add data?"})
	s.Add(ctx, Entry{Prompt: "What is Embedbase?"})
	s.Add(ctx, Entry{Prompt: "100% of_things"})
	s.Add(ctx, Entry{Prompt: "How do I query?", Answer: "Call the search endpoint with a vector."})

	got, err := s.Search(ctx, "embedbase", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Prompt != "What is Embedbase?" {
		t.Errorf("Search(embedbase) = %+v", got)
	}

	got, _ = s.Search(ctx, "0% of_", 0)
	if len(got) != 1 {
		t.Errorf("Search with wildcard characters returned %d entries, want 1", len(got))
	}

	got, _ = s.Search(ctx, "vector", 0)
	if len(got) != 1 || got[0].Prompt != "How do I query?" {
		t.Errorf("Search(vector) should match the answer text, got %+v", got)
	}
}

func TestStore_ClearAndCount(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.Add(ctx, Entry{Prompt: "q"})
	}

	n, err := s.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count() = %d, %v; want 3", n, err)
	}

	removed, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Clear() removed %d, want 3", removed)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("Count() after Clear = %d", n)
	}
}

func TestStore_Record(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	started := time.Now().Add(-time.Second)

	err := s.Record(ctx, search.Exchange{
		Prompt:        "hi",
		RefinedPrompt: "hi refined",
		Answer:        "Hello world",
		Chunks:        2,
		StartedAt:     started,
		Duration:      1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, _ := s.List(ctx, 1)
	if len(entries) != 1 {
		t.Fatalf("List() returned %d entries", len(entries))
	}
	e := entries[0]
	if e.Prompt != "hi" || e.RefinedPrompt != "hi refined" || e.Answer != "Hello world" {
		t.Errorf("recorded entry = %+v", e)
	}
	if e.Chunks != 2 || e.Duration != 1500*time.Millisecond {
		t.Errorf("Chunks/Duration = %d/%v", e.Chunks, e.Duration)
	}
}

func TestStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.Add(ctx, Entry{Prompt: "kept"})
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}

	entries, _ := s.List(ctx, 0)
	if len(entries) != 1 || entries[0].Prompt != "kept" {
		t.Errorf("entries after reopen = %+v", entries)
	}
}

func TestStore_Closed(t *testing.T) {
	s := openTemp(t)
	s.Close()

	if _, err := s.Add(context.Background(), Entry{Prompt: "q"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Add() after Close error = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
