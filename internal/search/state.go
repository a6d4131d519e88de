// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"errors"
	"time"

	"github.com/jeranaias/askdocs/internal/docsapi"
)

// State is a snapshot of the modal.
type State struct {
	Open    bool
	Prompt  string
	Output  string
	Loading bool
}

// Answerer performs the two backend calls. *docsapi.Client implements it.
type Answerer interface {
	BuildPrompt(ctx context.Context, prompt string) (string, error)
	QA(ctx context.Context, prompt string) (*docsapi.AnswerStream, error)
}

// Exchange is one completed question and answer.
type Exchange struct {
	Prompt        string
	RefinedPrompt string
	Answer        string
	Chunks        int
	StartedAt     time.Time
	Duration      time.Duration
}

// Recorder receives every exchange whose stream ran to completion.
type Recorder interface {
	Record(ctx context.Context, ex Exchange) error
}

var (
	// ErrEmptyPrompt is returned by Submit when the prompt is blank.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrCanceled is returned by a Submit that was superseded by Close or by
	// a newer Submit.
	ErrCanceled = errors.New("submit canceled")

	// ErrNoSample is returned by SelectSampleIndex for an unknown index.
	ErrNoSample = errors.New("no such sample question")
)
