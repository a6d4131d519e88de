// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"pkt.systems/pslog"

	"github.com/jeranaias/askdocs/internal/docsapi"
	"github.com/jeranaias/askdocs/internal/logging"
)

// Option configures a Store.
type Option func(*Store)

// WithSamples sets the sample questions offered under the prompt.
func WithSamples(samples ...string) Option {
	return func(s *Store) {
		s.samples = append([]string(nil), samples...)
	}
}

// WithRecorder hands completed exchanges to r.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// WithLogger sets the logger. Without it Submit logs to the logger bound to
// its context.
func WithLogger(l pslog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithMaxChars caps the prompt length in runes; 0 means no cap.
func WithMaxChars(n int) Option {
	return func(s *Store) {
		s.maxChars = n
	}
}

// Store is the modal controller. All methods are safe for concurrent use.
type Store struct {
	answerer Answerer
	recorder Recorder
	logger   pslog.Logger
	samples  []string
	maxChars int

	mu     sync.Mutex
	state  State
	output strings.Builder

	// gen identifies the current session; Close and Submit bump it so a
	// superseded Submit can tell its updates are stale.
	gen    uint64
	cancel context.CancelFunc

	subs    map[int]func(State)
	nextSub int
}

// New returns a closed, empty Store backed by answerer.
func New(answerer Answerer, opts ...Option) *Store {
	s := &Store{
		answerer: answerer,
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Samples returns the configured sample questions.
func (s *Store) Samples() []string {
	return append([]string(nil), s.samples...)
}

// Subscribe registers fn to receive the new state after every change, in
// order. fn runs with the Store locked: it must not call back into the Store
// and should return quickly. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Open shows the modal. Nothing else changes.
func (s *Store) Open() {
	s.mutate(func(st *State) {
		st.Open = true
	})
}

// Close hides the modal and resets every field. A running Submit is
// canceled and its remaining updates are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	before := s.state
	s.reset()
	s.notifyIfChangedLocked(before)
}

// reset is only reachable from Close.
func (s *Store) reset() {
	s.state = State{}
	s.output.Reset()
}

// SetPrompt replaces the prompt text, as typed.
func (s *Store) SetPrompt(prompt string) {
	prompt = s.clip(prompt)
	s.mutate(func(st *State) {
		st.Prompt = prompt
	})
}

// SelectSample puts q into the prompt verbatim, clipped to the max chars
// like typed text. It does not submit.
func (s *Store) SelectSample(q string) {
	q = s.clip(q)
	s.mutate(func(st *State) {
		st.Prompt = q
	})
}

// SelectSampleIndex selects the i-th configured sample.
func (s *Store) SelectSampleIndex(i int) error {
	if i < 0 || i >= len(s.samples) {
		return ErrNoSample
	}
	s.SelectSample(s.samples[i])
	return nil
}

func (s *Store) clip(prompt string) string {
	if s.maxChars <= 0 {
		return prompt
	}
	runes := []rune(prompt)
	if len(runes) <= s.maxChars {
		return prompt
	}
	return string(runes[:s.maxChars])
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit sends the current prompt and streams the answer into Output.
//
// The error from either backend call or from the stream is returned as is;
// a non-2xx answer carries its HTTP status text and leaves Output empty. A
// successful answer without a body returns nil with Output empty. If Close
// or another Submit supersedes this one, ErrCanceled is returned.
func (s *Store) Submit(ctx context.Context) error {
	s.mu.Lock()
	prompt := s.state.Prompt
	if strings.TrimSpace(prompt) == "" {
		s.mu.Unlock()
		return ErrEmptyPrompt
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.gen++
	gen := s.gen
	s.cancel = cancel

	before := s.state
	s.state.Loading = true
	s.state.Output = ""
	s.output.Reset()
	s.notifyIfChangedLocked(before)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	log := s.logger
	if log == nil {
		log = logging.Ctx(ctx)
	}
	log = logging.WithPrompt(log, prompt)
	started := time.Now()
	log.Debug("search submit started")

	refined, err := s.answerer.BuildPrompt(ctx, prompt)
	if err != nil {
		// Nothing else will clear the flag on this path.
		s.update(gen, func(st *State) { st.Loading = false })
		return s.failed(gen, log, "build prompt failed", err)
	}
	log.Trace("search prompt refined", "refined_len", len(refined))

	stream, err := s.answerer.QA(ctx, refined)
	if !s.update(gen, func(st *State) { st.Loading = false }) {
		if stream != nil {
			stream.Close()
		}
		return ErrCanceled
	}
	if errors.Is(err, docsapi.ErrNoBody) {
		log.Debug("search answer had no body")
		return nil
	}
	if err != nil {
		return s.failed(gen, log, "qa request failed", err)
	}
	defer stream.Close()

	chunks := 0
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s.failed(gen, log, "answer stream failed", err)
		}
		if !s.appendChunk(gen, chunk) {
			return ErrCanceled
		}
		chunks++
	}

	var answer string
	if !s.update(gen, func(st *State) {
		st.Loading = false
		answer = st.Output
	}) {
		return ErrCanceled
	}

	elapsed := time.Since(started)
	log.Info("search answered", "chunks", chunks, "answer_len", len(answer), "elapsed", elapsed.String())

	if s.recorder != nil {
		ex := Exchange{
			Prompt:        prompt,
			RefinedPrompt: refined,
			Answer:        answer,
			Chunks:        chunks,
			StartedAt:     started,
			Duration:      elapsed,
		}
		if err := s.recorder.Record(context.WithoutCancel(ctx), ex); err != nil {
			log.Warn("search history record failed", "err", err)
		}
	}
	return nil
}

func (s *Store) failed(gen uint64, log pslog.Logger, msg string, err error) error {
	if !s.current(gen) {
		return ErrCanceled
	}
	log.Warn(msg, "err", err)
	return err
}

// =============================================================================
// INTERNAL
// =============================================================================

func (s *Store) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

func (s *Store) appendChunk(gen uint64, chunk string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.output.WriteString(chunk)
	s.state.Output = s.output.String()
	s.notifyLocked()
	return true
}

// update applies fn if gen is still the current session.
func (s *Store) update(gen uint64, fn func(*State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	before := s.state
	fn(&s.state)
	s.notifyIfChangedLocked(before)
	return true
}

func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.state
	fn(&s.state)
	s.notifyIfChangedLocked(before)
}

func (s *Store) notifyIfChangedLocked(before State) {
	if before != s.state {
		s.notifyLocked()
	}
}

func (s *Store) notifyLocked() {
	for _, fn := range s.subs {
		fn(s.state)
	}
}
