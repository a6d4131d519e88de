// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docsapi

import (
	"errors"
	"io"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// ANSWER STREAM
// =============================================================================

const readBufferSize = 4096

// AnswerStream decodes a qa response body into text chunks.
//
// Bytes are decoded as UTF-8. A rune split across two network reads is held
// back until it is complete, and invalid sequences become U+FFFD.
type AnswerStream struct {
	body    io.ReadCloser
	decoded io.Reader
	buf     []byte

	// pending holds an error that arrived together with the last chunk.
	pending error

	closeOnce sync.Once
	closeErr  error
}

// NewAnswerStream wraps body. The stream owns body and closes it on Close.
func NewAnswerStream(body io.ReadCloser) *AnswerStream {
	return &AnswerStream{
		body:    body,
		decoded: transform.NewReader(body, unicode.UTF8.NewDecoder()),
		buf:     make([]byte, readBufferSize),
	}
}

// Next blocks until the next chunk of text is available. It returns io.EOF
// once the body is exhausted. Empty reads are skipped.
func (s *AnswerStream) Next() (string, error) {
	if s.pending != nil {
		err := s.pending
		s.pending = nil
		return "", streamError(err)
	}

	for {
		n, err := s.decoded.Read(s.buf)
		if n > 0 {
			s.pending = err
			return string(s.buf[:n]), nil
		}
		if err != nil {
			return "", streamError(err)
		}
	}
}

func streamError(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: "answer stream interrupted", Cause: err}
}

// Close releases the response body. It is safe to call more than once.
func (s *AnswerStream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}
