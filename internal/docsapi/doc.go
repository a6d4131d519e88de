// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docsapi is the HTTP client for a docs site's question-answering
// backend.
//
// The backend exposes two endpoints. The build-prompt endpoint takes the
// user's raw question and returns a refined prompt; the qa endpoint takes
// that refined prompt and streams the answer back as UTF-8 text.
//
// # Key Types
//
//   - Client: Issues both calls, throttled by a token bucket
//   - AnswerStream: Decodes the qa body into text chunks
//   - ClientError: Typed error carrying the HTTP status text on failure
//
// # Usage
//
//	client := docsapi.NewClient("https://docs.example.com")
//	refined, err := client.BuildPrompt(ctx, "What is Embedbase?")
//	if err != nil {
//	    return err
//	}
//	stream, err := client.QA(ctx, refined)
//	if err != nil {
//	    return err // a *ClientError with the status text on non-2xx
//	}
//	defer stream.Close()
//	for {
//	    chunk, err := stream.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
package docsapi
