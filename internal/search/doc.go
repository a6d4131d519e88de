// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search holds the state of the docs search modal.
//
// A Store owns four values: whether the modal is open, the prompt being
// typed, the answer text accumulated so far, and a loading flag. Any front
// end binds to it through Snapshot and Subscribe and drives it through Open,
// SetPrompt, SelectSample, Submit and Close.
//
// # Submit
//
// Submit runs the two-stage round trip against an Answerer: the raw prompt
// is refined by BuildPrompt, the refined prompt is sent to QA, and every
// chunk of the returned stream is appended to Output with one notification
// per chunk. Loading is cleared as soon as the QA response arrives, before
// its status is checked and before the first chunk is read, and is cleared
// again when the stream ends.
//
// # Close
//
// Close is the only reset point. It also cancels an in-flight Submit, and
// any chunk the canceled Submit still receives is dropped, so a closed modal
// never shows output from an earlier session.
package search
