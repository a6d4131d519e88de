// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps answered questions in a local SQLite database.
//
// A Store implements search.Recorder, so wiring it into a search.Store with
// search.WithRecorder is enough to record every completed answer:
//
//	h, err := history.Open(config.HistoryPath())
//	if err != nil {
//		return err
//	}
//	defer h.Close()
//
//	store := search.New(client, search.WithRecorder(h))
//
// Entries are identified by UUID. Get accepts any unique prefix of an ID,
// which is what the history show command passes through.
package history
