// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/askdocs/internal/search"
)

// Bridge turns store notifications into StateMsgs.
//
// Store subscribers run with the store locked, so the subscriber only
// posts to a one slot mailbox. Bursts collapse into one wake-up, and the
// message built from it carries the newest snapshot.
type Bridge struct {
	store       *search.Store
	wake        chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

// NewBridge subscribes to store.
func NewBridge(store *search.Store) *Bridge {
	b := &Bridge{
		store: store,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	b.unsubscribe = store.Subscribe(func(search.State) {
		select {
		case b.wake <- struct{}{}:
		default:
		}
	})
	return b
}

// Wait returns a command that blocks until the store changes. Update must
// re-arm it after every StateMsg. After Close the command returns nil.
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.wake:
			return StateMsg{State: b.store.Snapshot()}
		case <-b.done:
			return nil
		}
	}
}

// Close unsubscribes and releases a pending Wait.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		b.unsubscribe()
		close(b.done)
	})
}
