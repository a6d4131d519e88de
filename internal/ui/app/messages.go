// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/jeranaias/askdocs/internal/config"
	"github.com/jeranaias/askdocs/internal/search"
)

// StateMsg reports that the store changed. State is the snapshot taken
// when the message was built; Update re-reads the store, since newer changes
// may already have been made from the Update loop itself.
type StateMsg struct {
	State search.State
}

// SubmitDoneMsg carries the result of a Submit.
type SubmitDoneMsg struct {
	Err error
}

// ConfigReloadedMsg carries a reloaded configuration or the reason it
// could not be loaded.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// statusClearMsg expires the status line set with the same id.
type statusClearMsg struct {
	id int
}
