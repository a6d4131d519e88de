// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docsapi

// PromptRequest is the body of both the build-prompt and qa calls.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// PromptResponse is returned by the build-prompt endpoint.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}
