// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns answer markdown into styled terminal text.
//
// A Renderer wraps a glamour term renderer built from the theme section of
// the configuration. Code blocks are highlighted by chroma using the
// configured formatter and, when set, a chroma style in place of the one
// bundled with the glamour style. Rendering never fails: if glamour cannot
// be built or errors on a document, the markdown is returned as is.
package render
