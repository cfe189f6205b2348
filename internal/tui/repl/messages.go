// ============================================================================
// minic - Interactive Editor
// ============================================================================
//
// Package:     repl
// Description: Message types for async operations in the editor
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package repl

import "github.com/msto63/minic/internal/frontend"

// checkedMsg is sent when a check of the buffer finished. seq identifies the
// edit that triggered it so results of outdated buffers can be dropped.
type checkedMsg struct {
	seq    int
	result *frontend.Result
	err    error
}
