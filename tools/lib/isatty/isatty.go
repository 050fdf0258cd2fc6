// Copyright 2018 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isatty reports whether standard output is attached to a terminal.
package isatty

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if os.Stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
