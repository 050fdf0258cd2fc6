// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjacmd

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

// ErrTokenize is returned when a command has unbalanced quotes or ends in an
// escape character.
var ErrTokenize = errors.New("malformed shell command")

// Split breaks command into its argv the way a POSIX shell would, without
// performing any expansion. Inside double quotes a backslash only escapes
// $, `, ", \ and newline; before anything else it is kept.
func Split(command string) ([]string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrTokenize, command, err)
	}
	return args, nil
}
