// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ninjacmd recovers clang command lines from the rules of a ninja
// build file.
//
// Only commands wrapped as
//
//	command = /bin/bash -c "PWD=/proc/self/cwd <compiler> <args>..."
//
// are recognized, which is how Android's soong emits compile rules.
package ninjacmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrDecode is returned when a line of the build file is not valid UTF-8.
var ErrDecode = errors.New("invalid UTF-8")

// cwdPrefix is how soong pins the working directory of sandboxed commands.
const cwdPrefix = "PWD=/proc/self/cwd "

// maxLineSize bounds a single line. Generated compile commands easily exceed
// bufio's 64KiB default.
const maxLineSize = 64 << 20

// wordClass is the set of Unicode word characters. RE2's \b and \s are
// ASCII-only, so the boundaries around the compiler name and the leading
// whitespace are spelled out with Unicode classes.
const wordClass = `\p{L}\p{M}\p{Nd}\p{Pc}`

var commandRE = regexp.MustCompile(`^[\s\v\x{85}\p{Z}]*command = /bin/bash -c "` +
	`(PWD=(?:.*[^` + wordClass + `])?(?:clang|clang\+\+)(?:[^` + wordClass + `].*)?)"$`)

// ExtractCommand returns the shell command wrapped in line, or false if line
// is not a clang rule command.
func ExtractCommand(line string) (string, bool) {
	m := commandRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimPrefix(m[1], cwdPrefix), true
}

// Extractor reads clang commands from a build file one line at a time.
// Its use mirrors bufio.Scanner:
//
//	e := NewExtractor(r)
//	for e.Scan() {
//		use(e.Command())
//	}
//	if err := e.Err(); err != nil { ... }
type Extractor struct {
	scanner *bufio.Scanner
	lineno  int
	cmd     string
	err     error
}

func NewExtractor(r io.Reader) *Extractor {
	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLineSize)
	return &Extractor{scanner: s}
}

// Scan advances to the next recognized command, skipping all other lines.
// It returns false at the end of input or on the first error.
func (e *Extractor) Scan() bool {
	e.cmd = ""
	if e.err != nil {
		return false
	}
	for e.scanner.Scan() {
		e.lineno++
		line := e.scanner.Text()
		if !utf8.ValidString(line) {
			e.err = fmt.Errorf("line %d: %w", e.lineno, ErrDecode)
			return false
		}
		if cmd, ok := ExtractCommand(line); ok {
			e.cmd = cmd
			return true
		}
	}
	if err := e.scanner.Err(); err != nil {
		e.err = fmt.Errorf("line %d: %w", e.lineno+1, err)
	}
	return false
}

// Command returns the command found by the last successful Scan.
func (e *Extractor) Command() string { return e.cmd }

// Line returns the 1-based number of the last line read.
func (e *Extractor) Line() int { return e.lineno }

// Err returns the first error encountered, or nil at a clean end of input.
func (e *Extractor) Err() error { return e.err }

// ExtractAll returns every command in r, in file order.
func ExtractAll(r io.Reader) ([]string, error) {
	var cmds []string
	e := NewExtractor(r)
	for e.Scan() {
		cmds = append(cmds, e.Command())
	}
	return cmds, e.Err()
}
