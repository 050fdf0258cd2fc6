// Copyright 2018 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package color wraps log prefixes in ANSI color escapes when the output
// supports them.
package color

import (
	"fmt"
	"os"

	"go.compdbgen.dev/compdbgen/tools/lib/isatty"
)

// Colorfn formats its arguments and wraps the result in a color.
type Colorfn func(format string, a ...interface{}) string

const (
	escape = "\033["
	clear  = escape + "0m"
)

// ColorCode is an ANSI foreground color.
type ColorCode int

const (
	BlackFg ColorCode = iota + 30
	RedFg
	GreenFg
	YellowFg
	BlueFg
	MagentaFg
	CyanFg
	WhiteFg
	DefaultFg
)

type Color interface {
	Red(format string, a ...interface{}) string
	Green(format string, a ...interface{}) string
	Yellow(format string, a ...interface{}) string
	Blue(format string, a ...interface{}) string
	Cyan(format string, a ...interface{}) string
	WithColor(code ColorCode, format string, a ...interface{}) string
	Enabled() bool
}

// palette implements Color. A disabled palette only formats.
type palette struct {
	enabled bool
}

func (p palette) WithColor(code ColorCode, format string, a ...interface{}) string {
	s := fmt.Sprintf(format, a...)
	if !p.enabled || code == DefaultFg {
		return s
	}
	return fmt.Sprintf("%v%vm%v%v", escape, code, s, clear)
}

func (p palette) Red(format string, a ...interface{}) string {
	return p.WithColor(RedFg, format, a...)
}

func (p palette) Green(format string, a ...interface{}) string {
	return p.WithColor(GreenFg, format, a...)
}

func (p palette) Yellow(format string, a ...interface{}) string {
	return p.WithColor(YellowFg, format, a...)
}

func (p palette) Blue(format string, a ...interface{}) string {
	return p.WithColor(BlueFg, format, a...)
}

func (p palette) Cyan(format string, a ...interface{}) string {
	return p.WithColor(CyanFg, format, a...)
}

func (p palette) Enabled() bool { return p.enabled }

// EnableColor is a flag value selecting when output is colored.
type EnableColor int

const (
	ColorNever EnableColor = iota
	ColorAuto
	ColorAlways
)

var enableColorNames = map[EnableColor]string{
	ColorNever:  "never",
	ColorAuto:   "auto",
	ColorAlways: "always",
}

func (ec *EnableColor) String() string {
	return enableColorNames[*ec]
}

func (ec *EnableColor) Set(s string) error {
	for v, name := range enableColorNames {
		if name == s {
			*ec = v
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid color value", s)
}

func colorAvailable() bool {
	switch os.Getenv("TERM") {
	case "dumb", "":
		return false
	}
	return isatty.IsTerminal()
}

// NewColor returns a Color honoring the requested mode. ColorAuto enables
// colors only when stdout is a capable terminal.
func NewColor(ec EnableColor) Color {
	switch ec {
	case ColorAlways:
		return palette{enabled: true}
	case ColorAuto:
		return palette{enabled: colorAvailable()}
	}
	return palette{}
}
