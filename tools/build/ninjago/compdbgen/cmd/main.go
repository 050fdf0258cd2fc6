// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// compdbgen generates compile_commands.json from the clang rules of a ninja
// build file, or filters an existing one.
//
// usage:
//  $ compdbgen generate -input out/soong/build.ninja -root $ANDROID_BUILD_TOP
//  $ compdbgen generate -input compile_commands.json -pattern frameworks/av
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"go.compdbgen.dev/compdbgen/tools/lib/color"
	"go.compdbgen.dev/compdbgen/tools/lib/logger"
)

var (
	colors = color.ColorAuto
	level  = logger.InfoLevel
)

func init() {
	flag.Var(&colors, "color", "use color in output, can be never, auto, always")
	flag.Var(&level, "level", "output verbosity, can be fatal, error, warning, info, debug or trace")
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&generateCmd{}, "")
	subcommands.Register(&extractCmd{}, "")

	flag.Parse()

	l := logger.NewLogger(level, color.NewColor(colors), os.Stdout, os.Stderr, "compdbgen ")
	l.SetFlags(logger.Ltime | logger.Lmicroseconds | logger.Lshortfile)
	ctx := logger.WithLogger(context.Background(), l)

	os.Exit(int(subcommands.Execute(ctx)))
}
