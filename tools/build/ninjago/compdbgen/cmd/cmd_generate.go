// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"go.compdbgen.dev/compdbgen/tools/build/ninjago/compdbgen"
	"go.compdbgen.dev/compdbgen/tools/lib/flagmisc"
	"go.compdbgen.dev/compdbgen/tools/lib/logger"
	"go.compdbgen.dev/compdbgen/tools/lib/streams"
)

type generateCmd struct {
	params     compdbgen.Params
	patterns   flagmisc.StringsValue
	configPath string

	// templatePath is where "-config -" writes its template.
	templatePath string
}

func (*generateCmd) Name() string { return "generate" }

func (*generateCmd) Synopsis() string {
	return "writes a compilation database from a .ninja file or a filtered .json database"
}

func (*generateCmd) Usage() string {
	return `compdbgen generate -input <file> [-root <dir>] [-pattern <substring>]...

If -input is a .ninja file, every clang rule command in it becomes an entry
running in -root. If it is a .json compilation database, the entries whose
file contains one of the patterns are kept. Patterns also apply to .ninja
input when given.

flags:
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	c.params = compdbgen.DefaultParams()
	c.templatePath = compdbgen.TemplateFilename

	f.StringVar(&c.params.Input, "input", "", "path to a .ninja build file or a .json compilation database")
	f.StringVar(&c.params.Input, "i", "", "shorthand for -input")
	f.StringVar(&c.params.Root, "root", "", "directory the compiler commands run in; required for .ninja input")
	f.StringVar(&c.params.Root, "r", "", "shorthand for -root")
	f.StringVar(&c.params.OutputDir, "output", compdbgen.DefaultOutputDir, "output directory")
	f.StringVar(&c.params.OutputDir, "o", compdbgen.DefaultOutputDir, "shorthand for -output")
	f.StringVar(&c.params.Filename, "filename", compdbgen.DefaultFilename, "output file name")
	f.StringVar(&c.params.Filename, "f", compdbgen.DefaultFilename, "shorthand for -filename")
	f.BoolVar(&c.params.Pretty, "pretty", true, "indent the output")
	f.BoolVar(&c.params.Pretty, "p", true, "shorthand for -pretty")
	f.Var(&c.patterns, "pattern", "keep only entries whose file contains this substring; may be repeated")
	f.Var(&c.patterns, "P", "shorthand for -pattern")
	f.StringVar(&c.configPath, "config", "", `parameter file (.json, .yaml or .yml) replacing all other flags; "-" writes `+compdbgen.TemplateFilename+` from the current flags and exits`)
	f.StringVar(&c.configPath, "c", "", "shorthand for -config")
}

func (c *generateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		logger.Errorf(ctx, "%s", err)
		if errors.Is(err, compdbgen.ErrConfiguration) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *generateCmd) run(ctx context.Context) error {
	p := c.params
	p.Patterns = c.patterns

	switch c.configPath {
	case "":
	case "-":
		if err := compdbgen.WriteTemplate(c.templatePath, p); err != nil {
			return err
		}
		fmt.Fprintf(streams.Stdout(ctx), "Wrote %s\n", c.templatePath)
		return nil
	default:
		var err error
		if p, err = compdbgen.LoadParams(c.configPath); err != nil {
			return err
		}
	}

	res, err := compdbgen.Run(ctx, p)
	if err != nil {
		return err
	}
	if res.Output == "" {
		fmt.Fprintf(streams.Stdout(ctx), "No compiler commands found in %s\n", p.Input)
		return nil
	}
	fmt.Fprintln(streams.Stdout(ctx), "Done")
	return nil
}
