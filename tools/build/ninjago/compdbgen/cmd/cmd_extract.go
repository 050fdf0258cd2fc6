// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/multierr"

	"go.compdbgen.dev/compdbgen/tools/build/ninjago/ninjacmd"
	"go.compdbgen.dev/compdbgen/tools/lib/logger"
	"go.compdbgen.dev/compdbgen/tools/lib/streams"
)

type extractCmd struct {
	split bool
}

func (*extractCmd) Name() string { return "extract" }

func (*extractCmd) Synopsis() string { return "prints the clang commands found in a .ninja file" }

func (*extractCmd) Usage() string {
	return `compdbgen extract [-split] <build.ninja>

Prints one recognized command per line, in file order. With -split, prints
each command's arguments one per line instead, followed by a blank line.

flags:
`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.split, "split", false, "print the tokenized arguments of each command")
}

func (c *extractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		logger.Errorf(ctx, "expected exactly one .ninja file, got %d arguments", f.NArg())
		return subcommands.ExitUsageError
	}
	if err := c.run(ctx, f.Arg(0)); err != nil {
		logger.Errorf(ctx, "%s", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *extractCmd) run(ctx context.Context, path string) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	// Commands found before a failure are still printed.
	out := bufio.NewWriter(streams.Stdout(ctx))
	defer func() {
		err = multierr.Append(err, out.Flush())
	}()
	e := ninjacmd.NewExtractor(in)
	for e.Scan() {
		if !c.split {
			fmt.Fprintln(out, e.Command())
			continue
		}
		args, err := ninjacmd.Split(e.Command())
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, e.Line(), err)
		}
		for _, arg := range args {
			fmt.Fprintln(out, arg)
		}
		fmt.Fprintln(out)
	}
	if err := e.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
