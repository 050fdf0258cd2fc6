// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package compdbgen produces compile_commands.json files, either from the
// clang rules of a ninja build file or by filtering an existing database.
package compdbgen

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
	"go.uber.org/multierr"

	"go.compdbgen.dev/compdbgen/tools/build/ninjago/compdb"
	"go.compdbgen.dev/compdbgen/tools/build/ninjago/ninjacmd"
	"go.compdbgen.dev/compdbgen/tools/lib/logger"
	"go.compdbgen.dev/compdbgen/tools/lib/osmisc"
)

var (
	// ErrConfiguration means a parameter required by the input kind is
	// missing, or the parameter file could not be used.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrInputFormat means the input is of an unsupported kind or is not a
	// valid compilation database.
	ErrInputFormat = errors.New("invalid input")
	// ErrIO means a file could not be opened, read, created or written.
	ErrIO = errors.New("i/o failure")
)

// Mode is the kind of input being processed.
type Mode int

const (
	// NinjaMode builds a database from a ninja build file.
	NinjaMode Mode = iota + 1
	// DatabaseMode filters an existing database.
	DatabaseMode
)

func (m Mode) String() string {
	switch m {
	case NinjaMode:
		return "ninja"
	case DatabaseMode:
		return "database"
	}
	return "unknown"
}

// InputMode infers the mode from the extension of path.
func InputMode(path string) (Mode, error) {
	switch ext := filepath.Ext(path); ext {
	case ".ninja":
		return NinjaMode, nil
	case ".json":
		return DatabaseMode, nil
	default:
		return 0, fmt.Errorf("%w: unsupported file type %q for %s", ErrInputFormat, ext, path)
	}
}

// Result describes a completed Run.
type Result struct {
	Mode Mode
	// Ingested is the number of entries read or built from the input.
	Ingested int
	// Written is the number of entries in the output.
	Written int
	// Output is the path of the written database, empty if nothing was
	// written.
	Output string
	// Size is the size of the output in bytes.
	Size int64
}

// Run ingests p.Input, applies p.Patterns if any, and writes the resulting
// database. If the input yields no entries at all, nothing is written and
// the returned Result has an empty Output.
func Run(ctx context.Context, p Params) (Result, error) {
	logger.Debugf(ctx, "parameters: %# v", pretty.Formatter(p))

	if p.Input == "" {
		return Result{}, fmt.Errorf("%w: an input file is required", ErrConfiguration)
	}
	mode, err := InputMode(p.Input)
	if err != nil {
		return Result{}, err
	}
	res := Result{Mode: mode}

	var db compdb.Database
	switch mode {
	case NinjaMode:
		if p.Root == "" {
			return res, fmt.Errorf("%w: a root directory is required for %s", ErrConfiguration, p.Input)
		}
		db, err = ingestNinja(ctx, p.Input, p.Root)
	case DatabaseMode:
		if len(p.Patterns) == 0 {
			return res, fmt.Errorf("%w: at least one pattern is required to filter %s", ErrConfiguration, p.Input)
		}
		db, err = loadDatabase(p.Input)
	}
	if err != nil {
		return res, err
	}
	res.Ingested = len(db)
	logger.Debugf(ctx, "ingested %s entries from %s", humanize.Comma(int64(len(db))), p.Input)
	if len(db) == 0 {
		logger.Infof(ctx, "no compiler commands found in %s", p.Input)
		return res, nil
	}

	// compdb.Filter matches nothing without patterns, so only call it when
	// there are some.
	if len(p.Patterns) > 0 {
		db = compdb.Filter(db, p.Patterns)
		logger.Debugf(ctx, "%s of %s entries match %q", humanize.Comma(int64(len(db))), humanize.Comma(int64(res.Ingested)), p.Patterns)
	}

	out := filepath.Join(p.OutputDir, p.Filename)
	size, err := writeDatabase(out, db, p.Pretty)
	if err != nil {
		return res, err
	}
	res.Written = len(db)
	res.Output = out
	res.Size = size
	logger.Infof(ctx, "wrote %s entries (%s) to %s", humanize.Comma(int64(res.Written)), humanize.Bytes(uint64(size)), out)
	return res, nil
}

func ingestNinja(ctx context.Context, path, root string) (compdb.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	var db compdb.Database
	e := ninjacmd.NewExtractor(f)
	for e.Scan() {
		args, err := ninjacmd.Split(e.Command())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, e.Line(), err)
		}
		entry, err := compdb.NewEntry(root, args)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, e.Line(), err)
		}
		logger.Tracef(ctx, "%s:%d: %s", path, e.Line(), entry.File)
		db = append(db, entry)
	}
	if err := e.Err(); err != nil {
		if errors.Is(err, ninjacmd.ErrDecode) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	return db, nil
}

func loadDatabase(path string) (compdb.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	db, err := compdb.Parse(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing compilation database %s: %v", ErrInputFormat, path, err)
	}
	return db, nil
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func writeDatabase(path string, db compdb.Database, indent bool) (size int64, err error) {
	dir := filepath.Dir(path)
	if ok, err := osmisc.IsDir(dir); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	} else if !ok {
		return 0, fmt.Errorf("%w: output directory %s does not exist", ErrIO, dir)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: closing %s: %w", ErrIO, path, cerr))
		}
	}()

	bw := bufio.NewWriter(f)
	cw := &countingWriter{w: bw}
	if err := compdb.Write(cw, db, indent); err != nil {
		return 0, fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	return cw.n, nil
}
