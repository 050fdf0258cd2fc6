// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package compdb contains types and functions for working with JSON
// compilation databases.
//
// https://clang.llvm.org/docs/JSONCompilationDatabase.html
package compdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyArguments is returned by NewEntry when there is no argument to use
// as the entry's source file.
var ErrEmptyArguments = errors.New("empty argument list has no source file")

// Entry is one object of a compilation database.
type Entry struct {
	// Directory is the working directory Arguments are interpreted in.
	Directory string `json:"directory"`
	// Arguments is the compiler argv, not shell-escaped.
	Arguments []string `json:"arguments"`
	// File is the source file compiled by this entry.
	File string `json:"file"`
}

// Database is an ordered list of entries. Duplicates are allowed.
type Database []Entry

// NewEntry builds an entry that runs args in dir. The last argument is taken
// as the source file.
func NewEntry(dir string, args []string) (Entry, error) {
	if len(args) == 0 {
		return Entry{}, ErrEmptyArguments
	}
	return Entry{
		Directory: dir,
		Arguments: append([]string(nil), args...),
		File:      args[len(args)-1],
	}, nil
}

// Filter returns the entries whose File contains at least one of patterns,
// in their original order. An empty pattern list matches nothing.
func Filter(db Database, patterns []string) Database {
	matched := Database{}
	for _, e := range db {
		for _, p := range patterns {
			if strings.Contains(e.File, p) {
				matched = append(matched, e)
				break
			}
		}
	}
	return matched
}

// UnmarshalJSON decodes an entry, requiring every field to be present.
// Entries in the "command" string form are rejected.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Directory *string  `json:"directory"`
		Arguments []string `json:"arguments"`
		File      *string  `json:"file"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Directory == nil:
		return errors.New(`missing field "directory"`)
	case raw.Arguments == nil:
		return errors.New(`missing field "arguments"`)
	case len(raw.Arguments) == 0:
		return ErrEmptyArguments
	case raw.File == nil:
		return errors.New(`missing field "file"`)
	}
	*e = Entry{Directory: *raw.Directory, Arguments: raw.Arguments, File: *raw.File}
	return nil
}

// Parse reads a compilation database. r must hold exactly one JSON array of
// complete entries. Entries are otherwise returned as found; File is not
// checked against Arguments.
func Parse(r io.Reader) (Database, error) {
	dec := json.NewDecoder(r)
	var db Database
	if err := dec.Decode(&db); err != nil {
		return nil, err
	}
	if db == nil {
		return nil, errors.New("compilation database is not an array")
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("after compilation database: %w", err)
		}
		return nil, fmt.Errorf("unexpected %v after compilation database", tok)
	}
	return db, nil
}

// Write encodes db to w, indented by two spaces if pretty is set.
func Write(w io.Writer, db Database, pretty bool) error {
	if db == nil {
		db = Database{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(db)
}
