// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package compdbgen

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go.compdbgen.dev/compdbgen/tools/lib/jsonutil"
)

const (
	DefaultOutputDir = "."
	DefaultFilename  = "compile_commands.json"

	// TemplateFilename is where a parameter file template is written.
	TemplateFilename = "template.json"
)

// Params configures a single Run.
type Params struct {
	// Input is a .ninja build file or a .json compilation database.
	Input string
	// Root is the directory every generated entry runs in. Required for
	// .ninja input.
	Root string
	// OutputDir and Filename locate the database that is written.
	OutputDir string
	Filename  string
	// Pretty selects indented output.
	Pretty bool
	// Patterns restricts the output to entries whose file contains one of
	// them. Required for .json input.
	Patterns []string
}

// DefaultParams returns the parameters used when nothing is specified.
func DefaultParams() Params {
	return Params{
		OutputDir: DefaultOutputDir,
		Filename:  DefaultFilename,
		Pretty:    true,
	}
}

// paramsFile is the on-disk form of Params. It never records the path of a
// parameter file.
type paramsFile struct {
	Input    string   `json:"input" yaml:"input"`
	Root     string   `json:"root" yaml:"root"`
	Output   string   `json:"output" yaml:"output"`
	Filename string   `json:"filename" yaml:"filename"`
	Pretty   *bool    `json:"pretty" yaml:"pretty"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

func toParamsFile(p Params) paramsFile {
	pretty := p.Pretty
	return paramsFile{
		Input:    p.Input,
		Root:     p.Root,
		Output:   p.OutputDir,
		Filename: p.Filename,
		Pretty:   &pretty,
		Patterns: p.Patterns,
	}
}

func (pf paramsFile) params() Params {
	p := DefaultParams()
	p.Input = pf.Input
	p.Root = pf.Root
	if pf.Output != "" {
		p.OutputDir = pf.Output
	}
	if pf.Filename != "" {
		p.Filename = pf.Filename
	}
	if pf.Pretty != nil {
		p.Pretty = *pf.Pretty
	}
	p.Patterns = pf.Patterns
	return p
}

// LoadParams reads a parameter file. Files ending in .yaml or .yml are YAML,
// anything else is JSON. Fields missing from the file take their defaults.
func LoadParams(path string) (Params, error) {
	var pf paramsFile
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return Params{}, fmt.Errorf("%w: reading parameter file: %v", ErrConfiguration, err)
		}
		if err := yaml.Unmarshal(b, &pf); err != nil {
			return Params{}, fmt.Errorf("%w: parameter file %s is invalid: %v", ErrConfiguration, path, err)
		}
	default:
		if err := jsonutil.ReadFromFile(path, &pf); err != nil {
			return Params{}, fmt.Errorf("%w: parameter file %s is invalid: %v", ErrConfiguration, path, err)
		}
	}
	return pf.params(), nil
}

// WriteTemplate writes p to path in the JSON parameter file format.
func WriteTemplate(path string, p Params) error {
	if err := jsonutil.WriteToFile(path, toParamsFile(p)); err != nil {
		return fmt.Errorf("%w: writing template: %w", ErrIO, err)
	}
	return nil
}
