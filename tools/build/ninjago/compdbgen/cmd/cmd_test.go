// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"

	"go.compdbgen.dev/compdbgen/tools/build/ninjago/compdb"
	"go.compdbgen.dev/compdbgen/tools/build/ninjago/compdbgen"
	"go.compdbgen.dev/compdbgen/tools/lib/color"
	"go.compdbgen.dev/compdbgen/tools/lib/logger"
	"go.compdbgen.dev/compdbgen/tools/lib/streams"
)

const buildNinja = `rule cc
  command = /bin/bash -c "PWD=/proc/self/cwd prebuilts/clang/bin/clang -c frameworks/av/a.c"
  command = /bin/bash -c "PWD=/proc/self/cwd prebuilts/clang/bin/clang++ -c system/media/b.cc"
`

// execute parses args into cmd's flags and runs it, returning its exit
// status and what it printed to stdout.
func execute(t *testing.T, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	l := logger.NewLogger(logger.ErrorLevel, color.NewColor(color.ColorNever), io.Discard, io.Discard, "")
	ctx := logger.WithLogger(context.Background(), l)
	ctx = streams.ContextWithStdout(ctx, &stdout)
	return cmd.Execute(ctx, fs), stdout.String()
}

func writeFile(t *testing.T, path, contents string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readDatabase(t *testing.T, path string) compdb.Database {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	db, err := compdb.Parse(f)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "build.ninja"), buildNinja)

	status, stdout := execute(t, &generateCmd{}, "-i", in, "-r", "/android", "-o", dir, "-P", "frameworks/")
	if status != subcommands.ExitSuccess {
		t.Fatalf("generate exited with %v", status)
	}
	if stdout != "Done\n" {
		t.Errorf("Unexpected stdout: %q", stdout)
	}
	want := compdb.Database{{
		Directory: "/android",
		Arguments: []string{"prebuilts/clang/bin/clang", "-c", "frameworks/av/a.c"},
		File:      "frameworks/av/a.c",
	}}
	if diff := cmp.Diff(want, readDatabase(t, filepath.Join(dir, compdbgen.DefaultFilename))); diff != "" {
		t.Errorf("Unexpected database (-want +got):\n%s", diff)
	}
}

func TestGeneratePretty(t *testing.T) {
	const (
		compact = `[{"directory":"/android","arguments":["prebuilts/clang/bin/clang","-c","frameworks/av/a.c"],"file":"frameworks/av/a.c"}]` + "\n"
		pretty  = `[
  {
    "directory": "/android",
    "arguments": [
      "prebuilts/clang/bin/clang",
      "-c",
      "frameworks/av/a.c"
    ],
    "file": "frameworks/av/a.c"
  }
]
`
	)
	for _, tc := range []struct {
		name  string
		flags []string
		want  string
	}{
		{name: "default", want: pretty},
		{name: "pretty disabled", flags: []string{"-pretty=false"}, want: compact},
		{name: "shorthand disabled", flags: []string{"-p=false"}, want: compact},
		{name: "shorthand enabled", flags: []string{"-p"}, want: pretty},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeFile(t, filepath.Join(dir, "build.ninja"), buildNinja)
			args := append([]string{"-i", in, "-r", "/android", "-o", dir, "-P", "frameworks/"}, tc.flags...)
			if status, _ := execute(t, &generateCmd{}, args...); status != subcommands.ExitSuccess {
				t.Fatalf("generate exited with %v", status)
			}
			got, err := os.ReadFile(filepath.Join(dir, compdbgen.DefaultFilename))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, string(got)); diff != "" {
				t.Errorf("Unexpected output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateNothingFound(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "build.ninja"), "rule stamp\n  command = touch $out\n")

	status, stdout := execute(t, &generateCmd{}, "-input", in, "-root", "/android", "-output", dir)
	if status != subcommands.ExitSuccess {
		t.Fatalf("generate exited with %v", status)
	}
	if stdout != "No compiler commands found in "+in+"\n" {
		t.Errorf("Unexpected stdout: %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, compdbgen.DefaultFilename)); !os.IsNotExist(err) {
		t.Errorf("No output should be written, stat returned %v", err)
	}
}

func TestGenerateFailures(t *testing.T) {
	dir := t.TempDir()
	ninja := writeFile(t, filepath.Join(dir, "build.ninja"), buildNinja)

	for _, tc := range []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{name: "missing root", args: []string{"-input", ninja}, want: subcommands.ExitUsageError},
		{name: "database without patterns", args: []string{"-input", filepath.Join(dir, "db.json")}, want: subcommands.ExitUsageError},
		{name: "unsupported input", args: []string{"-input", filepath.Join(dir, "build.txt")}, want: subcommands.ExitFailure},
		{name: "missing input", args: []string{"-input", filepath.Join(dir, "other.ninja"), "-root", "/"}, want: subcommands.ExitFailure},
		{name: "bad parameter file", args: []string{"-config", filepath.Join(dir, "missing.yaml")}, want: subcommands.ExitUsageError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := execute(t, &generateCmd{}, append(tc.args, "-output", t.TempDir())...)
			if status != tc.want {
				t.Errorf("generate exited with %v, want %v", status, tc.want)
			}
		})
	}
}

func TestGenerateTemplate(t *testing.T) {
	dir := t.TempDir()
	cmd := &generateCmd{}
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	cmd.templatePath = filepath.Join(dir, compdbgen.TemplateFilename)
	if err := fs.Parse([]string{"-input", "missing.ninja", "-root", "/android", "-pretty=false", "-pattern", "a/", "-config", "-"}); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	ctx := streams.ContextWithStdout(context.Background(), &stdout)
	if status := cmd.Execute(ctx, fs); status != subcommands.ExitSuccess {
		t.Fatalf("generate exited with %v", status)
	}
	if stdout.String() != "Wrote "+cmd.templatePath+"\n" {
		t.Errorf("Unexpected stdout: %q", stdout.String())
	}

	got, err := compdbgen.LoadParams(cmd.templatePath)
	if err != nil {
		t.Fatal(err)
	}
	want := compdbgen.Params{
		Input:     "missing.ninja",
		Root:      "/android",
		OutputDir: compdbgen.DefaultOutputDir,
		Filename:  compdbgen.DefaultFilename,
		Pretty:    false,
		Patterns:  []string{"a/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unexpected template (-want +got):\n%s", diff)
	}
}

func TestGenerateFromParameterFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "build.ninja"), buildNinja)
	config := writeFile(t, filepath.Join(dir, "params.yaml"),
		"input: "+in+"\nroot: /src\noutput: "+dir+"\nfilename: out.json\npatterns: [system/]\n")

	// Flags other than -config are replaced by the file.
	status, stdout := execute(t, &generateCmd{}, "-config", config, "-root", "/ignored")
	if status != subcommands.ExitSuccess {
		t.Fatalf("generate exited with %v", status)
	}
	if stdout != "Done\n" {
		t.Errorf("Unexpected stdout: %q", stdout)
	}
	want := compdb.Database{{
		Directory: "/src",
		Arguments: []string{"prebuilts/clang/bin/clang++", "-c", "system/media/b.cc"},
		File:      "system/media/b.cc",
	}}
	if diff := cmp.Diff(want, readDatabase(t, filepath.Join(dir, "out.json"))); diff != "" {
		t.Errorf("Unexpected database (-want +got):\n%s", diff)
	}
}

func TestExtract(t *testing.T) {
	in := writeFile(t, filepath.Join(t.TempDir(), "build.ninja"), buildNinja)

	status, stdout := execute(t, &extractCmd{}, in)
	if status != subcommands.ExitSuccess {
		t.Fatalf("extract exited with %v", status)
	}
	want := "prebuilts/clang/bin/clang -c frameworks/av/a.c\n" +
		"prebuilts/clang/bin/clang++ -c system/media/b.cc\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("Unexpected output (-want +got):\n%s", diff)
	}

	status, stdout = execute(t, &extractCmd{}, "-split", in)
	if status != subcommands.ExitSuccess {
		t.Fatalf("extract -split exited with %v", status)
	}
	want = "prebuilts/clang/bin/clang\n-c\nframeworks/av/a.c\n\n" +
		"prebuilts/clang/bin/clang++\n-c\nsystem/media/b.cc\n\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("Unexpected split output (-want +got):\n%s", diff)
	}

	if status, _ := execute(t, &extractCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("extract without arguments exited with %v", status)
	}
}

func TestExtractFailures(t *testing.T) {
	dir := t.TempDir()
	first := `  command = /bin/bash -c "PWD=/proc/self/cwd clang -c a.c"` + "\n"
	quote := writeFile(t, filepath.Join(dir, "quote.ninja"),
		first+`  command = /bin/bash -c "PWD=/proc/self/cwd clang '-DX=b.c"`+"\n")
	binary := writeFile(t, filepath.Join(dir, "binary.ninja"), first+"\xff\n")

	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unterminated quote",
			args: []string{"-split", quote},
			want: "clang\n-c\na.c\n\n",
		},
		{
			name: "undecodable line",
			args: []string{binary},
			want: "clang -c a.c\n",
		},
		{
			name: "undecodable line with split",
			args: []string{"-split", binary},
			want: "clang\n-c\na.c\n\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			status, stdout := execute(t, &extractCmd{}, tc.args...)
			if status != subcommands.ExitFailure {
				t.Errorf("extract exited with %v, want %v", status, subcommands.ExitFailure)
			}
			if diff := cmp.Diff(tc.want, stdout); diff != "" {
				t.Errorf("Commands before the failure were not printed (-want +got):\n%s", diff)
			}
		})
	}
}
