// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package flagmisc

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringsValue(t *testing.T) {
	var patterns StringsValue
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&patterns, "pattern", "")
	fs.Var(&patterns, "P", "")

	if err := fs.Parse([]string{"-pattern", "a.c", "-P", "b.c", "-pattern=c d.c"}); err != nil {
		t.Fatal(err)
	}
	want := StringsValue{"a.c", "b.c", "c d.c"}
	if diff := cmp.Diff(want, patterns); diff != "" {
		t.Errorf("Unexpected flag values (-want +got):\n%s", diff)
	}
	if got := patterns.String(); got != "a.c, b.c, c d.c" {
		t.Errorf("Unexpected String(): %q", got)
	}
}
