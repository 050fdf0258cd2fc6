// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package flagmisc provides flag.Value implementations shared by the
// command-line tools.
package flagmisc

import "strings"

// StringsValue is a flag.Value that collects every occurrence of a
// repeatable string flag, in order.
type StringsValue []string

// String returns the collected values joined by commas.
func (s *StringsValue) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ", ")
}

// Set appends val.
func (s *StringsValue) Set(val string) error {
	*s = append(*s, val)
	return nil
}
