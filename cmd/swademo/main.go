// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Swademo opens a window on the configured backend and animates a pattern
// in its buffer surface.
//
// Usage:
//
//	swademo run [--inspect addr] [--frames n]
//	swademo caps
//	swademo config show
//
// Settings come from the YAML file named by --config, overridden by flags
// and by SWA_* environment variables such as SWA_BACKEND or SWA_LOG_LEVEL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "swademo: %v\n", err)
		os.Exit(1)
	}
}
