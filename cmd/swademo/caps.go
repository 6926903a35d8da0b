// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swa-go/swa/driver"
	"github.com/swa-go/swa/screen"
)

func (a *app) newCapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "caps",
		Short: "Print the capabilities of the display and of a sample window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.config()
			if err != nil {
				return err
			}
			log, err := newLogger(&c, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			dc := c.Driver()
			dc.Logger = log
			backend, err := driver.Resolve(dc)
			if err != nil {
				return err
			}
			d, err := driver.Open(dc)
			if err != nil {
				return err
			}
			defer d.Destroy()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend: %s\n", backend)
			fmt.Fprintf(out, "display: %s\n", capsLine(d.Capabilities()))
			s := c.WindowSettings(nil)
			s.Title = "swademo sample"
			w, err := d.CreateWindow(s)
			if err != nil {
				return fmt.Errorf("creating sample window: %w", err)
			}
			fmt.Fprintf(out, "window (%s): %s\n", w.Surface(), capsLine(w.Capabilities()))
			return w.Destroy()
		},
	}
}

func capsLine(c screen.Caps) string { return strings.Join(c.Names(), " ") }
