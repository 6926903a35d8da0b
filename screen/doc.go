// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package screen provides portable native windows with software and GPU
// surfaces, driven by a single-threaded event dispatch loop.
//
// A Display is created from a native connection, usually obtained from the
// driver package. Windows are created on the Display and receive their events
// through a Listener while the program calls Dispatch:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/swa-go/swa/driver"
//		"github.com/swa-go/swa/screen"
//	)
//
//	func main() {
//		d, err := driver.Open(driver.Config{})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer d.Destroy()
//
//		_, err = d.CreateWindow(screen.WindowSettings{
//			Width:   640,
//			Height:  480,
//			Surface: screen.SurfaceBuffer,
//			Listener: screen.ListenerFuncs{
//				OnDraw: func(w *screen.Window) {
//					img, err := w.Buffer()
//					if err != nil {
//						return
//					}
//					paint(img)
//					w.ApplyBuffer()
//				},
//				OnClose: func(w *screen.Window) { w.Destroy() },
//			},
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		for d.NumWindows() > 0 && d.Dispatch(true) {
//		}
//	}
//
// Features that are not available on every platform are described by Caps.
// Requests outside a window's capabilities are silently ignored.
package screen
