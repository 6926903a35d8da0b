// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glfwdriver provides a native connection backed by GLFW, for GL and
// WebGPU surfaces on every platform GLFW supports.
//
// GLFW requires cgo and must run on the main OS thread, so the package is
// only built with the glfw build tag, and Open must be called from the main
// goroutine before any other goroutine locks it.
//
// GLFW has no software surface: windows support SurfaceGL, whose handle is
// the *glfw.Window to make current, and SurfaceGPU, whose handle is the
// *wgpu.SurfaceDescriptor to create a surface from.
package glfwdriver
