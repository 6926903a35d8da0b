// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build glfw

package driver

import (
	"github.com/swa-go/swa/driver/glfwdriver"
	"github.com/swa-go/swa/native"
)

func addGLFW(m map[string]opener) {
	m[GLFW] = func(cfg *Config) (native.Conn, error) {
		return glfwdriver.Open(glfwdriver.Options{Logger: cfg.Logger.WithName("glfw")})
	}
}
