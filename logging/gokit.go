// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type goKitEmitter struct {
	l log.Logger
}

func newGoKit(cfg Config) *goKitEmitter {
	w := log.NewSyncWriter(cfg.Output)
	var l log.Logger
	if cfg.Format == Text {
		l = log.NewLogfmtLogger(w)
	} else {
		l = log.NewJSONLogger(w)
	}
	return &goKitEmitter{l: log.With(l, "ts", log.DefaultTimestampUTC)}
}

func (g *goKitEmitter) emit(e *entry) {
	kvs := make([]any, 0, len(e.kvs)+8)
	kvs = append(kvs, "msg", e.msg)
	if e.name != "" {
		kvs = append(kvs, "logger", e.name)
	}
	kvs = append(kvs, "v", e.level)
	if e.err != nil {
		kvs = append(kvs, "error", e.err)
	}
	kvs = append(kvs, e.kvs...)

	var l log.Logger
	switch {
	case e.isErr:
		l = level.Error(g.l)
	case e.level > 0:
		l = level.Debug(g.l)
	default:
		l = level.Info(g.l)
	}
	l.Log(kvs...)
}
