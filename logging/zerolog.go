// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"github.com/rs/zerolog"
)

type zerologEmitter struct {
	l zerolog.Logger
}

func newZerolog(cfg Config) *zerologEmitter {
	w := cfg.Output
	if cfg.Format == Text {
		w = zerolog.ConsoleWriter{Out: cfg.Output, NoColor: true}
	}
	return &zerologEmitter{l: zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()}
}

func (z *zerologEmitter) emit(e *entry) {
	var ev *zerolog.Event
	switch {
	case e.isErr:
		ev = z.l.Error().Err(e.err)
	case e.level > 0:
		ev = z.l.Debug()
	default:
		ev = z.l.Info()
	}
	if e.name != "" {
		ev = ev.Str("logger", e.name)
	}
	ev.Int("v", e.level).Fields(e.kvs).Msg(e.msg)
}
