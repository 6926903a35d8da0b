// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds logr.Loggers that write through zap, zerolog,
// logrus or go-kit.
//
// Every backend writes one record per call with the message, a "level" of
// debug, info or error, a "v" holding the logr verbosity, the "logger" name
// and the key/value pairs. Verbosity filtering is done by the sink, so a
// record reaches the backend only if its V level is at most Config.Level.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
)

// Backend names.
const (
	Zap     = "zap"
	Zerolog = "zerolog"
	Logrus  = "logrus"
	GoKit   = "gokit"
	Discard = "discard"
)

// Formats.
const (
	JSON = "json"
	Text = "text"
)

// Config selects a backend. The zero value logs V(0) records as JSON
// through zap to standard error.
type Config struct {
	Backend string
	// Level is the highest V level written.
	Level int
	// Format is JSON or Text. Empty means JSON.
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a Logger for cfg.
func New(cfg Config) (logr.Logger, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	switch cfg.Format {
	case "":
		cfg.Format = JSON
	case JSON, Text:
	default:
		return logr.Logger{}, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	if cfg.Level < 0 {
		return logr.Logger{}, fmt.Errorf("logging: negative level %d", cfg.Level)
	}
	var out emitter
	switch cfg.Backend {
	case "", Zap:
		out = newZap(cfg)
	case Zerolog:
		out = newZerolog(cfg)
	case Logrus:
		out = newLogrus(cfg)
	case GoKit:
		out = newGoKit(cfg)
	case Discard:
		return logr.Discard(), nil
	default:
		return logr.Logger{}, fmt.Errorf("logging: unknown backend %q", cfg.Backend)
	}
	return logr.New(&sink{out: out, verbosity: cfg.Level}), nil
}

// entry is one log record handed to a backend.
type entry struct {
	level int
	// isErr marks records from Logger.Error, whose err may be nil.
	isErr bool
	err   error
	name  string
	msg   string
	kvs   []any
}

type emitter interface {
	emit(e *entry)
}

type sink struct {
	out       emitter
	name      string
	values    []any
	verbosity int
}

var _ logr.LogSink = (*sink)(nil)

func (*sink) Init(logr.RuntimeInfo) {}

func (s *sink) Enabled(level int) bool { return level <= s.verbosity }

func (s *sink) Info(level int, msg string, kvs ...any) {
	s.out.emit(&entry{level: level, name: s.name, msg: msg, kvs: s.pairs(kvs)})
}

func (s *sink) Error(err error, msg string, kvs ...any) {
	s.out.emit(&entry{isErr: true, err: err, name: s.name, msg: msg, kvs: s.pairs(kvs)})
}

func (s *sink) WithName(name string) logr.LogSink {
	s2 := *s
	if s.name == "" {
		s2.name = name
	} else {
		s2.name = s.name + "." + name
	}
	return &s2
}

func (s *sink) WithValues(kvs ...any) logr.LogSink {
	s2 := *s
	s2.values = s.pairs(kvs)
	return &s2
}

// pairs returns the sink's values followed by kvs, with string keys and an
// even length.
func (s *sink) pairs(kvs []any) []any {
	out := make([]any, 0, len(s.values)+len(kvs)+1)
	out = append(out, s.values...)
	for i := 0; i < len(kvs); i += 2 {
		out = append(out, keyString(kvs[i]))
		if i+1 < len(kvs) {
			out = append(out, kvs[i+1])
		} else {
			out = append(out, "<missing>")
		}
	}
	return out
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
