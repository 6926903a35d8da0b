// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"github.com/sirupsen/logrus"
)

type logrusEmitter struct {
	l *logrus.Logger
}

func newLogrus(cfg Config) *logrusEmitter {
	l := logrus.New()
	l.SetOutput(cfg.Output)
	l.SetLevel(logrus.DebugLevel)
	if cfg.Format == Text {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return &logrusEmitter{l: l}
}

func (lr *logrusEmitter) emit(e *entry) {
	fields := make(logrus.Fields, len(e.kvs)/2+2)
	for i := 0; i < len(e.kvs); i += 2 {
		fields[e.kvs[i].(string)] = e.kvs[i+1]
	}
	if e.name != "" {
		fields["logger"] = e.name
	}
	fields["v"] = e.level
	le := lr.l.WithFields(fields)
	switch {
	case e.isErr:
		if e.err != nil {
			le = le.WithError(e.err)
		}
		le.Error(e.msg)
	case e.level > 0:
		le.Debug(e.msg)
	default:
		le.Info(e.msg)
	}
}
