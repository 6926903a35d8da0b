// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapEmitter struct {
	l *zap.Logger
}

func newZap(cfg Config) *zapEmitter {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == Text {
		enc = zapcore.NewConsoleEncoder(ec)
	} else {
		enc = zapcore.NewJSONEncoder(ec)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(cfg.Output), zapcore.DebugLevel)
	return &zapEmitter{l: zap.New(core)}
}

func (z *zapEmitter) emit(e *entry) {
	fields := make([]zap.Field, 0, len(e.kvs)/2+3)
	if e.name != "" {
		fields = append(fields, zap.String("logger", e.name))
	}
	fields = append(fields, zap.Int("v", e.level))
	for i := 0; i < len(e.kvs); i += 2 {
		fields = append(fields, zap.Any(e.kvs[i].(string), e.kvs[i+1]))
	}
	switch {
	case e.isErr:
		if e.err != nil {
			fields = append(fields, zap.Error(e.err))
		}
		z.l.Error(e.msg, fields...)
	case e.level > 0:
		z.l.Debug(e.msg, fields...)
	default:
		z.l.Info(e.msg, fields...)
	}
}
