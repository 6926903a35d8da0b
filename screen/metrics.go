// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/swa-go/swa/screen"

type metrics struct {
	events        metric.Int64Counter
	frameRequests metric.Int64Counter
	frames        metric.Int64Counter
	presents      metric.Int64Counter
	reallocs      metric.Int64Counter
	windows       metric.Int64UpDownCounter

	// kinds caches one attribute option per event kind so that dispatch does
	// not allocate per event.
	kinds map[string]metric.AddOption
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	m := mp.Meter(instrumentationName)
	var (
		ms  = &metrics{kinds: map[string]metric.AddOption{}}
		err error
	)
	if ms.events, err = m.Int64Counter("swa.dispatch.events",
		metric.WithDescription("Native events routed by Dispatch."),
		metric.WithUnit("{event}")); err != nil {
		return nil, err
	}
	if ms.frameRequests, err = m.Int64Counter("swa.frame.requests",
		metric.WithDescription("Vsync notifications requested from the native system."),
		metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	if ms.frames, err = m.Int64Counter("swa.frame.notifications",
		metric.WithDescription("Vsync notifications delivered to windows."),
		metric.WithUnit("{notification}")); err != nil {
		return nil, err
	}
	if ms.presents, err = m.Int64Counter("swa.buffer.presents",
		metric.WithDescription("Buffer surfaces applied to windows."),
		metric.WithUnit("{frame}")); err != nil {
		return nil, err
	}
	if ms.reallocs, err = m.Int64Counter("swa.buffer.reallocations",
		metric.WithDescription("Buffer surface backing memory allocations."),
		metric.WithUnit("{allocation}")); err != nil {
		return nil, err
	}
	if ms.windows, err = m.Int64UpDownCounter("swa.windows",
		metric.WithDescription("Live windows."),
		metric.WithUnit("{window}")); err != nil {
		return nil, err
	}
	return ms, nil
}

func (m *metrics) event(ctx context.Context, kind string) {
	opt, ok := m.kinds[kind]
	if !ok {
		opt = metric.WithAttributeSet(attribute.NewSet(attribute.String("kind", kind)))
		m.kinds[kind] = opt
	}
	m.events.Add(ctx, 1, opt)
}
