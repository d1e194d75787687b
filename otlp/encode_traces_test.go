// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emit-go/emit"
)

func TestEncodeSpanUsesSpanNameOverModule(t *testing.T) {
	start := time.Now()
	end := start.Add(time.Second)
	evt := emit.NewEvent("pkg.module", emit.IntervalExtent(start, end), emit.Parse("x"),
		emit.SliceProps{{Key: emit.KeySpanName, Value: emit.Capture("checkout")}})

	span := EncodeSpan(evt)
	assert.Equal(t, "checkout", span.Name)
	assert.Equal(t, uint64(start.UnixNano()), span.StartTimeUnixNano)
	assert.Equal(t, uint64(end.UnixNano()), span.EndTimeUnixNano)
}

func TestEncodeSpanFallsBackToModuleName(t *testing.T) {
	start := time.Now()
	evt := emit.NewEvent("pkg.module", emit.IntervalExtent(start, start.Add(time.Millisecond)), emit.Parse("x"), nil)
	span := EncodeSpan(evt)
	assert.Equal(t, "pkg.module", span.Name)
}

func TestEncodeSpanIncludesParentSpanID(t *testing.T) {
	start := time.Now()
	parent := emit.GenerateSpanID()
	evt := emit.NewEvent("pkg", emit.IntervalExtent(start, start.Add(time.Millisecond)), emit.Parse("x"),
		emit.SliceProps{{Key: emit.KeySpanParent, Value: parent.ToValue()}})

	span := EncodeSpan(evt)
	assert.Equal(t, parent[:], span.ParentSpanId)
}

func TestEncodeResourceSpansGroupsByModule(t *testing.T) {
	start := time.Now()
	end := start.Add(time.Millisecond)
	events := []emit.Event{
		emit.NewEvent("a", emit.IntervalExtent(start, end), emit.Parse("x"), nil),
		emit.NewEvent("b", emit.IntervalExtent(start, end), emit.Parse("y"), nil),
	}
	out := EncodeResourceSpans(Resource{}, events)
	assert.Len(t, out.ScopeSpans, 2)
}
