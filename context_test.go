// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenRootAllocatesFreshIDs(t *testing.T) {
	ctx, f := OpenRoot(context.Background(), nil)
	assert.False(t, f.TraceID().IsAbsent())
	assert.False(t, f.SpanID().IsAbsent())
	assert.True(t, f.ParentSpanID().IsAbsent())
	assert.Same(t, f, CurrentFrame(ctx))
}

func TestOpenPushWithNoCurrentFrameActsLikeRoot(t *testing.T) {
	ctx, f := OpenPush(context.Background(), nil)
	assert.False(t, f.TraceID().IsAbsent())
	assert.True(t, f.ParentSpanID().IsAbsent())
	assert.Same(t, f, CurrentFrame(ctx))
}

func TestOpenPushInheritsTraceAndChainsSpan(t *testing.T) {
	root, rf := OpenRoot(context.Background(), nil)
	child, cf := OpenPush(root, nil)

	assert.Equal(t, rf.TraceID(), cf.TraceID())
	assert.Equal(t, rf.SpanID(), cf.ParentSpanID())
	assert.NotEqual(t, rf.SpanID(), cf.SpanID())
	assert.Same(t, cf, CurrentFrame(child))
}

func TestOpenPushMergesProps(t *testing.T) {
	root, _ := OpenRoot(context.Background(), SliceProps{{Key: "a", Value: Capture(1)}})
	child, cf := OpenPush(root, SliceProps{{Key: "b", Value: Capture(2)}})
	_ = child

	a, ok := Get(Props(cf), "a")
	assert.True(t, ok)
	ai, _ := a.ToInt64()
	assert.Equal(t, int64(1), ai)

	b, ok := Get(Props(cf), "b")
	assert.True(t, ok)
	bi, _ := b.ToInt64()
	assert.Equal(t, int64(2), bi)
}

func TestOpenPushOverlayWinsOnConflict(t *testing.T) {
	root, _ := OpenRoot(context.Background(), SliceProps{{Key: "k", Value: Capture("base")}})
	_, cf := OpenPush(root, SliceProps{{Key: "k", Value: Capture("overlay")}})

	v, ok := Get(Props(cf), "k")
	assert.True(t, ok)
	s, _ := v.ToString()
	assert.Equal(t, "overlay", s)
}

func TestFrameEnterExitRestoresContext(t *testing.T) {
	base := context.Background()
	f := &Frame{}
	ctx := base

	assert.Equal(t, FrameCreated, f.State())

	g := f.Enter(&ctx)
	assert.Same(t, f, CurrentFrame(ctx))
	assert.Equal(t, FrameEntered, f.State())

	g.Exit()
	assert.Nil(t, CurrentFrame(ctx))
	assert.Equal(t, FrameExited, f.State())
}

func TestGuardExitIsIdempotent(t *testing.T) {
	base := context.Background()
	f := &Frame{}
	ctx := base
	g := f.Enter(&ctx)

	g.Exit()
	afterFirst := ctx
	g.Exit()
	assert.Equal(t, afterFirst, ctx)
}

func TestFrameCallEntersAndClosesAroundScope(t *testing.T) {
	f := &Frame{}
	var observed *Frame
	f.Call(context.Background(), func(ctx context.Context) {
		observed = CurrentFrame(ctx)
	})

	assert.Same(t, f, observed)
	assert.Equal(t, FrameClosed, f.State())
}

func TestFrameForEachContributesWellKnownKeys(t *testing.T) {
	root, rf := OpenRoot(context.Background(), nil)
	_, cf := OpenPush(root, nil)

	traceVal, ok := Get(Props(cf), KeyTraceID)
	assert.True(t, ok)
	s, _ := traceVal.ToString()
	assert.Equal(t, rf.TraceID().String(), s)

	_, ok = Get(Props(cf), KeySpanParent)
	assert.True(t, ok)
}

func TestCurrentFrameNilWhenAbsent(t *testing.T) {
	assert.Nil(t, CurrentFrame(context.Background()))
}
