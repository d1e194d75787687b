// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateRenderLiteral(t *testing.T) {
	tpl := Parse("hello world")
	s, ok := tpl.AsLiteral()
	assert.True(t, ok)
	assert.Equal(t, "hello world", s)
	assert.Equal(t, "hello world", tpl.Render(EmptyProps))
}

func TestTemplateRenderHole(t *testing.T) {
	tpl := Parse("hello {name}")
	props := SliceProps{{Key: "name", Value: Capture("world")}}
	assert.Equal(t, "hello world", tpl.Render(props))
}

func TestTemplateRenderMultipleHoles(t *testing.T) {
	tpl := Parse("{greeting}, {name}!")
	props := SliceProps{
		{Key: "greeting", Value: Capture("hi")},
		{Key: "name", Value: Capture("bob")},
	}
	assert.Equal(t, "hi, bob!", tpl.Render(props))
}

func TestTemplateRenderMissingHoleUsesBacktickName(t *testing.T) {
	tpl := Parse("value is {missing}")
	assert.Equal(t, "value is `missing`", tpl.Render(EmptyProps))
}

func TestTemplateRenderIsDeterministic(t *testing.T) {
	tpl := Parse("{a}-{b}-{a}")
	props := SliceProps{
		{Key: "a", Value: Capture(1)},
		{Key: "b", Value: Capture(2)},
	}
	first := tpl.Render(props)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, tpl.Render(props))
	}
	assert.Equal(t, "1-2-1", first)
}

func TestTemplateUnterminatedHoleIsLiteral(t *testing.T) {
	tpl := Parse("broken {hole")
	s, ok := tpl.AsLiteral()
	assert.True(t, ok)
	assert.Equal(t, "broken {hole", s)
}

func TestTemplateHoleWithFlags(t *testing.T) {
	tpl := Parse("pi is {v:.2}")
	props := SliceProps{{Key: "v", Value: Capture(3.14159)}}
	assert.Equal(t, "pi is 3.14", tpl.Render(props))
}

func TestTemplateString(t *testing.T) {
	tpl := Parse("{a} and {b}")
	assert.Equal(t, "{a} and {b}", tpl.String())
}
