// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	"testing"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emit-go/emit"
)

func TestResourceEncodeAttributes(t *testing.T) {
	r := Resource{Attributes: map[string]string{"service.name": "checkout"}}
	encoded := r.Encode()
	require.Len(t, encoded.Attributes, 1)
	assert.Equal(t, "service.name", encoded.Attributes[0].Key)
	assert.Equal(t, "checkout", encoded.Attributes[0].Value.GetStringValue())
}

func TestAnyValueEncodesByCapturedType(t *testing.T) {
	assert.Equal(t, true, anyValue(emit.Capture(true)).GetBoolValue())
	assert.Equal(t, int64(7), anyValue(emit.Capture(int64(7))).GetIntValue())
	assert.Equal(t, 1.5, anyValue(emit.Capture(1.5)).GetDoubleValue())
	assert.Equal(t, "hi", anyValue(emit.Capture("hi")).GetStringValue())
}

func TestAnyValueDoesNotCoerceNumericLookingStrings(t *testing.T) {
	boolLike := anyValue(emit.Capture("true"))
	assert.Equal(t, "true", boolLike.GetStringValue())
	assert.False(t, boolLike.GetBoolValue())

	intLike := anyValue(emit.Capture("42"))
	assert.Equal(t, "42", intLike.GetStringValue())
	assert.Zero(t, intLike.GetIntValue())

	floatLike := anyValue(emit.Capture("1.5"))
	assert.Equal(t, "1.5", floatLike.GetStringValue())
	assert.Zero(t, floatLike.GetDoubleValue())
}

func TestAttrsFromSkipsWellKnownKeys(t *testing.T) {
	evt := emit.NewEvent("pkg", emit.EmptyExtent(), emit.Parse("x"),
		emit.SliceProps{{Key: "custom", Value: emit.Capture("v")}})

	attrs := attrsFrom(evt, logSkip)
	var keys []string
	for _, a := range attrs {
		keys = append(keys, a.Key)
	}
	assert.Contains(t, keys, "custom")
	assert.NotContains(t, keys, emit.KeyTemplate)
}

func TestScopeGroupsByModule(t *testing.T) {
	a := emit.NewEvent("mod.a", emit.EmptyExtent(), emit.Parse("x"), nil)
	b := emit.NewEvent("mod.b", emit.EmptyExtent(), emit.Parse("y"), nil)
	c := emit.NewEvent("mod.a", emit.EmptyExtent(), emit.Parse("z"), nil)

	groups := scopeGroups([]emit.Event{a, b, c})
	assert.Len(t, groups, 2)
	assert.Len(t, groups["mod.a"], 2)
	assert.Len(t, groups["mod.b"], 1)
}

func TestScopeOfRendersName(t *testing.T) {
	scope := scopeOf("my.module")
	assert.Equal(t, &commonpb.InstrumentationScope{Name: "my.module"}, scope)
}
