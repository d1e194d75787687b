// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

// Package otlp implements the export transport: it consumes batches of
// already-filtered events, encodes them as OTLP protobuf or JSON, and
// delivers them over HTTP/1.1 or gRPC, retrying on 5xx/connection failures
// and dropping on 4xx.
package otlp

import (
	"reflect"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"

	"github.com/emit-go/emit"
)

// Resource is the attribute set shared across the logs/traces/metrics
// signals and attached to every request. It is encoded anew on each request
// (every EncodeResource* call runs Encode); no encoded form is cached.
type Resource struct {
	Attributes map[string]string
}

// Encode renders r into the wire resource message.
func (r Resource) Encode() *resourcepb.Resource {
	out := &resourcepb.Resource{}
	for k, v := range r.Attributes {
		out.Attributes = append(out.Attributes, &commonpb.KeyValue{
			Key:   k,
			Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: v}},
		})
	}
	return out
}

// anyValue lifts a Value into the OTLP AnyValue wire union, switching on the
// value's captured type rather than probing it with best-effort coercions —
// a string attribute whose text happens to parse as a bool or number must
// still round-trip as a StringValue.
func anyValue(v emit.Value) *commonpb.AnyValue {
	t := v.Type()
	if t == nil {
		return &commonpb.AnyValue{}
	}
	switch t.Kind() {
	case reflect.Bool:
		b, _ := v.ToBool()
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_BoolValue{BoolValue: b}}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, _ := v.ToInt64()
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: i}}
	case reflect.Float32, reflect.Float64:
		f, _ := v.ToFloat64()
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_DoubleValue{DoubleValue: f}}
	default:
		s, _ := v.ToString()
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: s}}
	}
}

// attrsFrom converts every property of e (excluding the well-known keys
// already represented structurally in the wire record) into a KeyValue list.
func attrsFrom(e emit.Event, skip map[string]bool) []*commonpb.KeyValue {
	var out []*commonpb.KeyValue
	e.ForEach(func(k emit.Key, v emit.Value) bool {
		if skip[k.String()] {
			return true
		}
		out = append(out, &commonpb.KeyValue{Key: k.String(), Value: anyValue(v)})
		return true
	})
	return out
}
