// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"encoding/hex"
	"errors"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// ErrParseID is returned by ParseTraceID/ParseSpanID when the input isn't a
// validly-sized hex string.
var ErrParseID = errors.New("emit: malformed id")

// TraceID is a 128-bit trace identifier. The all-zero value is reserved to
// mean "absent".
type TraceID [16]byte

// SpanID is a 64-bit span identifier. The all-zero value is reserved to mean
// "absent".
type SpanID [8]byte

// TraceIDFromUint128 builds a TraceID from its big-endian (hi, lo) halves.
func TraceIDFromUint128(hi, lo uint64) TraceID {
	var id TraceID
	putUint64(id[0:8], hi)
	putUint64(id[8:16], lo)
	return id
}

// SpanIDFromUint64 builds a SpanID from a u64.
func SpanIDFromUint64(v uint64) SpanID {
	var id SpanID
	putUint64(id[:], v)
	return id
}

func putUint64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

// IsAbsent reports whether id is the reserved all-zero "absent" value.
func (id TraceID) IsAbsent() bool { return id == TraceID{} }

// IsAbsent reports whether id is the reserved all-zero "absent" value.
func (id SpanID) IsAbsent() bool { return id == SpanID{} }

// String renders id as 32 lower-case hex characters, or "" for the absent id.
func (id TraceID) String() string {
	if id.IsAbsent() {
		return ""
	}
	return hex.EncodeToString(id[:])
}

// String renders id as 16 lower-case hex characters, or "" for the absent id.
func (id SpanID) String() string {
	if id.IsAbsent() {
		return ""
	}
	return hex.EncodeToString(id[:])
}

// ParseTraceID decodes a 32-character hex string into a TraceID. An empty
// string parses to the absent id.
func ParseTraceID(s string) (TraceID, error) {
	var id TraceID
	if s == "" {
		return id, nil
	}
	if len(s) != 32 {
		return id, ErrParseID
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, ErrParseID
	}
	copy(id[:], b)
	return id, nil
}

// ParseSpanID decodes a 16-character hex string into a SpanID. An empty
// string parses to the absent id.
func ParseSpanID(s string) (SpanID, error) {
	var id SpanID
	if s == "" {
		return id, nil
	}
	if len(s) != 16 {
		return id, ErrParseID
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, ErrParseID
	}
	copy(id[:], b)
	return id, nil
}

// ToValue captures id for placement in a property bag under trace_id.
func (id TraceID) ToValue() Value { return Capture(id.String()) }

// ToValue captures id for placement in a property bag under span_id.
func (id SpanID) ToValue() Value { return Capture(id.String()) }

// OTelTraceID converts id to the go.opentelemetry.io/otel/trace
// representation, so events built by this framework interoperate with an
// ambient OTel SDK sharing the same process.
func (id TraceID) OTelTraceID() oteltrace.TraceID { return oteltrace.TraceID(id) }

// OTelSpanID converts id to the go.opentelemetry.io/otel/trace representation.
func (id SpanID) OTelSpanID() oteltrace.SpanID { return oteltrace.SpanID(id) }

// TraceIDFromOTel converts an OTel TraceID into this package's representation.
func TraceIDFromOTel(id oteltrace.TraceID) TraceID { return TraceID(id) }

// SpanIDFromOTel converts an OTel SpanID into this package's representation.
func SpanIDFromOTel(id oteltrace.SpanID) SpanID { return SpanID(id) }
