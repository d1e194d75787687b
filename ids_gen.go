// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import "github.com/google/uuid"

// GenerateTraceID produces a new random, non-absent TraceID.
//
// IDs are always randomly generated, never sequential: events built by this
// framework are export-capable by default, and a sequential counter would
// leak process-local ordering information once events leave the process
// over OTLP. google/uuid's CSPRNG-backed v4 generator supplies the sixteen
// bytes of entropy directly; the trace id itself is not an RFC 4122 UUID,
// just sixteen random bytes packaged through a library already in the
// dependency surface.
func GenerateTraceID() TraceID {
	for {
		u := uuid.New()
		var id TraceID
		copy(id[:], u[:])
		if !id.IsAbsent() {
			return id
		}
	}
}

// GenerateSpanID produces a new random, non-absent SpanID.
func GenerateSpanID() SpanID {
	for {
		u := uuid.New()
		var id SpanID
		copy(id[:], u[:8])
		if !id.IsAbsent() {
			return id
		}
	}
}
