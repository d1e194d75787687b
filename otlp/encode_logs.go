// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"

	"github.com/emit-go/emit"
)

var logSkip = map[string]bool{
	emit.KeyTimestamp: true, emit.KeyTemplate: true, emit.KeyMessage: true,
	emit.KeyLevel: true, emit.KeyModule: true, emit.KeyTraceID: true, emit.KeySpanID: true,
}

// severityOf maps a Level onto the OTLP SeverityNumber scale.
func severityOf(lvl emit.Level) logspb.SeverityNumber {
	switch lvl {
	case emit.LevelDebug:
		return logspb.SeverityNumber_SEVERITY_NUMBER_DEBUG
	case emit.LevelWarn:
		return logspb.SeverityNumber_SEVERITY_NUMBER_WARN
	case emit.LevelError:
		return logspb.SeverityNumber_SEVERITY_NUMBER_ERROR
	default:
		return logspb.SeverityNumber_SEVERITY_NUMBER_INFO
	}
}

// EncodeLogRecord renders a single log-kind event as an OTLP LogRecord.
func EncodeLogRecord(e emit.Event) *logspb.LogRecord {
	ts, _ := e.Extent.End()
	lvl := e.Level()

	rec := &logspb.LogRecord{
		TimeUnixNano:   uint64(ts.UnixNano()),
		SeverityNumber: severityOf(lvl),
		SeverityText:   lvl.String(),
		Body:           anyValue(emit.Capture(e.Msg())),
		Attributes:     attrsFrom(e, logSkip),
	}
	if tid := e.TraceID(); !tid.IsAbsent() {
		rec.TraceId = tid[:]
	}
	if sid := e.SpanID(); !sid.IsAbsent() {
		rec.SpanId = sid[:]
	}
	return rec
}

// EncodeResourceLogs groups a batch of log-kind events by module into OTLP
// ResourceLogs/ScopeLogs envelopes under the shared resource.
func EncodeResourceLogs(resource Resource, events []emit.Event) *logspb.ResourceLogs {
	out := &logspb.ResourceLogs{Resource: resource.Encode()}
	for module, group := range scopeGroups(events) {
		scopeLogs := &logspb.ScopeLogs{Scope: scopeOf(module)}
		for _, e := range group {
			scopeLogs.LogRecords = append(scopeLogs.LogRecords, EncodeLogRecord(e))
		}
		out.ScopeLogs = append(out.ScopeLogs, scopeLogs)
	}
	return out
}
