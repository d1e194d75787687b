// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"

	"github.com/emit-go/emit"
)

// scopeGroups buckets a batch of events by their module path, the
// instrumentation-scope grouping key for every signal.
func scopeGroups(events []emit.Event) map[string][]emit.Event {
	groups := make(map[string][]emit.Event)
	for _, e := range events {
		groups[e.Module] = append(groups[e.Module], e)
	}
	return groups
}

// scopeOf renders the wire instrumentation scope for a module path.
func scopeOf(module string) *commonpb.InstrumentationScope {
	return &commonpb.InstrumentationScope{Name: module}
}
