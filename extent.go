// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import "time"

// Extent is an event's time span: either empty, a single point in time, or a
// half-open interval [start, end).
type Extent struct {
	set        bool
	start, end time.Time
}

// EmptyExtent returns the empty extent.
func EmptyExtent() Extent { return Extent{} }

// PointExtent returns a point extent at ts (start == end == ts).
func PointExtent(ts time.Time) Extent { return Extent{set: true, start: ts, end: ts} }

// IntervalExtent returns a half-open interval extent [start, end). Panics if
// end is before start.
func IntervalExtent(start, end time.Time) Extent {
	if end.Before(start) {
		panic("emit: interval extent end before start")
	}
	return Extent{set: true, start: start, end: end}
}

// IsEmpty reports whether the extent carries no timestamp at all.
func (e Extent) IsEmpty() bool { return !e.set }

// IsPoint reports whether the extent is a single instant (start == end).
func (e Extent) IsPoint() bool { return e.set && e.start.Equal(e.end) }

// IsInterval reports whether the extent spans a non-zero duration.
func (e Extent) IsInterval() bool { return e.set && !e.start.Equal(e.end) }

// Start returns the interval's opening instant, or the zero Time and false
// for an empty extent. For a point extent Start == End.
func (e Extent) Start() (time.Time, bool) { return e.start, e.set }

// End returns the extent's instant (for a point) or the interval's closing
// instant, or the zero Time and false for an empty extent. This is the value
// surfaced as the well-known `ts` property.
func (e Extent) End() (time.Time, bool) { return e.end, e.set }

// Duration returns end - start; only meaningful for an interval extent.
func (e Extent) Duration() (time.Duration, bool) {
	if !e.IsInterval() {
		return 0, false
	}
	return e.end.Sub(e.start), true
}

// OrElse returns e if non-empty, else the extent produced by fallback.
func (e Extent) OrElse(fallback func() Extent) Extent {
	if !e.set {
		return fallback()
	}
	return e
}
