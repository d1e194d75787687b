// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package telemetry

import (
	"github.com/DataDog/datadog-go/v5/statsd"
)

// StatsdSink forwards a Source's samples to a statsd endpoint. This is purely
// additive: a caller that never constructs one still gets the plain Sample
// slice from Source.Sample.
type StatsdSink struct {
	client *statsd.Client
	tags   []string
}

// NewStatsdSink dials addr (host:port, or a unix:// socket path) and returns
// a sink tagging every metric with tags.
func NewStatsdSink(addr string, tags ...string) (*StatsdSink, error) {
	c, err := statsd.New(addr, statsd.WithTags(tags))
	if err != nil {
		return nil, err
	}
	return &StatsdSink{client: c, tags: tags}, nil
}

// Forward samples src once, shipping each counter sample as a statsd count
// metric and each sum-aggregated sample as a gauge.
func (s *StatsdSink) Forward(src Source) error {
	for _, sample := range src.Sample() {
		metricName := "emit." + sample.Name
		var err error
		switch sample.Agg {
		case AggSum:
			err = s.client.Gauge(metricName, float64(sample.Value), nil, 1)
		default:
			err = s.client.Count(metricName, int64(sample.Value), nil, 1)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the underlying statsd client.
func (s *StatsdSink) Close() error { return s.client.Close() }
