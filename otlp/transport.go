// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	"crypto/tls"
	"time"

	collectlogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	collectmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	collecttracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/emit-go/emit"
	"github.com/emit-go/emit/internal/batcher"
	"github.com/emit-go/emit/internal/telemetry"
)

// Encoding selects the wire serialization for requests.
type Encoding int

const (
	EncodingProtobuf Encoding = iota
	EncodingJSON
)

// Protocol selects the transport a Transport sends over.
type Protocol int

const (
	ProtocolHTTP Protocol = iota
	ProtocolGRPC
)

// Signal identifies which OTLP signal a Transport carries.
type Signal int

const (
	SignalLogs Signal = iota
	SignalTraces
	SignalMetrics
)

// Config describes one signal's transport endpoint.
type Config struct {
	Signal   Signal
	Encoding Encoding
	Protocol Protocol
	Endpoint string
	TLS      *tls.Config
	Resource Resource
	Timeout  time.Duration
}

// sender is the protocol-specific half of a Transport: it takes a fully
// encoded request body and returns nil on success or a *emit.TransportError
// classifying the failure. The HTTP content type is fixed when the
// httpSender is built.
type sender interface {
	send(ctx sendContext, body []byte) error
}

// sendContext carries the per-request values a sender needs without coupling
// it to *Transport.
type sendContext struct {
	endpoint string
	timeout  time.Duration
}

// Transport is the per-signal state machine: group events by kind and scope,
// encode into the signal's wire envelope, and deliver over the configured
// protocol.
type Transport struct {
	cfg    Config
	send   sender
	counts struct {
		eventDiscarded *telemetry.Counter
		batchFailed    *telemetry.Counter
	}
}

// NewTransport builds a Transport for cfg.
func NewTransport(cfg Config) *Transport {
	t := &Transport{cfg: cfg}
	t.counts.eventDiscarded = telemetry.NewCounter("event_discarded", telemetry.AggCount)
	t.counts.batchFailed = telemetry.NewCounter("batch_failed", telemetry.AggCount)

	switch cfg.Protocol {
	case ProtocolGRPC:
		t.send = newGRPCSender(cfg)
	default:
		t.send = newHTTPSender(cfg)
	}
	return t
}

// Metrics returns a composite source yielding this transport's counters.
func (t *Transport) Metrics() telemetry.Source {
	return telemetry.NewTree().Add(t.counts.eventDiscarded).Add(t.counts.batchFailed)
}

// OnBatch is the batching channel's on_batch callback: it filters batch down
// to events matching this transport's signal (discarding and counting the
// rest), encodes, and delivers. A retryable failure is surfaced as
// *batcher.Retry[emit.Event] whose Remainder is the suffix of batch starting
// at its first matching event, so every matched event is re-enqueued in
// order; non-matching events inside that suffix are discarded and counted
// again on the next pass.
func (t *Transport) OnBatch(batch []emit.Event) error {
	matched := make([]emit.Event, 0, len(batch))
	first := -1
	for i, e := range batch {
		if t.matches(e) {
			if first < 0 {
				first = i
			}
			matched = append(matched, e)
		} else {
			t.counts.eventDiscarded.Inc()
		}
	}
	if len(matched) == 0 {
		return nil
	}

	body, err := t.encode(matched)
	if err != nil {
		t.counts.batchFailed.Inc()
		return err
	}

	sctx := sendContext{endpoint: t.cfg.Endpoint, timeout: t.requestTimeout()}
	if err := t.send.send(sctx, body); err != nil {
		if te, ok := err.(*emit.TransportError); ok && te.Retryable {
			return &batcher.Retry[emit.Event]{Remainder: batch[first:]}
		}
		t.counts.batchFailed.Inc()
		return err
	}
	return nil
}

// marshalRequest encodes a protobuf message per the transport's configured
// Encoding.
func marshalRequest(enc Encoding, msg proto.Message) ([]byte, error) {
	if enc == EncodingJSON {
		b, err := protojson.Marshal(msg)
		if err != nil {
			return nil, emit.ErrEncodingFailed
		}
		return b, nil
	}
	b, err := proto.Marshal(msg)
	if err != nil {
		return nil, emit.ErrEncodingFailed
	}
	return b, nil
}

func (t *Transport) matches(e emit.Event) bool {
	switch t.cfg.Signal {
	case SignalTraces:
		return e.Kind() == emit.EventKindSpan
	case SignalMetrics:
		return e.Kind() == emit.EventKindMetric
	default:
		return e.Kind() == emit.EventKindLog
	}
}

func (t *Transport) requestTimeout() time.Duration {
	if t.cfg.Timeout > 0 {
		return t.cfg.Timeout
	}
	return 10 * time.Second
}

func (t *Transport) encode(events []emit.Event) ([]byte, error) {
	switch t.cfg.Signal {
	case SignalTraces:
		req := &collecttracepb.ExportTraceServiceRequest{
			ResourceSpans: []*tracepb.ResourceSpans{EncodeResourceSpans(t.cfg.Resource, events)},
		}
		return marshalRequest(t.cfg.Encoding, req)
	case SignalMetrics:
		req := &collectmetricspb.ExportMetricsServiceRequest{
			ResourceMetrics: []*metricspb.ResourceMetrics{EncodeResourceMetrics(t.cfg.Resource, events)},
		}
		return marshalRequest(t.cfg.Encoding, req)
	default:
		req := &collectlogspb.ExportLogsServiceRequest{
			ResourceLogs: []*logspb.ResourceLogs{EncodeResourceLogs(t.cfg.Resource, events)},
		}
		return marshalRequest(t.cfg.Encoding, req)
	}
}
