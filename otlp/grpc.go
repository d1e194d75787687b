// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/emit-go/emit"
)

// rawBytesCodec passes an already-encoded protobuf/JSON payload straight
// through, since the caller (Transport.encode) has already serialized the
// request message; this lets one Transport share its encode step across the
// HTTP and gRPC senders instead of re-marshaling per protocol.
type rawBytesCodec struct{}

func (rawBytesCodec) Name() string { return "raw" }

func (rawBytesCodec) Marshal(v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("otlp: grpc codec expects []byte, got %T", v)
	}
	return b, nil
}

func (rawBytesCodec) Unmarshal(data []byte, v any) error {
	p, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("otlp: grpc codec expects *[]byte, got %T", v)
	}
	*p = append((*p)[:0], data...)
	return nil
}

// grpcMethod maps a Signal onto its collector service's Export RPC path.
func grpcMethod(signal Signal) string {
	switch signal {
	case SignalTraces:
		return "/opentelemetry.proto.collector.trace.v1.TraceService/Export"
	case SignalMetrics:
		return "/opentelemetry.proto.collector.metrics.v1.MetricsService/Export"
	default:
		return "/opentelemetry.proto.collector.logs.v1.LogsService/Export"
	}
}

// grpcSender delivers a request body over gRPC/HTTP2, pacing every send
// (retries included) with a token-bucket limiter so a collector returning UNAVAILABLE repeatedly isn't
// hammered by the batching channel's bounded-retry loop.
type grpcSender struct {
	conn    *grpc.ClientConn
	method  string
	limiter *rate.Limiter
}

func newGRPCSender(cfg Config) *grpcSender {
	creds := insecure.NewCredentials()
	if cfg.TLS != nil {
		creds = credentials.NewTLS(cfg.TLS)
	}
	conn, _ := grpc.NewClient(cfg.Endpoint,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(rawBytesCodec{})),
	)
	return &grpcSender{
		conn:    conn,
		method:  grpcMethod(cfg.Signal),
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

// send implements sender. Every call first waits on the pacing limiter (one
// attempt per 200ms). A nil gRPC error (OK) is success; a retryable status
// (UNAVAILABLE, RESOURCE_EXHAUSTED, DEADLINE_EXCEEDED, ABORTED), or an error
// carrying no gRPC status, is returned as a retryable TransportError; any
// other status is permanent.
func (s *grpcSender) send(sctx sendContext, body []byte) error {
	if err := s.limiter.Wait(context.Background()); err != nil {
		return &emit.TransportError{Retryable: true, Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), sctx.timeout)
	defer cancel()

	var resp []byte
	err := s.conn.Invoke(ctx, s.method, body, &resp)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return &emit.TransportError{Retryable: true, Err: err}
	}
	switch st.Code() {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Aborted:
		return &emit.TransportError{Retryable: true, Err: err}
	default:
		return &emit.TransportError{Retryable: false, Err: err}
	}
}
