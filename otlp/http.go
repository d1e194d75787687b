// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/emit-go/emit"
)

// httpSender delivers a request body over HTTP/1.1 POST.
type httpSender struct {
	client      *http.Client
	contentType string
}

func newHTTPSender(cfg Config) *httpSender {
	transport := &http.Transport{}
	if cfg.TLS != nil {
		transport.TLSClientConfig = cfg.TLS
	} else {
		transport.TLSClientConfig = &tls.Config{}
	}
	contentType := "application/x-protobuf"
	if cfg.Encoding == EncodingJSON {
		contentType = "application/json"
	}
	return &httpSender{client: &http.Client{Transport: transport}, contentType: contentType}
}

// send implements sender. A 2xx status is success. A 4xx status is a
// permanent failure (no retry). A 5xx status, or any connection-level error,
// is retryable.
func (s *httpSender) send(sctx sendContext, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), sctx.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sctx.endpoint, bytes.NewReader(body))
	if err != nil {
		return &emit.TransportError{Retryable: false, Err: err}
	}
	req.Header.Set("Content-Type", s.contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return &emit.TransportError{Retryable: true, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &emit.TransportError{Retryable: false, Err: fmt.Errorf("otlp: http status %d", resp.StatusCode)}
	default:
		return &emit.TransportError{Retryable: true, Err: fmt.Errorf("otlp: http status %d", resp.StatusCode)}
	}
}
