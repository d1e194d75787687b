// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emit-go/emit"
)

func TestHTTPSenderSuccessOn2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := newHTTPSender(Config{})
	err := s.send(sendContext{endpoint: srv.URL, timeout: time.Second}, []byte("body"))
	assert.NoError(t, err)
}

func TestHTTPSender4xxIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	s := newHTTPSender(Config{})
	err := s.send(sendContext{endpoint: srv.URL, timeout: time.Second}, []byte("body"))
	require.Error(t, err)

	te, ok := err.(*emit.TransportError)
	require.True(t, ok)
	assert.False(t, te.Retryable)
}

func TestHTTPSender5xxIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newHTTPSender(Config{})
	err := s.send(sendContext{endpoint: srv.URL, timeout: time.Second}, []byte("body"))
	require.Error(t, err)

	te, ok := err.(*emit.TransportError)
	require.True(t, ok)
	assert.True(t, te.Retryable)
}

func TestHTTPSenderConnectionErrorIsRetryable(t *testing.T) {
	s := newHTTPSender(Config{})
	err := s.send(sendContext{endpoint: "http://127.0.0.1:1", timeout: 200 * time.Millisecond}, []byte("body"))
	require.Error(t, err)

	te, ok := err.(*emit.TransportError)
	require.True(t, ok)
	assert.True(t, te.Retryable)
}

func TestHTTPSenderSetsContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := newHTTPSender(Config{Encoding: EncodingJSON})
	err := s.send(sendContext{endpoint: srv.URL, timeout: time.Second}, []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
}
