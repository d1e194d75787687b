// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import "errors"

// Sentinel errors composed with the standard errors.Is/errors.As machinery
// (fmt.Errorf("...: %w", ...)) rather than a bespoke error-code system.
var (
	// ErrAlreadyInitialized is returned by Setup.Init when the runtime has
	// already been published once for this process.
	ErrAlreadyInitialized = errors.New("emit: runtime already initialized")

	// ErrEncodingFailed is returned by the OTLP transport when a request
	// fails to serialize; the underlying marshal error is not attached.
	ErrEncodingFailed = errors.New("emit: encoding failed")

	// ErrParse is wrapped by level parse failures (ParseLevel). Malformed
	// trace/span ids are reported as ErrParseID, which does not wrap it.
	ErrParse = errors.New("emit: parse error")

	// ErrTimeoutElapsed names the blocking-flush timeout error kind. The
	// BlockingFlush methods report a timeout by returning false; none of
	// them returns this error.
	ErrTimeoutElapsed = errors.New("emit: timeout elapsed")
)

// TransportError wraps a network/protocol failure from the OTLP transport.
// Retryable distinguishes a 5xx, connection error, or gRPC retryable status
// (caller should return Retry to the batching channel) from a 4xx or
// permanent failure (drop, no retry).
type TransportError struct {
	Retryable bool
	Err       error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Retryable {
		return "emit: transport failed (retryable): " + e.Err.Error()
	}
	return "emit: transport failed (permanent): " + e.Err.Error()
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *TransportError) Unwrap() error { return e.Err }
