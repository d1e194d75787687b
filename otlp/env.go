// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package otlp

import (
	"os"
	"time"

	"github.com/hashicorp/go-secure-stdlib/parseutil"

	"github.com/emit-go/emit/internal/log"
)

// Environment variable names a Transport's Config can be sourced from,
// for accepting human-friendly duration/bool strings from the process
// environment rather than requiring a typed config object at every call site.
const (
	EnvEndpoint = "EMIT_OTLP_ENDPOINT"
	EnvTimeout  = "EMIT_OTLP_TIMEOUT"
	EnvInsecure = "EMIT_OTLP_INSECURE"
)

// ApplyEnv overlays cfg with any of EnvEndpoint/EnvTimeout/EnvInsecure found
// in the process environment: a set, parseable env var replaces the matching
// cfg field (EnvInsecure=true clears cfg.TLS), while an env var that fails to
// parse leaves its field as it was (logged, not fatal).
func ApplyEnv(cfg Config) Config {
	if v, ok := lookupEnv(EnvEndpoint); ok {
		cfg.Endpoint = v
	}
	if v, ok := lookupEnv(EnvTimeout); ok {
		if d, err := parseutil.ParseDurationSecond(v); err == nil {
			cfg.Timeout = d
		} else {
			log.Warn("otlp: failed to parse %s as a duration: %v", EnvTimeout, err)
		}
	}
	if v, ok := lookupEnv(EnvInsecure); ok {
		if insecure, err := parseutil.ParseBool(v); err == nil && insecure {
			cfg.TLS = nil
		} else if err != nil {
			log.Warn("otlp: failed to parse %s as a bool: %v", EnvInsecure, err)
		}
	}
	return cfg
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
