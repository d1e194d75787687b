// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

// Package log is the framework's own self-diagnostic logger: it narrates
// setup mistakes, recovered panics, and dropped batches, never the event
// pipeline's data path.
package log

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Level is the internal logger's verbosity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelWarn
	LevelError
)

// Logger is the pluggable sink every package-level function writes through.
type Logger interface {
	Log(msg string)
}

const prefixMsg = "emit"

// defaultLogger writes through the standard library's default logger.
type defaultLogger struct{}

func (defaultLogger) Log(msg string) { log.Print(msg) }

// DiscardLogger discards every message.
type DiscardLogger struct{}

func (DiscardLogger) Log(string) {}

var (
	mu             sync.RWMutex
	logger         Logger = &defaultLogger{}
	levelThreshold        = LevelWarn
)

// UseLogger sets l as the active logger.
func UseLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetLevel sets the minimum level that is printed immediately.
func SetLevel(lvl Level) {
	mu.Lock()
	defer mu.Unlock()
	levelThreshold = lvl
}

// DebugEnabled reports whether Debug messages are currently printed.
func DebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return levelThreshold <= LevelDebug
}

func msg(lvl, m string) string {
	return fmt.Sprintf("%s %s: %s", prefixMsg, lvl, m)
}

func printNow(lvl, format string, a ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Log(msg(lvl, fmt.Sprintf(format, a...)))
}

// Debug prints format immediately iff the debug threshold is enabled.
func Debug(format string, a ...any) {
	if !DebugEnabled() {
		return
	}
	printNow("DEBUG", format, a...)
}

// Warn prints format immediately, regardless of threshold.
func Warn(format string, a ...any) {
	printNow("WARN", format, a...)
}

var (
	errMu       sync.Mutex
	errCounts   = map[string]int{}
	errFirst    = map[string]string{}
	errrate     = time.Minute
	flushTimer  *time.Timer
	errorLimitN = defaultErrorLimit
)

const defaultErrorLimit = 200

// Error records a formatted error message, suppressing repeats of the same
// format string within the current errrate window and batching the suppressed
// count into a single summary line on the next Flush.
func Error(format string, a ...any) {
	errMu.Lock()
	defer errMu.Unlock()

	n := errCounts[format]
	errCounts[format] = n + 1
	if n == 0 {
		errFirst[format] = fmt.Sprintf(format, a...)
	}
	if n >= errorLimitN {
		return
	}

	if errrate <= 0 {
		flushLocked()
		return
	}
	if flushTimer == nil {
		flushTimer = time.AfterFunc(errrate, func() {
			errMu.Lock()
			defer errMu.Unlock()
			flushLocked()
		})
	}
}

// Flush immediately emits any pending suppressed error lines.
func Flush() {
	errMu.Lock()
	defer errMu.Unlock()
	flushLocked()
}

func flushLocked() {
	for format, n := range errCounts {
		if n == 0 {
			continue
		}
		first := errFirst[format]
		switch {
		case n > errorLimitN:
			printNow("ERROR", "%s, %d+ additional messages skipped", first, errorLimitN)
		case n > 1:
			printNow("ERROR", "%s, %d additional messages skipped", first, n-1)
		default:
			printNow("ERROR", "%s", first)
		}
	}
	errCounts = map[string]int{}
	errFirst = map[string]string{}
	if flushTimer != nil {
		flushTimer.Stop()
		flushTimer = nil
	}
}

func setLoggingRate(s string) {
	if s == "" {
		errrate = time.Minute
		return
	}
	secs, err := strconv.Atoi(s)
	if err != nil || secs < 0 {
		errrate = time.Minute
		return
	}
	errrate = time.Duration(secs) * time.Second
}

// RecordLogger is a Logger that retains every line in memory, for tests, with
// an optional substring filter to drop noisy call sites.
type RecordLogger struct {
	mu      sync.Mutex
	lines   []string
	ignored []string
}

// Ignore drops any future Log call whose message contains substr.
func (r *RecordLogger) Ignore(substr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ignored = append(r.ignored, substr)
}

// Log implements Logger.
func (r *RecordLogger) Log(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.ignored {
		if strings.Contains(m, s) {
			return
		}
	}
	r.lines = append(r.lines, m)
}

// Logs returns every retained line.
func (r *RecordLogger) Logs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset clears retained lines and every Ignore filter.
func (r *RecordLogger) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = r.lines[:0]
	r.ignored = r.ignored[:0]
}

// LoggerFile is the file name OpenFileAtPath writes into a given directory.
const LoggerFile = "emit.log"

// File is a Logger backed by a single open file on disk.
type File struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// OpenFileAtPath opens (creating if needed) LoggerFile under dir.
func OpenFileAtPath(dir string) (*File, error) {
	f, err := os.OpenFile(dir+"/"+LoggerFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{file: f}, nil
}

// Log implements Logger.
func (f *File) Log(m string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	fmt.Fprintln(f.file, m)
}

// Close closes the underlying file. Safe to call concurrently and more than
// once.
func (f *File) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.file.Close()
}
