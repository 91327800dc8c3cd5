/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package watchdog runs the two independent idle timers the connection
// engine reacts to: reader-idle (no inbound byte for a while, triggers a
// reconnect) and all-idle (no traffic in either direction, triggers a
// keepalive ping).
package watchdog

import (
	"context"
	"time"
)

// ReaderIdle is the default reader-idle threshold (spec.md §4.4).
const ReaderIdle = 250 * time.Second

// AllIdle is the default all-idle threshold (spec.md §4.4).
const AllIdle = 60 * time.Second

// defaultPollInterval is how often the watchdog checks elapsed idle time
// against its thresholds under New. It must be well below both
// thresholds; tests exercising small idle durations use NewWithPoll to
// supply a proportionally small poll interval instead.
const defaultPollInterval = time.Second

// Watchdog tracks the time since the last inbound byte and the time since
// the last byte in either direction, firing its callbacks at most once
// per idle episode (spec.md §4.4: "Only the first firing of each idle
// type per idle-event cycle is acted upon").
type Watchdog interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// NoteInbound records an inbound byte, resetting both the reader-idle
	// and the all-idle timers.
	NoteInbound()

	// NoteOutbound records an outbound byte, resetting only the all-idle
	// timer (SPEC_FULL.md §8's Open Question decision: reader-idle
	// resets on inbound traffic only).
	NoteOutbound()
}

// New returns a Watchdog that calls onReaderIdle the first time no
// inbound byte has arrived for readerIdle, and onAllIdle the first time
// no traffic in either direction has occurred for allIdle. Either
// duration ≤ 0 falls back to the spec.md §4.4 default.
func New(readerIdle, allIdle time.Duration, onReaderIdle, onAllIdle func()) Watchdog {
	return NewWithPoll(readerIdle, allIdle, defaultPollInterval, onReaderIdle, onAllIdle)
}

// NewWithPoll is New with an explicit poll interval, for callers (and
// tests) exercising idle durations too small for defaultPollInterval to
// detect promptly.
func NewWithPoll(readerIdle, allIdle, pollInterval time.Duration, onReaderIdle, onAllIdle func()) Watchdog {
	if readerIdle <= 0 {
		readerIdle = ReaderIdle
	}
	if allIdle <= 0 {
		allIdle = AllIdle
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return newWatchdog(readerIdle, allIdle, pollInterval, onReaderIdle, onAllIdle)
}
