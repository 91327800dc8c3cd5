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

// Package queue implements the outbound FIFO and its pacer: at most one
// non-priority line is released to the Writer per period, while priority
// lines bypass the queue entirely and are written immediately.
package queue

import (
	"context"
	"time"
)

// Writer is the minimal capability the pacer needs from whatever owns the
// live socket; transport.Transport and engine.Engine both satisfy it.
type Writer interface {
	Write(line string) error
}

// Pacer owns the outbound FIFO and its periodic emitter.
type Pacer interface {
	// Enqueue submits line. Priority lines bypass the FIFO and are written
	// to the Writer immediately, on the calling goroutine. Non-priority
	// lines are appended to the FIFO and released at the pacer's period.
	Enqueue(line string, priority bool) error

	// StartPacing begins periodic emission. It is idempotent while already
	// running.
	StartPacing(ctx context.Context) error

	// Stop halts periodic emission and drops any queued non-priority
	// lines (spec.md §5: "Pending non-priority queue entries are
	// dropped" on shutdown).
	Stop(ctx context.Context) error

	// SetPeriod changes the pacer's period. The fire already scheduled
	// under the old period is preserved — only fires after that one use
	// the new period (SPEC_FULL.md §8's Open Question decision).
	SetPeriod(d time.Duration)

	// Period returns the pacer's current period.
	Period() time.Duration

	// Len returns the number of non-priority lines currently queued.
	Len() int
}

// New returns a Pacer writing released lines to w, ticking at period.
func New(w Writer, period time.Duration) Pacer {
	return newPacer(w, period)
}
