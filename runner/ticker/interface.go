/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package ticker wraps a time.Ticker into a restartable lifecycle, the same
// shape as runner/startStop but specialised for periodic work: the outbound
// pacer and the idle watchdog both drive their periodic checks through a
// Ticker instead of managing a raw time.Ticker and goroutine themselves.
package ticker

import (
	"context"
	"time"
)

// defaultDuration is used whenever the caller supplies a period shorter than
// minDuration.
const defaultDuration = 30 * time.Second

// minDuration is the smallest period New accepts as-is.
const minDuration = time.Millisecond

// Func is invoked on every tick. The *time.Ticker is passed through so the
// function can reset or stop it; the context is cancelled when the ticker is
// stopped or its parent context ends.
type Func func(ctx context.Context, tck *time.Ticker) error

// Ticker supervises a periodic function as a restartable lifecycle.
type Ticker interface {
	// Start begins ticking at the configured period. If already running,
	// the previous run is stopped first. Start returns once the new
	// goroutine has been launched.
	Start(ctx context.Context) error

	// Stop halts the current run, if any, and waits for it to return.
	// Calling Stop when not running is a no-op.
	Stop(ctx context.Context) error

	// Restart is Stop followed by Start; it also clears the error pool.
	Restart(ctx context.Context) error

	// IsRunning reports whether the ticker is currently active.
	IsRunning() bool

	// Uptime returns how long the current run has been active, or zero if
	// not running.
	Uptime() time.Duration

	// ErrorsLast returns the most recent error returned by Func, or nil if
	// none has occurred since the last Start.
	ErrorsLast() error

	// ErrorsList returns all errors collected since the last Start.
	ErrorsList() []error
}

// New returns a Ticker calling fct every d. A d below minDuration (including
// zero and negative values) is replaced with defaultDuration. A nil fct is
// accepted and simply does nothing on each tick.
func New(d time.Duration, fct Func) Ticker {
	if d < minDuration {
		d = defaultDuration
	}

	return &tck{
		period: d,
		fct:    fct,
	}
}
