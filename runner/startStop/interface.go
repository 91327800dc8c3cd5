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

// Package startStop wraps a pair of start/stop functions into a goroutine
// lifecycle that can be started, stopped and restarted repeatedly, tracks
// its own uptime, and keeps the last errors returned by either function.
//
// It is the building block used by anything in this module that needs a
// supervised background loop: the aggregated file writer, the outbound
// pacer, the idle watchdog and the connection engine all wrap their run
// loop in a StartStop instance instead of managing a raw goroutine.
package startStop

import (
	"context"
	"time"
)

// StartFunc runs until ctx is cancelled or it decides to return on its own.
type StartFunc func(ctx context.Context) error

// StopFunc is called to unwind a running StartFunc.
type StopFunc func(ctx context.Context) error

// StartStop supervises a single start/stop pair as a restartable lifecycle.
type StartStop interface {
	// Start launches the start function in a new goroutine if not already
	// running. If a previous run is still active, it is stopped first.
	// Start returns once the previous instance (if any) is stopped and the
	// new goroutine has been launched; it does not wait for StartFunc itself
	// to return.
	Start(ctx context.Context) error

	// Stop halts the current run, if any, and waits for it to return.
	// Calling Stop when not running is a no-op.
	Stop(ctx context.Context) error

	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error

	// IsRunning reports whether a start function is currently active.
	IsRunning() bool

	// Uptime returns how long the current run has been active, or zero if
	// not running.
	Uptime() time.Duration

	// ErrorsLast returns the most recent error returned by the start or
	// stop function, or nil if none has occurred since the last Start.
	ErrorsLast() error

	// ErrorsList returns all errors collected since the last Start.
	ErrorsList() []error
}

// New returns a StartStop wrapping the given start/stop functions. Either
// may be nil: calling Start or Stop on a nil function records an error
// instead of panicking.
func New(start StartFunc, stop StopFunc) StartStop {
	return &runner{
		fStart: start,
		fStop:  stop,
	}
}
