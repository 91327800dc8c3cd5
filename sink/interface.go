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

// Package sink provides the default implementation of the engine's Sink
// collaborator (spec.md §5, "Observer sinks"): a single-producer/
// single-consumer queue drained by one dedicated goroutine, so a slow or
// misbehaving observer callback can never block the engine's own
// read/write loop.
package sink

// DefaultCapacity is the channel depth used by New when Capacity is zero.
const DefaultCapacity = 256

// Options configures a Sink.
type Options struct {
	// Handle is called, from the sink's single drain goroutine, once per
	// offered value, in the order offered. Required.
	Handle func(value interface{})

	// Capacity is the number of pending values the sink buffers before
	// Offer starts dropping. Zero uses DefaultCapacity.
	Capacity int

	// OnOverflow, if set, is called once per dropped value when the
	// buffer is full. It runs on the caller's goroutine, never the
	// drain goroutine.
	OnOverflow func(value interface{})
}

// Sink is a started, running observer queue. It satisfies engine.Sink.
type Sink interface {
	// Offer enqueues value for asynchronous delivery to the configured
	// Handle. It never blocks: if the buffer is full, value is dropped
	// and OnOverflow (if set) is invoked instead.
	Offer(value interface{})

	// Dropped returns the number of values discarded so far because the
	// buffer was full.
	Dropped() int64

	// Close stops the drain goroutine and waits for it to exit. Offer
	// after Close silently drops.
	Close() error
}

// New builds and starts a Sink with the given Options.
func New(opt Options) Sink {
	if opt.Capacity <= 0 {
		opt.Capacity = DefaultCapacity
	}
	return newSink(opt)
}
