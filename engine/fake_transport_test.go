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

package engine_test

import (
	"context"
	"io"
	"strings"
	"sync"

	"github/sabouaram/goirc/event"
)

// fakeTransport is an in-memory transport.Transport: inbound bytes are fed
// through an io.Pipe the test controls with sendServerLine, and outbound
// writes are captured (CRLF stripped) on a channel a test drains with
// nextWrite.
type fakeTransport struct {
	r *io.PipeReader
	w *io.PipeWriter

	writes chan string

	mu         sync.Mutex
	closed     bool
	connectErr error
}

func newFakeTransport() *fakeTransport {
	r, w := io.Pipe()
	return &fakeTransport{r: r, w: w, writes: make(chan string, 256)}
}

func (f *fakeTransport) Connect(_ context.Context) error {
	return f.connectErr
}

func (f *fakeTransport) Write(b []byte) error {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return io.ErrClosedPipe
	}

	line := strings.TrimRight(string(b), "\r\n")
	select {
	case f.writes <- line:
	default:
	}
	return nil
}

func (f *fakeTransport) Reader() io.Reader { return f.r }

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	_ = f.w.Close()
	_ = f.r.Close()
	return nil
}

func (f *fakeTransport) RemoteAddr() string { return "fake.test:6667" }

// sendServerLine simulates one inbound protocol line. It writes off the
// calling goroutine since io.Pipe's Write blocks until the engine's framer
// reads it.
func (f *fakeTransport) sendServerLine(line string) {
	go func() {
		_, _ = f.w.Write([]byte(line + "\r\n"))
	}()
}

// nextWrite pops the oldest captured outbound line, or "" if none is
// available yet. Meant to be polled with Gomega's Eventually.
func (f *fakeTransport) nextWrite() string {
	select {
	case s := <-f.writes:
		return s
	default:
		return ""
	}
}

// fakeBus records every dispatched event for later inspection.
type fakeBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *fakeBus) Dispatch(e event.Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *fakeBus) snapshot() []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Event, len(b.events))
	copy(out, b.events)
	return out
}

func (b *fakeBus) has(kind event.Kind) bool {
	for _, e := range b.snapshot() {
		if e.Kind() == kind {
			return true
		}
	}
	return false
}
