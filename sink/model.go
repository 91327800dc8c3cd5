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

package sink

import (
	"context"
	"sync/atomic"

	"github/sabouaram/goirc/runner/startStop"
)

// sink is the concrete Sink: a buffered channel of offered values drained
// by a single goroutine under a startStop.StartStop lifecycle, the same
// shape the teacher's channel-buffered write aggregator uses to keep a
// slow consumer from ever blocking its producer.
type sink struct {
	handle     func(value interface{})
	onOverflow func(value interface{})

	ch      chan interface{}
	dropped int64

	lifecycle startStop.StartStop
}

func newSink(opt Options) *sink {
	s := &sink{
		handle:     opt.Handle,
		onOverflow: opt.OnOverflow,
		ch:         make(chan interface{}, opt.Capacity),
	}
	s.lifecycle = startStop.New(s.run, s.haltDrain)
	_ = s.lifecycle.Start(context.Background())
	return s
}

func (s *sink) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.drainRemaining()
			return nil
		case v := <-s.ch:
			s.dispatch(v)
		}
	}
}

// drainRemaining delivers whatever is still buffered at shutdown instead
// of discarding it, so a Close does not silently swallow the tail of the
// queue.
func (s *sink) drainRemaining() {
	for {
		select {
		case v := <-s.ch:
			s.dispatch(v)
		default:
			return
		}
	}
}

func (s *sink) dispatch(v interface{}) {
	if s.handle == nil {
		return
	}
	s.handle(v)
}

func (s *sink) haltDrain(_ context.Context) error { return nil }

func (s *sink) Offer(value interface{}) {
	if !s.lifecycle.IsRunning() {
		return
	}
	select {
	case s.ch <- value:
	default:
		atomic.AddInt64(&s.dropped, 1)
		droppedTotal.Inc()
		if s.onOverflow != nil {
			s.onOverflow(value)
		}
	}
}

func (s *sink) Dropped() int64 {
	return atomic.LoadInt64(&s.dropped)
}

func (s *sink) Close() error {
	if err := s.lifecycle.Stop(context.Background()); err != nil {
		return ErrorClose.Error(err)
	}
	return nil
}
