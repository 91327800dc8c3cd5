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

package queue

import (
	"context"
	"sync"
	"time"

	libatm "github/sabouaram/goirc/atomic"
	librun "github/sabouaram/goirc/runner"
)

// pacer is the concrete Pacer. Its emission loop is driven by a one-shot
// time.Timer rather than a time.Ticker so that SetPeriod can leave an
// already-armed fire untouched: the timer fires at the deadline it was
// given, and only the *next* deadline (computed after that fire) picks up
// the new period.
type pacer struct {
	w Writer

	period libatm.Value[time.Duration]

	mu   sync.Mutex
	fifo []string

	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func newPacer(w Writer, period time.Duration) *pacer {
	if period <= 0 {
		period = time.Millisecond
	}

	p := &pacer{w: w, period: libatm.NewValue[time.Duration]()}
	p.period.Store(period)
	return p
}

func (p *pacer) Period() time.Duration {
	return p.period.Load()
}

func (p *pacer) SetPeriod(d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}
	p.period.Store(d)
}

func (p *pacer) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.fifo)
}

func (p *pacer) Enqueue(line string, priority bool) error {
	if priority {
		priorityBypasses.Inc()
		return p.w.Write(line)
	}

	p.mu.Lock()
	p.fifo = append(p.fifo, line)
	p.mu.Unlock()
	return nil
}

func (p *pacer) StartPacing(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	done := p.done
	p.mu.Unlock()

	go p.run(runCtx, done)
	return nil
}

func (p *pacer) Stop(_ context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	cancel := p.cancel
	done := p.done
	p.fifo = nil
	p.running = false
	p.mu.Unlock()

	cancel()
	<-done
	return nil
}

func (p *pacer) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer librun.RecoveryCaller("queue.pacer.run", recover())

	timer := time.NewTimer(p.period.Load())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			p.emitOne()
			timer.Reset(p.period.Load())
		}
	}
}

func (p *pacer) emitOne() {
	p.mu.Lock()
	if len(p.fifo) == 0 {
		p.mu.Unlock()
		return
	}
	line := p.fifo[0]
	p.fifo = p.fifo[1:]
	p.mu.Unlock()

	if err := p.w.Write(line); err == nil {
		linesPaced.Inc()
	}
}
