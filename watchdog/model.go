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

package watchdog

import (
	"context"
	"sync/atomic"
	"time"

	"github/sabouaram/goirc/runner/ticker"
)

// wd polls elapsed idle time on two independent tickers rather than
// arming a single timer per idle type, matching SPEC_FULL.md §7's
// grounding on runner/ticker (periodic emission) for this component.
// Each idle type's "fired" flag latches until the corresponding Note
// call clears it, implementing the fire-once-per-episode rule.
type wd struct {
	readerIdle time.Duration
	allIdle    time.Duration

	lastInbound int64 // unix nano, atomic
	lastTraffic int64 // unix nano, atomic

	readerFired int32 // atomic bool
	allFired    int32 // atomic bool

	onReaderIdle func()
	onAllIdle    func()

	readerTicker ticker.Ticker
	allTicker    ticker.Ticker
}

func newWatchdog(readerIdle, allIdle, poll time.Duration, onReaderIdle, onAllIdle func()) *wd {
	w := &wd{
		readerIdle:   readerIdle,
		allIdle:      allIdle,
		onReaderIdle: onReaderIdle,
		onAllIdle:    onAllIdle,
	}

	now := nowNano()
	atomic.StoreInt64(&w.lastInbound, now)
	atomic.StoreInt64(&w.lastTraffic, now)

	w.readerTicker = ticker.New(poll, func(ctx context.Context, _ *time.Ticker) error {
		w.checkReaderIdle()
		return nil
	})
	w.allTicker = ticker.New(poll, func(ctx context.Context, _ *time.Ticker) error {
		w.checkAllIdle()
		return nil
	})

	return w
}

func nowNano() int64 { return time.Now().UnixNano() }

func (w *wd) Start(ctx context.Context) error {
	if err := w.readerTicker.Start(ctx); err != nil {
		return err
	}
	return w.allTicker.Start(ctx)
}

func (w *wd) Stop(ctx context.Context) error {
	_ = w.readerTicker.Stop(ctx)
	return w.allTicker.Stop(ctx)
}

func (w *wd) NoteInbound() {
	now := nowNano()
	atomic.StoreInt64(&w.lastInbound, now)
	atomic.StoreInt64(&w.lastTraffic, now)
	atomic.StoreInt32(&w.readerFired, 0)
	atomic.StoreInt32(&w.allFired, 0)
}

func (w *wd) NoteOutbound() {
	atomic.StoreInt64(&w.lastTraffic, nowNano())
	atomic.StoreInt32(&w.allFired, 0)
}

func (w *wd) checkReaderIdle() {
	last := atomic.LoadInt64(&w.lastInbound)
	elapsed := time.Duration(nowNano() - last)

	if elapsed < w.readerIdle {
		return
	}
	if atomic.CompareAndSwapInt32(&w.readerFired, 0, 1) && w.onReaderIdle != nil {
		w.onReaderIdle()
	}
}

func (w *wd) checkAllIdle() {
	last := atomic.LoadInt64(&w.lastTraffic)
	elapsed := time.Duration(nowNano() - last)

	if elapsed < w.allIdle {
		return
	}
	if atomic.CompareAndSwapInt32(&w.allFired, 0, 1) && w.onAllIdle != nil {
		w.onAllIdle()
	}
}
