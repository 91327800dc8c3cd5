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

package ticker

import (
	"context"
	"sync"
	"time"

	errpool "github/sabouaram/goirc/errors/pool"
	libqrun "github/sabouaram/goirc/runner"
)

type tck struct {
	period time.Duration
	fct    Func

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	started time.Time

	errs errpool.Pool
}

func (t *tck) pool() errpool.Pool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.errs == nil {
		t.errs = errpool.New()
	}

	return t.errs
}

func (t *tck) Start(ctx context.Context) error {
	_ = t.haltCurrent(ctx)
	t.pool().Clear()

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel = cancel
	t.done = done
	t.running = true
	t.started = time.Now()
	t.mu.Unlock()

	go t.run(cctx, done)

	return nil
}

func (t *tck) Stop(ctx context.Context) error {
	return t.haltCurrent(ctx)
}

func (t *tck) Restart(ctx context.Context) error {
	_ = t.Stop(ctx)
	return t.Start(ctx)
}

func (t *tck) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.running
}

func (t *tck) Uptime() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return 0
	}

	return time.Since(t.started)
}

func (t *tck) ErrorsLast() error {
	return t.pool().Last()
}

func (t *tck) ErrorsList() []error {
	return t.pool().Slice()
}

// haltCurrent cancels the run goroutine, if any, and waits for it to exit.
// It is a no-op if nothing is running, and safe to call concurrently: only
// the caller that observes running == true performs the actual teardown.
func (t *tck) haltCurrent(_ context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}

	cancel := t.cancel
	done := t.done

	t.running = false
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if done != nil {
		<-done
	}

	return nil
}

func (t *tck) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		libqrun.RecoveryCaller("ticker.run", recover())
	}()
	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	tm := time.NewTicker(t.period)
	defer tm.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tm.C:
			if t.fct != nil {
				t.pool().Add(t.fct(ctx, tm))
			}
		}
	}
}
