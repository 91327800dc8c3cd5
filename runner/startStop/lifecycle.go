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

package startStop

import (
	"context"
	"errors"
	"time"

	libqrun "github/sabouaram/goirc/runner"
)

func (r *runner) Start(ctx context.Context) error {
	_ = r.haltCurrent(ctx)
	r.clearErrors()

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.mu.Lock()
	r.cancel = cancel
	r.done = done
	r.running = true
	r.started = time.Now()
	r.mu.Unlock()

	go r.run(cctx, done)

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	_ = r.haltCurrent(ctx)
	return nil
}

func (r *runner) Restart(ctx context.Context) error {
	_ = r.Stop(ctx)
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running
}

func (r *runner) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return 0
	}

	return time.Since(r.started)
}

// haltCurrent stops whatever run is active, invoking the stop function and
// waiting for the run goroutine to fully exit. It is a no-op if nothing is
// running, and safe to call concurrently: only the caller that observes
// running == true performs the actual teardown.
func (r *runner) haltCurrent(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}

	cancel := r.cancel
	done := r.done

	r.running = false
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	err := r.callStop(ctx)

	if cancel != nil {
		cancel()
	}

	if done != nil {
		<-done
	}

	return err
}

func (r *runner) callStop(ctx context.Context) (err error) {
	defer func() {
		libqrun.RecoveryCaller("startStop.stop", recover())
	}()

	if r.fStop == nil {
		err = errors.New("invalid stop function")
	} else {
		err = r.fStop(ctx)
	}

	r.addError(err)

	return err
}

func (r *runner) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		libqrun.RecoveryCaller("startStop.start", recover())
	}()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	if r.fStart == nil {
		r.addError(errors.New("invalid start function"))
		return
	}

	r.addError(r.fStart(ctx))
}
