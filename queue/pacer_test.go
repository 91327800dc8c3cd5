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

package queue_test

import (
	"context"
	"sync"
	"time"

	. "github/sabouaram/goirc/queue"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingWriter struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingWriter) Write(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return nil
}

func (r *recordingWriter) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

var _ = Describe("Pacer", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		w      *recordingWriter
	)

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		w = &recordingWriter{}
	})

	AfterEach(func() {
		cancel()
	})

	Context("priority lines", func() {
		It("bypasses the FIFO and writes immediately without pacing started", func() {
			p := New(w, time.Hour)
			Expect(p.Enqueue("PONG :tok", true)).To(Succeed())
			Expect(w.snapshot()).To(Equal([]string{"PONG :tok"}))
			Expect(p.Len()).To(Equal(0))
		})
	})

	Context("non-priority lines", func() {
		It("queues them until the pacer releases one per period", func() {
			p := New(w, 50*time.Millisecond)
			Expect(p.Enqueue("PRIVMSG #go :a", false)).To(Succeed())
			Expect(p.Enqueue("PRIVMSG #go :b", false)).To(Succeed())
			Expect(p.Len()).To(Equal(2))

			Expect(p.StartPacing(ctx)).To(Succeed())
			defer p.Stop(ctx)

			Eventually(func() []string { return w.snapshot() }, time.Second).Should(Equal([]string{"PRIVMSG #go :a", "PRIVMSG #go :b"}))
		})
	})

	Context("Stop", func() {
		It("drops queued non-priority lines", func() {
			p := New(w, time.Hour)
			Expect(p.Enqueue("PRIVMSG #go :a", false)).To(Succeed())
			Expect(p.StartPacing(ctx)).To(Succeed())
			Expect(p.Stop(ctx)).To(Succeed())
			Expect(p.Len()).To(Equal(0))
		})
	})

	Context("SetPeriod", func() {
		It("changes the period read by subsequent ticks", func() {
			p := New(w, time.Hour)
			Expect(p.Period()).To(Equal(time.Hour))
			p.SetPeriod(10 * time.Millisecond)
			Expect(p.Period()).To(Equal(10 * time.Millisecond))
		})
	})
})
