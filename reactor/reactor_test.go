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

package reactor_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	. "github/sabouaram/goirc/reactor"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Supervisor", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("tracks a spawned connection and forgets it once closed without reconnect", func() {
		var drained int32
		s := New(Options{OnDrained: func() { atomic.AddInt32(&drained, 1) }})

		conn := &fakeConn{}
		id, err := s.Spawn(ctx, func() Connection { return conn })
		Expect(err).NotTo(HaveOccurred())
		Expect(id).NotTo(BeEmpty())
		Expect(s.Len()).To(Equal(1))
		Expect(conn.starts()).To(Equal(int32(1)))

		s.NotifyClosed(id, false)

		Expect(s.Len()).To(Equal(0))
		Eventually(func() int32 { return atomic.LoadInt32(&drained) }).Should(Equal(int32(1)))
	})

	It("returns a wrapped error and does not retain the connection when Start fails", func() {
		s := New(Options{})

		boom := errors.New("dial refused")
		conn := &fakeConn{startErr: boom}
		id, err := s.Spawn(ctx, func() Connection { return conn })

		Expect(err).To(HaveOccurred())
		Expect(id).To(BeEmpty())
		Expect(s.Len()).To(Equal(0))
	})

	It("spawns a successor from the same factory after the fixed reconnect delay", func() {
		s := New(Options{})

		first := &fakeConn{}
		built := int32(0)
		factory := func() Connection {
			atomic.AddInt32(&built, 1)
			return first
		}

		id, err := s.Spawn(ctx, factory)
		Expect(err).NotTo(HaveOccurred())

		s.NotifyClosed(id, true)

		Expect(s.Len()).To(Equal(0), "the closed connection is removed immediately")
		Eventually(func() int32 { return atomic.LoadInt32(&built) }, 7*time.Second, 50*time.Millisecond).
			Should(Equal(int32(2)), "a successor should be spawned ReconnectDelay after the close")
		Eventually(func() int { return s.Len() }, time.Second).Should(Equal(1))
	})

	It("shuts down every live connection concurrently and drains the set", func() {
		var drained int32
		s := New(Options{OnDrained: func() { atomic.AddInt32(&drained, 1) }})

		a := &fakeConn{}
		b := &fakeConn{}
		_, err := s.Spawn(ctx, func() Connection { return a })
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Spawn(ctx, func() Connection { return b })
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Len()).To(Equal(2))

		Expect(s.Shutdown(ctx)).To(Succeed())

		Expect(s.Len()).To(Equal(0))
		Expect(a.shutdowns()).To(Equal(int32(1)))
		Expect(b.shutdowns()).To(Equal(int32(1)))
		Expect(atomic.LoadInt32(&drained)).To(Equal(int32(1)))
	})

	It("cancels a pending reconnect on Shutdown so no successor is spawned", func() {
		s := New(Options{})

		built := int32(0)
		factory := func() Connection {
			atomic.AddInt32(&built, 1)
			return &fakeConn{}
		}

		id, err := s.Spawn(ctx, factory)
		Expect(err).NotTo(HaveOccurred())

		s.NotifyClosed(id, true)
		Expect(s.Shutdown(ctx)).To(Succeed())

		Consistently(func() int32 { return atomic.LoadInt32(&built) }, 6*time.Second, 500*time.Millisecond).
			Should(Equal(int32(1)))
	})

	It("calls OnSpawned for the initial connection and every reconnect successor", func() {
		var mu sync.Mutex
		var ids []string

		s := New(Options{OnSpawned: func(id string) {
			mu.Lock()
			ids = append(ids, id)
			mu.Unlock()
		}})

		factory := func() Connection { return &fakeConn{} }

		id, err := s.Spawn(ctx, factory)
		Expect(err).NotTo(HaveOccurred())

		s.NotifyClosed(id, true)

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return len(ids)
		}, 7*time.Second, 50*time.Millisecond).Should(Equal(2))

		mu.Lock()
		defer mu.Unlock()
		Expect(ids[0]).To(Equal(id))
		Expect(ids[1]).NotTo(Equal(id))
	})

	It("lazily recreates the default supervisor after it drains", func() {
		first := Default()
		Expect(first).NotTo(BeNil())

		conn := &fakeConn{}
		id, err := first.Spawn(ctx, func() Connection { return conn })
		Expect(err).NotTo(HaveOccurred())

		first.NotifyClosed(id, false)

		Eventually(func() Supervisor { return Default() }).ShouldNot(BeIdenticalTo(first))
	})
})
