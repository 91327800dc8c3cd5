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

package reactor

import (
	"context"
	"sync"
	"time"

	"github/sabouaram/goirc/runner/startStop"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// entry is one tracked connection: the live Connection plus the Factory
// that built it, retained so NotifyClosed can spawn an identically-built
// successor.
type entry struct {
	conn Connection
	f    Factory
}

// supervisor is the concrete Supervisor. One mutex guards both the
// connection set and the reactor's own lifecycle transitions, matching
// spec.md §5's "Shared resources" paragraph verbatim: it is never held
// across a Connection's I/O (Start/Shutdown are invoked with the lock
// released).
type supervisor struct {
	onDrained func()
	onSpawned func(id string)

	mu      sync.Mutex
	conns   map[string]entry
	pending map[string]*time.Timer

	lifecycle startStop.StartStop
}

func newSupervisor(opt Options) *supervisor {
	s := &supervisor{
		onDrained: opt.OnDrained,
		onSpawned: opt.OnSpawned,
		conns:     make(map[string]entry),
		pending:   make(map[string]*time.Timer),
	}
	s.lifecycle = startStop.New(idleUntilCancelled, noopStop)

	_ = Register(opt.Registerer)

	return s
}

// idleUntilCancelled is the reactor's own StartFunc: the reactor has no
// I/O of its own to run (each Connection drives its own), so being
// "started" only means a lifecycle is tracking uptime and IsRunning for
// diagnostics while at least one connection is live.
func idleUntilCancelled(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func noopStop(_ context.Context) error { return nil }

func (s *supervisor) Spawn(ctx context.Context, f Factory) (string, error) {
	conn := f()

	id := uuid.NewString()

	s.mu.Lock()
	s.conns[id] = entry{conn: conn, f: f}
	if !s.lifecycle.IsRunning() {
		_ = s.lifecycle.Start(context.Background())
	}
	n := len(s.conns)
	s.mu.Unlock()

	activeConnections.Set(float64(n))

	if err := conn.Start(ctx); err != nil {
		s.mu.Lock()
		delete(s.conns, id)
		empty := len(s.conns) == 0 && len(s.pending) == 0
		n := len(s.conns)
		s.mu.Unlock()
		activeConnections.Set(float64(n))

		if empty {
			s.drain()
		}

		return "", ErrorSpawnFailed.Error(err)
	}

	if s.onSpawned != nil {
		s.onSpawned(id)
	}

	return id, nil
}

func (s *supervisor) NotifyClosed(id string, reconnect bool) {
	s.mu.Lock()
	e, ok := s.conns[id]
	if ok {
		delete(s.conns, id)
	}
	empty := len(s.conns) == 0 && len(s.pending) == 0
	s.mu.Unlock()

	if !ok {
		return
	}

	activeConnections.Set(float64(len(s.snapshotIDs())))

	if reconnect {
		reconnectsTotal.Inc()
		s.scheduleReconnect(id, e.f)
		return
	}

	if empty {
		s.drain()
	}
}

// scheduleReconnect arranges for f to be spawned ReconnectDelay from now
// (spec.md §4.6 step 1), tracking the pending timer so Shutdown can
// cancel it before it fires.
func (s *supervisor) scheduleReconnect(closedID string, f Factory) {
	s.mu.Lock()
	timer := time.AfterFunc(ReconnectDelay, func() {
		s.mu.Lock()
		delete(s.pending, closedID)
		s.mu.Unlock()

		_, _ = s.Spawn(context.Background(), f)
	})
	s.pending[closedID] = timer
	s.mu.Unlock()
}

func (s *supervisor) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	list := make([]Connection, 0, len(s.conns))
	for _, e := range s.conns {
		list = append(list, e.conn)
	}
	for _, t := range s.pending {
		t.Stop()
	}
	s.conns = make(map[string]entry)
	s.pending = make(map[string]*time.Timer)
	s.mu.Unlock()

	activeConnections.Set(0)

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range list {
		c := c
		g.Go(func() error {
			return c.Shutdown(gctx, "")
		})
	}
	err := g.Wait()

	s.drain()

	if err != nil {
		return ErrorShutdown.Error(err)
	}
	return nil
}

func (s *supervisor) Len() int {
	return len(s.snapshotIDs())
}

func (s *supervisor) snapshotIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.conns))
	for id := range s.conns {
		ids = append(ids, id)
	}
	return ids
}

// drain stops the reactor's own lifecycle and notifies onDrained, once
// the managed set (including pending reconnects) is empty.
func (s *supervisor) drain() {
	if s.lifecycle.IsRunning() {
		_ = s.lifecycle.Stop(context.Background())
	}
	if s.onDrained != nil {
		s.onDrained()
	}
}
