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

// Package reactor is the process-wide, mutex-guarded set of live
// connections spec.md §4.6 describes: one Supervisor tracks every
// Connection an engine.Engine (or a test double) hands it, schedules a
// reconnect 5 s after an abrupt, reconnect-eligible close, and drains the
// whole set concurrently on Shutdown.
//
// reactor deliberately does not import engine: Connection is the narrow
// subset of engine.Engine's method set it needs, so engine.Engine
// satisfies it without either package depending on the other.
package reactor

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReconnectDelay is the fixed wait spec.md §4.6 mandates between an
// abrupt, reconnect-eligible close and the supervisor spawning a
// successor connection.
const ReconnectDelay = 5 * time.Second

// Connection is the capability the supervisor needs from a managed
// connection: begin it, and tear it down on demand. engine.Engine
// satisfies this directly.
type Connection interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context, reason string) error
}

// Factory builds one Connection. The supervisor calls it once per spawn,
// including every reconnect successor, so a factory closure typically
// closes over the config/transport/strategy a fresh engine.Engine needs
// (a fresh transport.Transport in particular — a closed socket cannot be
// reused).
type Factory func() Connection

// Options configures one Supervisor.
type Options struct {
	// Registerer, if non-nil, registers this supervisor's metrics.
	Registerer prometheus.Registerer

	// OnDrained, if non-nil, is called once the managed set becomes
	// empty after a non-reconnecting close (spec.md §4.6 step 3: "shut
	// the reactor down gracefully"). Default used by this package
	// clears the lazily-created singleton so the next Spawn recreates
	// it, per spec.md §4.6's closing sentence.
	OnDrained func()

	// OnSpawned, if non-nil, is called with the fresh id assigned to
	// every successfully started connection — both the one returned
	// directly by the caller's own Spawn call and every reconnect
	// successor the supervisor spawns on its own. A caller that wants
	// to correlate its own ConnectionClosed handling with the id
	// NotifyClosed expects (spec.md §4.6) should track it here rather
	// than only the id Spawn returns once, since a reconnect successor
	// gets a different id the original caller never sees otherwise.
	OnSpawned func(id string)
}

// Supervisor is the Reconnect Supervisor: a set of live connections
// sharing one reactor lifecycle.
type Supervisor interface {
	// Spawn starts a new connection built by f, registers it under a
	// fresh id, and returns that id. The reactor is (re)started if this
	// is the first live connection.
	Spawn(ctx context.Context, f Factory) (id string, err error)

	// NotifyClosed reports that the connection id has closed. If
	// reconnect is true, a successor built from the same Factory is
	// spawned ReconnectDelay later and the reconnect-attempt metric is
	// incremented; either way id is removed from the set. The caller
	// (typically a connection's ConnectionClosed event handler) is
	// responsible for invoking this — the supervisor does not itself
	// observe connection state.
	NotifyClosed(id string, reconnect bool)

	// Shutdown concurrently shuts down every live connection, cancels
	// any pending scheduled reconnects, and stops the reactor.
	Shutdown(ctx context.Context) error

	// Len returns the number of connections currently tracked.
	Len() int
}

// New returns a standalone Supervisor. Most callers want Default instead;
// New exists for tests and for a process that deliberately runs more than
// one independent connection set.
func New(opt Options) Supervisor {
	return newSupervisor(opt)
}
