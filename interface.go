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

// Package goirc is the thin façade over transport, framing, pacing,
// watchdog, capability negotiation, reconnect and the event/sink
// collaborators: construct one Client from Options, Connect it, drive it
// through the Control API, and Subscribe to whatever events user code
// cares about.
package goirc

import (
	"context"
	"time"

	"github/sabouaram/goirc/auth"
	"github/sabouaram/goirc/config"
	"github/sabouaram/goirc/engine"
	"github/sabouaram/goirc/event"
	"github/sabouaram/goirc/logger"
	"github/sabouaram/goirc/model"
	"github/sabouaram/goirc/transport"

	"github.com/prometheus/client_golang/prometheus"
)

// Client is the Control API (spec.md §4.7): the surface user code drives
// one connection through. A Client manages exactly one logical
// connection, reconnected transparently underneath by its own Reconnect
// Supervisor (spec.md §4.6) until Shutdown is called.
type Client interface {
	// Connect dials the configured server and begins the engine's
	// Connecting → ... → Ready sequence under the Reconnect Supervisor.
	// It returns once the first connection attempt has been launched; it
	// does not block for Ready.
	Connect(ctx context.Context) error

	// Shutdown sends QUIT (with reason if non-empty), tears down the
	// current connection, disables further reconnect, and stops this
	// Client's Supervisor and sinks.
	Shutdown(ctx context.Context, reason string) error

	// State returns the current engine State, or "" before the first
	// Connect.
	State() engine.State

	// Roster returns the live channel/membership snapshot.
	Roster() *model.Roster

	SendRawLine(s string) error
	SendRawLineImmediately(s string) error
	SendMessage(target, text string) error
	SendNotice(target, text string) error
	SendCTCPMessage(target, command, args string) error
	JoinChannel(name string) error
	PartChannel(name, reason string) error
	SetMessageDelay(d time.Duration)

	// Subscribe registers fn for every event of the given Kind on this
	// Client's event bus, returning an unsubscribe function.
	Subscribe(kind event.Kind, fn func(event.Event)) (unsubscribe func())

	// SubscribeAll registers fn for every event regardless of Kind.
	SubscribeAll(fn func(event.Event)) (unsubscribe func())
}

// Options bundles everything Client needs. Config is required; every
// other field has a working default applied by New.
type Options struct {
	Config config.Options

	// Strategy selects the registration-time authentication mechanism.
	// Nil is equivalent to auth.None{}; New also derives ServerPassword
	// automatically from Config.ServerPassword when Strategy is nil and
	// the password is non-empty.
	Strategy auth.Strategy

	// Logger receives the façade's and engine's diagnostic output. Nil
	// gets a default logger.New(context.Background()).
	Logger logger.Logger

	// Registerer, if non-nil, registers every wired package's Prometheus
	// metrics (engine, reactor, sink, queue).
	Registerer prometheus.Registerer

	// ExceptionSink, InputSink, OutputSink, if non-nil, override this
	// Client's default sink.New-backed observer for that collaborator
	// (spec.md §1, §5).
	ExceptionSink engine.Sink
	InputSink     engine.Sink
	OutputSink    engine.Sink

	// TrustDecider overrides standard root-CA TLS verification; see
	// transport.TrustDecider.
	TrustDecider transport.TrustDecider
}

// New validates opt.Config and returns a Client ready for Connect. It
// performs no I/O.
func New(opt Options) (Client, error) {
	return newClient(opt)
}
