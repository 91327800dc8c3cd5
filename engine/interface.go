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

// Package engine drives one connection's state machine: TLS handshake,
// protocol registration, capability negotiation, steady-state line
// dispatch, and graceful or abrupt teardown. It is the 40% of the system
// spec.md calls out as the hard engineering; every other package in this
// module exists to give the engine somewhere to put a concern.
package engine

import (
	"context"
	"time"

	"github/sabouaram/goirc/auth"
	"github/sabouaram/goirc/config"
	"github/sabouaram/goirc/event"
	"github/sabouaram/goirc/logger"
	"github/sabouaram/goirc/model"
	"github/sabouaram/goirc/transport"

	"github.com/prometheus/client_golang/prometheus"
)

// State is one of the connection engine's monotonically-advancing phases
// (spec.md §4.5), except Ready, which may drop straight to Closed on
// abrupt loss.
type State string

const (
	StateConnecting     State = "Connecting"
	StateTlsHandshaking State = "TlsHandshaking"
	StateRegistering    State = "Registering"
	StateCapNegotiating State = "CapNegotiating"
	StateReady          State = "Ready"
	StateShuttingDown   State = "ShuttingDown"
	StateClosed         State = "Closed"
)

// EventBus is the narrow capability the engine needs from the pub/sub
// collaborator spec.md §1 treats as external: accept one typed event.
type EventBus interface {
	Dispatch(e event.Event)
}

// Sink is the narrow capability the engine needs from the exception,
// input, and output observer collaborators spec.md §1 treats as external:
// a non-blocking offer of one value. A nil Sink is legal; offers to it
// are dropped.
type Sink interface {
	Offer(value interface{})
}

// NickMutator rewrites a nick that collided with one already registered.
// It is an alias of config.NickMutator so config.Options and engine.New
// callers share one type without either package importing the other's
// concrete implementation.
type NickMutator = config.NickMutator

// DefaultNickMutator appends a single trailing underscore, the
// deterministic remediation SPEC_FULL.md §8 fixes as the default (the
// policy remains pluggable through config.Options.NickMutator).
func DefaultNickMutator(nick string) string {
	return nick + "_"
}

// Engine drives one Connection (spec.md §3) end to end. A caller obtains
// one from New, calls Start to begin connecting, and Shutdown to tear it
// down; the reactor package, not this one, owns deciding whether
// to construct a successor after an abrupt close.
type Engine interface {
	// Start begins dialing, performs TLS/registration/CAP negotiation,
	// and reads inbound lines until ctx is cancelled, Shutdown is called,
	// or the connection is lost. It returns once the background goroutine
	// has been launched; it does not block for the connection's lifetime.
	Start(ctx context.Context) error

	// Shutdown sends QUIT (with reason if non-empty) as a priority line,
	// transitions to ShuttingDown, and closes the socket, disabling
	// reconnect (spec.md §4.7).
	Shutdown(ctx context.Context, reason string) error

	// State returns the engine's current State.
	State() State

	// Roster returns the live channel/membership snapshot the engine
	// keeps synchronized with server state.
	Roster() *model.Roster

	// SendRawLine enqueues s as a non-priority line. Per spec.md §4.7 and
	// §7's UserError kind, a call made before Ready is queued silently,
	// never rejected.
	SendRawLine(s string) error

	// SendRawLineImmediately enqueues s as a priority line, bypassing the
	// pacer.
	SendRawLineImmediately(s string) error

	// SendMessage formats and enqueues a PRIVMSG to target.
	SendMessage(target, text string) error

	// SendNotice formats and enqueues a NOTICE to target.
	SendNotice(target, text string) error

	// SendCTCPMessage formats a CTCP-wrapped PRIVMSG: command plus an
	// optional argument string, escaped and delimited per spec.md §6.
	SendCTCPMessage(target, command, args string) error

	// JoinChannel enqueues a JOIN for name.
	JoinChannel(name string) error

	// PartChannel enqueues a PART for name, with reason if non-empty.
	PartChannel(name, reason string) error

	// SetMessageDelay re-tunes the outbound pacer's period, preserving
	// the residual delay already in flight (SPEC_FULL.md §8).
	SetMessageDelay(d time.Duration)
}

// Options bundles the collaborators one Engine is built from. Bus, and
// the three sinks, may be nil; Strategy nil is equivalent to auth.None{}.
type Options struct {
	Config     config.Config
	Transport  transport.Transport
	Strategy   auth.Strategy
	Bus        EventBus
	Exception  Sink
	Input      Sink
	Output     Sink
	Logger     logger.Logger
	Registerer prometheus.Registerer
}

// New returns an Engine for one connection, wiring opt's collaborators
// together. No I/O happens until Start is called.
func New(opt Options) Engine {
	return newEngine(opt)
}
