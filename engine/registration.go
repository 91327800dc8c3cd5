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

package engine

import (
	"strings"

	"github/sabouaram/goirc/event"

	"github.com/google/uuid"
)

// sendRegistrationLines emits CAP LS, the auth strategy's own priority
// lines (e.g. ServerPassword's PASS), NICK and USER — in that order, all
// as priority lines so they bypass the pacer (spec.md §4.5).
func (e *engine) sendRegistrationLines() {
	e.mu.Lock()
	e.capRequestID = uuid.NewString()
	e.capEndSent = false
	e.stratDone = false
	e.capsRequested = nil
	e.mu.Unlock()

	_ = e.pacer.Enqueue("CAP LS", true)

	for _, line := range e.strategy.RegistrationLines() {
		_ = e.pacer.Enqueue(line, true)
	}

	nick := e.intendedNick.Load()
	e.roster.SetSelf(nick)
	_ = e.pacer.Enqueue("NICK "+nick, true)

	user := "user"
	real := nick
	if e.cfg != nil {
		user = e.cfg.User()
		real = e.cfg.RealName()
		if real == "" {
			real = nick
		}
	}
	_ = e.pacer.Enqueue("USER "+user+" 0 * :"+real, true)
}

// handleCap processes one inbound "CAP * {LS|ACK|NAK} ..." line.
func (e *engine) handleCap(raw string, params []string) {
	if len(params) < 2 {
		return
	}

	sub := params[1]
	items := ""
	if len(params) >= 3 {
		items = params[len(params)-1]
	}
	tokens := strings.Fields(items)

	switch sub {
	case "LS":
		wanted := e.strategy.RequestedCapabilities()
		req := intersectCaps(wanted, tokens)

		e.mu.Lock()
		e.capsRequested = req
		e.mu.Unlock()

		if len(req) == 0 {
			e.mu.Lock()
			e.stratDone = true
			e.mu.Unlock()
			e.maybeSendCapEnd()
			return
		}

		_ = e.pacer.Enqueue("CAP REQ :"+strings.Join(req, " "), true)

	case "ACK":
		e.dispatch(event.CapabilitiesAcknowledged{RequestID: e.capRequestIDSnapshot(), Capabilities: tokens})
		e.feedStrategy(raw)

	case "NAK":
		e.dispatch(event.CapabilitiesRejected{RequestID: e.capRequestIDSnapshot(), Capabilities: tokens})
		e.mu.Lock()
		e.stratDone = true
		e.mu.Unlock()
		e.maybeSendCapEnd()
	}
}

// feedStrategy offers raw to the auth strategy (used for CAP ACK and for
// AUTHENTICATE/numeric SASL continuation lines), enqueuing any reply
// lines as priority and marking the strategy exchange done when it
// reports so.
func (e *engine) feedStrategy(raw string) {
	reply, done := e.strategy.HandleLine(raw)
	for _, r := range reply {
		_ = e.pacer.Enqueue(r, true)
	}

	if done {
		e.mu.Lock()
		e.stratDone = true
		e.mu.Unlock()
	}
	e.maybeSendCapEnd()
}

// maybeSendCapEnd sends CAP END exactly once, as soon as the auth
// strategy's exchange (if any) has concluded.
func (e *engine) maybeSendCapEnd() {
	e.mu.Lock()
	if e.capEndSent || !e.stratDone {
		e.mu.Unlock()
		return
	}
	e.capEndSent = true
	e.mu.Unlock()

	e.stopCapTimer()
	_ = e.pacer.Enqueue("CAP END", true)
}

// handle433 reacts to "Nickname is already in use": during registration
// it mutates the intended nick and retries; once Ready it is surfaced as
// a NickCollision event instead (spec.md §4.5).
func (e *engine) handle433(params []string) {
	if e.State() == StateReady {
		attempted := ""
		if len(params) > 1 {
			// 433 <client> <nick> :Nickname is already in use — the
			// attempted nick is the second parameter, not the trailing
			// human-readable reason.
			attempted = params[1]
		} else if len(params) > 0 {
			attempted = params[0]
		}
		e.dispatch(event.NickCollision{Attempted: attempted})
		return
	}

	mutate := DefaultNickMutator
	if e.cfg != nil && e.cfg.NickMutator() != nil {
		mutate = e.cfg.NickMutator()
	}

	next := mutate(e.intendedNick.Load())
	e.intendedNick.Store(next)
	e.roster.SetSelf(next)
	_ = e.pacer.Enqueue("NICK "+next, true)
}

// handle001 reacts to the server's numeric 001 (registration complete):
// it sends CAP END if it has not already been sent, and
// transitions the engine to Ready.
func (e *engine) handle001() {
	e.mu.Lock()
	if !e.capEndSent {
		e.capEndSent = true
		e.mu.Unlock()
		e.stopCapTimer()
		_ = e.pacer.Enqueue("CAP END", true)
	} else {
		e.mu.Unlock()
	}

	e.roster.SetSelf(e.intendedNick.Load())
	e.setState(StateReady)
}

func (e *engine) capRequestIDSnapshot() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.capRequestID
}

// intersectCaps returns the tokens present in both wanted and advertised,
// preserving wanted's order. A nil/empty wanted list (no strategy needs
// anything negotiated) intersects to empty.
func intersectCaps(wanted, advertised []string) []string {
	if len(wanted) == 0 || len(advertised) == 0 {
		return nil
	}

	have := make(map[string]struct{}, len(advertised))
	for _, a := range advertised {
		have[a] = struct{}{}
	}

	out := make([]string, 0, len(wanted))
	for _, w := range wanted {
		if _, ok := have[w]; ok {
			out = append(out, w)
		}
	}
	return out
}
