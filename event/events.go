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

package event

import "github/sabouaram/goirc/model"

// ServerLine is dispatched for any recognised-but-otherwise-unhandled
// inbound line (spec.md §6: "All others are dispatched as a generic
// ServerLine event").
type ServerLine struct {
	Prefix  model.Actor
	Command string
	Params  []string
	Raw     string
}

func (ServerLine) Kind() Kind { return KindServerLine }

// CapabilitiesAcknowledged is dispatched for each CAP ACK received during
// capability negotiation.
type CapabilitiesAcknowledged struct {
	RequestID    string
	Capabilities []string
}

func (CapabilitiesAcknowledged) Kind() Kind { return KindCapabilitiesAcknowledged }

// CapabilitiesRejected is dispatched for each CAP NAK received during
// capability negotiation, carrying the full rejected request list.
type CapabilitiesRejected struct {
	RequestID    string
	Capabilities []string
}

func (CapabilitiesRejected) Kind() Kind { return KindCapabilitiesRejected }

// ConnectionClosed is dispatched by the Reconnect Supervisor whenever a
// connection's close callback fires.
type ConnectionClosed struct {
	Reconnect bool
	Err       error
}

func (ConnectionClosed) Kind() Kind { return KindConnectionClosed }

// Join is dispatched when a server-side JOIN line is observed.
type Join struct {
	Who        model.Actor
	ChannelRef string
}

func (Join) Kind() Kind          { return KindJoin }
func (e Join) Channel() string   { return e.ChannelRef }
func (e Join) Actor() model.Actor { return e.Who }

// Part is dispatched when a server-side PART line is observed.
type Part struct {
	Who        model.Actor
	ChannelRef string
	Reason     string
}

func (Part) Kind() Kind          { return KindPart }
func (e Part) Channel() string   { return e.ChannelRef }
func (e Part) Actor() model.Actor { return e.Who }

// Kick is dispatched when a server-side KICK line is observed.
type Kick struct {
	By         model.Actor
	ChannelRef string
	Target     string
	Reason     string
}

func (Kick) Kind() Kind        { return KindKick }
func (e Kick) Channel() string { return e.ChannelRef }

// Actor returns the actor that performed the kick, not the evicted target;
// Kick satisfies UserListChange on the kicker's identity, while Target
// names who was removed.
func (e Kick) Actor() model.Actor { return e.By }

// Nick is dispatched when a server-side NICK line is observed.
type Nick struct {
	Who    model.Actor
	NewNick string
}

func (Nick) Kind() Kind { return KindNick }

// Quit is dispatched when a server-side QUIT line is observed.
type Quit struct {
	Who    model.Actor
	Reason string
}

func (Quit) Kind() Kind { return KindQuit }

// Privmsg is dispatched for an inbound PRIVMSG.
type Privmsg struct {
	From   model.Actor
	Target string
	Text   string
}

func (Privmsg) Kind() Kind { return KindPrivmsg }

// Notice is dispatched for an inbound NOTICE.
type Notice struct {
	From   model.Actor
	Target string
	Text   string
}

func (Notice) Kind() Kind { return KindNotice }

// Ping is dispatched for an inbound server PING, after the engine has
// already replied with PONG as a priority line.
type Ping struct {
	Token string
}

func (Ping) Kind() Kind { return KindPing }

// NickCollision is dispatched when numeric 433 is observed in Ready state
// (during registration it is handled silently by retrying with a mutated
// nick; spec.md §4.5).
type NickCollision struct {
	Attempted string
}

func (NickCollision) Kind() Kind { return KindNickCollision }
