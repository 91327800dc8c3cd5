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

// Package event defines the typed events the connection engine dispatches
// to the event bus collaborator. The source system's deep class hierarchy
// (per event category) is replaced with tagged variants: one concrete
// struct per event kind, each advertising capability interfaces
// (ChannelEvent, UserListChange) instead of inheriting from a base class.
package event

import "github/sabouaram/goirc/model"

// Kind tags a concrete event's variant.
type Kind string

const (
	KindServerLine                Kind = "ServerLine"
	KindCapabilitiesAcknowledged  Kind = "CapabilitiesAcknowledged"
	KindCapabilitiesRejected      Kind = "CapabilitiesRejected"
	KindConnectionClosed          Kind = "ConnectionClosed"
	KindJoin                      Kind = "Join"
	KindPart                      Kind = "Part"
	KindKick                      Kind = "Kick"
	KindNick                      Kind = "Nick"
	KindQuit                      Kind = "Quit"
	KindPrivmsg                   Kind = "Privmsg"
	KindNotice                    Kind = "Notice"
	KindPing                      Kind = "Ping"
	KindNickCollision             Kind = "NickCollision"
)

// Event is the common capability every dispatched value advertises.
type Event interface {
	Kind() Kind
}

// ChannelEvent is advertised by events scoped to one channel.
type ChannelEvent interface {
	Event
	Channel() string
}

// UserListChange is advertised by events that add or remove a user from a
// channel's membership (Join, Part, Kick).
type UserListChange interface {
	ChannelEvent
	Actor() model.Actor
}
