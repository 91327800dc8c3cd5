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

// Package model holds the in-memory value types the connection engine keeps
// synchronized with server state: the actor a protocol line is prefixed
// with, a channel's membership, and the Roster aggregating both across the
// lifetime of one connection.
package model

import "strings"

// Actor identifies the source of an inbound line, parsed out of the
// optional ":nick!user@host" prefix.
type Actor struct {
	Nick string
	User string
	Host string
}

// String renders the actor back into prefix form, without the leading ':'.
func (a Actor) String() string {
	if a.Nick == "" {
		return a.Host
	}
	if a.User == "" && a.Host == "" {
		return a.Nick
	}
	return a.Nick + "!" + a.User + "@" + a.Host
}

// ParseActor parses a raw prefix (the text following ':' and preceding the
// next space in a protocol line) into an Actor. A bare server hostname with
// no '!'/'@' is returned as an Actor with only Host set.
func ParseActor(prefix string) Actor {
	bang := strings.IndexByte(prefix, '!')
	at := strings.IndexByte(prefix, '@')

	if bang < 0 || at < 0 || at < bang {
		return Actor{Host: prefix}
	}

	return Actor{
		Nick: prefix[:bang],
		User: prefix[bang+1 : at],
		Host: prefix[at+1:],
	}
}

// User is a channel-independent record of a nick the client has observed.
type User struct {
	Nick string
}

// Channel is a read-only snapshot of one joined channel's membership at the
// moment it was taken; mutating it has no effect on the Roster it came from.
type Channel struct {
	Name    string
	Members []string
}

// HasMember reports whether nick is a member of the channel snapshot.
func (c Channel) HasMember(nick string) bool {
	for _, m := range c.Members {
		if strings.EqualFold(m, nick) {
			return true
		}
	}
	return false
}
