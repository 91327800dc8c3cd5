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

package model

import (
	"sort"
	"strings"
	"sync"
)

// Roster tracks the channels the client currently occupies and their
// membership, updated by the connection engine as it observes JOIN, PART,
// KICK, NICK and QUIT lines. The zero value is ready to use. Roster is
// safe for concurrent use: the engine mutates it from its single reactor
// goroutine while user code reads snapshots from any goroutine.
type Roster struct {
	mu       sync.RWMutex
	self     string
	channels map[string]map[string]struct{}
}

func (r *Roster) init() {
	if r.channels == nil {
		r.channels = make(map[string]map[string]struct{})
	}
}

// SetSelf records the client's own nick, used to recognise self-JOIN/-PART/
// -KICK/-QUIT events.
func (r *Roster) SetSelf(nick string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.self = nick
}

// Self returns the client's own nick as last set by SetSelf or RenameSelf.
func (r *Roster) Self() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.self
}

// Join records nick as a member of channel, creating the channel entry if
// this is the client's own nick joining for the first time.
func (r *Roster) Join(channel, nick string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()

	members, ok := r.channels[channel]
	if !ok {
		members = make(map[string]struct{})
		r.channels[channel] = members
	}
	members[nick] = struct{}{}
}

// Part removes nick from channel. If nick is the client's own nick the
// channel is dropped from the roster entirely.
func (r *Roster) Part(channel, nick string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()

	if strings.EqualFold(nick, r.self) {
		delete(r.channels, channel)
		return
	}

	if members, ok := r.channels[channel]; ok {
		delete(members, nick)
	}
}

// Kick removes target from channel, exactly as Part would for that nick.
func (r *Roster) Kick(channel, target string) {
	r.Part(channel, target)
}

// Quit removes nick from every channel it was a member of. If nick is the
// client's own nick, every channel is dropped.
func (r *Roster) Quit(nick string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()

	if strings.EqualFold(nick, r.self) {
		r.channels = make(map[string]map[string]struct{})
		return
	}

	for _, members := range r.channels {
		delete(members, nick)
	}
}

// Nick renames oldNick to newNick across every channel it is a member of,
// and updates Self if oldNick was the client's own nick.
func (r *Roster) Nick(oldNick, newNick string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()

	if strings.EqualFold(oldNick, r.self) {
		r.self = newNick
	}

	for _, members := range r.channels {
		if _, ok := members[oldNick]; ok {
			delete(members, oldNick)
			members[newNick] = struct{}{}
		}
	}
}

// Channel returns a read-only snapshot of channel's current membership, and
// false if the client is not (or no longer) a member of it.
func (r *Roster) Channel(channel string) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.channels[channel]
	if !ok {
		return Channel{}, false
	}

	return Channel{Name: channel, Members: sortedKeys(members)}, true
}

// Channels returns a read-only snapshot of every channel the client
// currently occupies, sorted by name.
func (r *Roster) Channels() []Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Channel, 0, len(r.channels))
	for name, members := range r.channels {
		out = append(out, Channel{Name: name, Members: sortedKeys(members)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
