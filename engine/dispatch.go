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
	"github/sabouaram/goirc/model"
)

// handleLine dispatches one inbound protocol line, recognising the
// commands spec.md §6 names and dispatching everything else as a generic
// ServerLine event.
func (e *engine) handleLine(raw string) {
	prefix, cmd, params := parseLine(raw)
	actor := model.ParseActor(prefix)

	switch {
	case cmd == "PING":
		token := ""
		if len(params) > 0 {
			token = params[len(params)-1]
		}
		_ = e.pacer.Enqueue("PONG :"+token, true)
		e.dispatch(event.Ping{Token: token})

	case cmd == "CAP":
		e.handleCap(raw, params)

	case cmd == "AUTHENTICATE" || isSASLNumeric(cmd):
		e.mu.Lock()
		done := e.stratDone
		e.mu.Unlock()
		if !done {
			e.feedStrategy(raw)
		}

	case cmd == "433":
		e.handle433(params)

	case cmd == "001":
		e.handle001()

	case cmd == "JOIN":
		e.handleJoin(actor, params)

	case cmd == "PART":
		e.handlePart(actor, params)

	case cmd == "KICK":
		e.handleKick(actor, params)

	case cmd == "NICK":
		e.handleNick(actor, params)

	case cmd == "QUIT":
		e.handleQuit(actor, params)

	case cmd == "PRIVMSG":
		e.handlePrivmsg(actor, params)

	case cmd == "NOTICE":
		e.handleNotice(actor, params)

	default:
		e.dispatch(event.ServerLine{Prefix: actor, Command: cmd, Params: params, Raw: raw})
	}
}

func (e *engine) handleJoin(actor model.Actor, params []string) {
	if len(params) == 0 {
		return
	}
	channel := params[0]
	e.roster.Join(channel, actor.Nick)
	e.dispatch(event.Join{Who: actor, ChannelRef: channel})
}

func (e *engine) handlePart(actor model.Actor, params []string) {
	if len(params) == 0 {
		return
	}
	channel := params[0]
	reason := ""
	if len(params) > 1 {
		reason = params[len(params)-1]
	}
	e.roster.Part(channel, actor.Nick)
	e.dispatch(event.Part{Who: actor, ChannelRef: channel, Reason: reason})
}

func (e *engine) handleKick(actor model.Actor, params []string) {
	if len(params) < 2 {
		return
	}
	channel := params[0]
	target := params[1]
	reason := ""
	if len(params) > 2 {
		reason = params[len(params)-1]
	}
	e.roster.Kick(channel, target)
	e.dispatch(event.Kick{By: actor, ChannelRef: channel, Target: target, Reason: reason})
}

func (e *engine) handleNick(actor model.Actor, params []string) {
	if len(params) == 0 {
		return
	}
	newNick := params[0]
	e.roster.Nick(actor.Nick, newNick)
	if strings.EqualFold(actor.Nick, e.intendedNick.Load()) {
		e.intendedNick.Store(newNick)
	}
	e.dispatch(event.Nick{Who: actor, NewNick: newNick})
}

func (e *engine) handleQuit(actor model.Actor, params []string) {
	reason := ""
	if len(params) > 0 {
		reason = params[len(params)-1]
	}
	e.roster.Quit(actor.Nick)
	e.dispatch(event.Quit{Who: actor, Reason: reason})
}

func (e *engine) handlePrivmsg(actor model.Actor, params []string) {
	if len(params) == 0 {
		return
	}
	target := params[0]
	text := ""
	if len(params) > 1 {
		text = params[len(params)-1]
	}
	e.dispatch(event.Privmsg{From: actor, Target: target, Text: text})
}

func (e *engine) handleNotice(actor model.Actor, params []string) {
	if len(params) == 0 {
		return
	}
	target := params[0]
	text := ""
	if len(params) > 1 {
		text = params[len(params)-1]
	}
	e.dispatch(event.Notice{From: actor, Target: target, Text: text})
}

// isSASLNumeric reports whether cmd is one of the numerics the SASL
// PLAIN exchange reacts to (spec.md §5 supplement): 903 success,
// 904-907 failure.
func isSASLNumeric(cmd string) bool {
	switch cmd {
	case "903", "904", "905", "906", "907":
		return true
	}
	return false
}

// parseLine splits raw into its optional ":prefix", command, and
// space-separated parameters, the last of which may be a ":"-prefixed
// trailing parameter allowed to contain embedded spaces (spec.md §6).
// Tokenisation beyond this point is deliberately out of scope; this is
// the minimum the engine needs to recognise the commands it reacts to.
func parseLine(raw string) (prefix, command string, params []string) {
	s := raw

	if strings.HasPrefix(s, ":") {
		sp := strings.IndexByte(s, ' ')
		if sp < 0 {
			return s[1:], "", nil
		}
		prefix = s[1:sp]
		s = s[sp+1:]
	}

	trailing := ""
	hasTrailing := false
	if idx := strings.Index(s, " :"); idx >= 0 {
		trailing = s[idx+2:]
		s = s[:idx]
		hasTrailing = true
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		if hasTrailing {
			return prefix, "", []string{trailing}
		}
		return prefix, "", nil
	}

	command = strings.ToUpper(fields[0])
	params = fields[1:]
	if hasTrailing {
		params = append(params, trailing)
	}

	return prefix, command, params
}
