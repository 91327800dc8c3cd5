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

// Package ctcp implements the low-level quoting used to embed CTCP
// (Client-To-Client Protocol) requests inside PRIVMSG/NOTICE payloads.
package ctcp

// Delim is the byte that marks the start and end of a CTCP payload inside
// a PRIVMSG/NOTICE parameter.
const Delim = '\x01'

const (
	quote    = '\x10'
	quoteNUL = '0'
	quoteNL  = 'n'
	quoteCR  = 'r'
)

// Escape applies CTCP low-level quoting to payload: NUL, LF and CR are
// replaced with a two-byte quote sequence, a literal quote byte is
// doubled, and any embedded Delim byte is dropped (it would otherwise be
// mistaken for the end of the CTCP payload).
func Escape(payload string) string {
	out := make([]byte, 0, len(payload))

	for i := 0; i < len(payload); i++ {
		switch c := payload[i]; c {
		case 0x00:
			out = append(out, quote, quoteNUL)
		case '\n':
			out = append(out, quote, quoteNL)
		case '\r':
			out = append(out, quote, quoteCR)
		case quote:
			out = append(out, quote, quote)
		case Delim:
			// dropped
		default:
			out = append(out, c)
		}
	}

	return string(out)
}

// Unescape reverses Escape. An unrecognised escape sequence drops the
// quote byte and keeps the following byte literal.
func Unescape(payload string) string {
	out := make([]byte, 0, len(payload))

	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if c != quote || i+1 >= len(payload) {
			out = append(out, c)
			continue
		}

		switch payload[i+1] {
		case quoteNUL:
			out = append(out, 0x00)
		case quoteNL:
			out = append(out, '\n')
		case quoteCR:
			out = append(out, '\r')
		case quote:
			out = append(out, quote)
		default:
			out = append(out, payload[i+1])
		}
		i++
	}

	return string(out)
}

// Wrap returns payload wrapped as a full CTCP message: a leading and
// trailing Delim byte around the escaped payload.
func Wrap(payload string) string {
	return string(Delim) + Escape(payload) + string(Delim)
}

// Unwrap strips the leading and trailing Delim bytes from s (if present)
// and unescapes the interior. ok is false if s is not CTCP-delimited.
func Unwrap(s string) (payload string, ok bool) {
	if len(s) < 2 || s[0] != Delim {
		return "", false
	}

	end := len(s)
	if s[end-1] == Delim {
		end--
	}

	return Unescape(s[1:end]), true
}

// Action formats the payload of a CTCP ACTION request, as sent for a
// "/me does something" style message.
func Action(text string) string {
	return Wrap("ACTION " + text)
}

// Version formats the payload of a CTCP VERSION request.
func Version() string {
	return Wrap("VERSION")
}
