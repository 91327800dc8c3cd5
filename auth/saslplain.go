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

package auth

import (
	"encoding/base64"
	"strings"
)

// SASLPlain authenticates via the SASL PLAIN mechanism (RFC 4616) over the
// IRCv3 CAP framework: request the "sasl" capability, wait for the server's
// ACK, send AUTHENTICATE PLAIN, wait for the continuation prompt
// ("AUTHENTICATE +"), then send the base64 authzid\0authcid\0passwd blob.
// Numeric 903 ends the exchange successfully, 904/905/906/907 end it
// unsuccessfully — either way HandleLine reports done so the engine can
// proceed to CAP END.
type SASLPlain struct {
	Identity string // authzid; empty unless impersonating another account
	Username string
	Password string
}

func (SASLPlain) RegistrationLines() []string { return nil }

func (SASLPlain) RequestedCapabilities() []string { return []string{"sasl"} }

func (s SASLPlain) HandleLine(line string) (reply []string, done bool) {
	switch {
	case strings.Contains(line, "CAP") && strings.Contains(line, "ACK") && strings.Contains(line, "sasl"):
		return []string{"AUTHENTICATE PLAIN"}, false

	case strings.Contains(line, "CAP") && strings.Contains(line, "NAK") && strings.Contains(line, "sasl"):
		return nil, true

	case strings.HasPrefix(line, "AUTHENTICATE +"):
		return []string{"AUTHENTICATE " + s.payload()}, false

	case hasNumeric(line, "903"):
		return nil, true

	case hasNumeric(line, "904"), hasNumeric(line, "905"), hasNumeric(line, "906"), hasNumeric(line, "907"):
		return nil, true

	default:
		return nil, false
	}
}

func (s SASLPlain) payload() string {
	raw := s.Identity + "\x00" + s.Username + "\x00" + s.Password
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// hasNumeric reports whether line's IRC numeric reply code field equals
// code, tolerating an optional leading ":prefix " as spec.md §7's wire
// lines show.
func hasNumeric(line, code string) bool {
	fields := strings.Fields(line)
	for i, f := range fields {
		if strings.HasPrefix(f, ":") && i == 0 {
			continue
		}
		return f == code
	}
	return false
}
