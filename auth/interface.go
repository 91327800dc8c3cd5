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

// Package auth provides pluggable registration-time authentication
// strategies, mirroring the enum-plus-parse shape of certificates/auth:
// one capability-scoped type per authentication mechanism, selected by
// config.Options rather than by subclassing.
package auth

// Strategy is one way of authenticating to a server during the engine's
// Registering/CapNegotiating states. Every method is safe to call from the
// engine's single negotiation goroutine only; Strategy implementations are
// not expected to be reused across connections.
type Strategy interface {
	// RegistrationLines returns the priority lines to send as soon as the
	// engine enters Registering, before NICK/USER. ServerPassword returns
	// its PASS line here; strategies that authenticate through CAP
	// negotiation instead (SASLPlain) return nil.
	RegistrationLines() []string

	// RequestedCapabilities returns the CAP tokens this strategy needs
	// negotiated, e.g. "sasl". Returns nil for strategies that need none.
	RequestedCapabilities() []string

	// HandleLine offers one raw inbound server line to the strategy
	// during CAP negotiation. It returns any lines the strategy wants
	// sent in response and whether the strategy's exchange is now
	// complete. Lines that are not relevant to this strategy are
	// ignored (reply is nil, done is false).
	HandleLine(line string) (reply []string, done bool)
}

// None is the no-op Strategy used when config.Options carries no
// credentials at all: it sends nothing and is immediately done.
type None struct{}

func (None) RegistrationLines() []string                      { return nil }
func (None) RequestedCapabilities() []string                  { return nil }
func (None) HandleLine(string) (reply []string, done bool)    { return nil, true }
