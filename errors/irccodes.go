/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// The six error kinds the connection engine distinguishes, registered as
// CodeError values under MinPkgCore. Of these, only WriteError is raised
// in this module (by the engine); transport, auth, reactor and sink
// register their own per-package codes.
const (
	// ConnectionError: TCP/TLS establishment failed. Surfaced to the
	// exception sink; the reactor decides whether to retry.
	ConnectionError CodeError = iota + MinPkgCore
	// ProtocolError: an inbound line could not be parsed or violated
	// CAP-state expectations. Surfaced as an event; the connection
	// continues.
	ProtocolError
	// WriteError: a socket write failed. Treated as an abrupt close;
	// reconnect is scheduled.
	WriteError
	// IdleTimeout: the reader-idle watchdog fired. Treated as an abrupt
	// close; reconnect is scheduled.
	IdleTimeout
	// UserError: a Control API call was made in an invalid state (e.g.
	// sending before Ready). Not a failure: the call is queued silently.
	UserError
	// Fatal: unrecoverable TLS material error at construction time.
	// Surfaced to the exception sink; reconnect is disabled.
	Fatal
)

func init() {
	RegisterIdFctMessage(ConnectionError, getIrcMessage)
}

func getIrcMessage(code CodeError) (message string) {
	switch code {
	case ConnectionError:
		return "connection establishment failed"
	case ProtocolError:
		return "inbound line could not be parsed"
	case WriteError:
		return "socket write failed"
	case IdleTimeout:
		return "no traffic received within the idle window"
	case UserError:
		return "api call made in an invalid state"
	case Fatal:
		return "unrecoverable configuration error"
	}

	return ""
}
