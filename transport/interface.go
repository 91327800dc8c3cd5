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

// Package transport owns the one TCP socket a Connection is built from:
// dialing, an optional local bind address, an optional TLS upgrade with a
// caller-supplied trust decision and client certificate, and the raw
// byte-level read/write primitives the framer and pacer sit on top of.
package transport

import (
	"context"
	"crypto/x509"
	"io"
)

// TrustDecider receives the server's certificate chain during the TLS
// handshake and decides whether to trust it, in place of (or in addition
// to) standard root-CA verification. Returning a non-nil error fails the
// handshake.
type TrustDecider func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error

// Options configures one Transport. SSLKeyCertChain/SSLKey are PEM file
// paths; SSLKeyPassword decrypts an encrypted private key if given.
type Options struct {
	ServerAddress string
	BindAddress   string

	SSL               bool
	TrustDecider      TrustDecider
	SSLKeyCertChain   string
	SSLKey            string
	SSLKeyPassword    string
}

// Transport is the byte-level capability the Framer and Pacer depend on.
type Transport interface {
	// Connect dials ServerAddress, optionally binding to BindAddress,
	// and performs the TLS handshake if Options.SSL is set. Failure here
	// is a ConnectionError (spec.md §4.1).
	Connect(ctx context.Context) error

	// Write writes exactly the bytes given; adding the CRLF line
	// terminator is the caller's responsibility. Satisfies queue.Writer
	// when wrapped by the engine to add CRLF via frame.Encode.
	Write(b []byte) error

	// Reader returns the inbound byte stream, valid after Connect
	// succeeds until Close.
	Reader() io.Reader

	// Close closes the underlying connection. Safe to call more than
	// once.
	Close() error

	// RemoteAddr returns the remote address of the live connection, or
	// "" before Connect or after Close.
	RemoteAddr() string
}

// New returns a Transport configured by opt. No I/O happens until
// Connect is called.
func New(opt Options) Transport {
	return &tcpTransport{opt: opt}
}
