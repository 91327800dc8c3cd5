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

// Package frame splits an inbound byte stream into CR/LF/CRLF-terminated
// protocol lines and encodes outbound lines by appending CRLF.
//
// It plays the same role for the connection engine that ioutils/delim plays
// for a single-rune-delimited stream, adapted for the three interchangeable
// line terminators the wire protocol allows and its frame-too-long policy.
package frame

import "io"

// MaxPayload is the largest frame payload this Reader will hand back in one
// ReadFrame call, excluding the terminator. Longer input is truncated to
// MaxPayload and the remainder discarded up to the next terminator.
const MaxPayload = 510

// Framer decodes an inbound byte stream into lines and encodes outbound
// lines for writing to the transport.
type Framer interface {
	// ReadFrame returns the next complete line, with the terminator
	// stripped and invalid UTF-8 replaced with U+FFFD. Empty frames
	// (a bare terminator with no payload) are skipped. It returns io.EOF
	// (or the underlying reader's error) once the stream is exhausted.
	ReadFrame() (string, error)
}

// Encode appends CRLF to s and returns the bytes ready to write to the
// transport. The caller is responsible for keeping s within MaxPayload
// bytes; Encode does not truncate outbound lines.
func Encode(s string) []byte {
	b := make([]byte, 0, len(s)+2)
	b = append(b, s...)
	b = append(b, '\r', '\n')
	return b
}

// NewReader returns a Framer reading frames from r.
func NewReader(r io.Reader) Framer {
	return newReader(r)
}
