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

package frame

import (
	"bufio"
	"io"
	"strings"
)

// rdr accumulates bytes from the wrapped reader and splits them into
// frames. A single bufio.Reader is reused across ReadFrame calls so
// partial frames spanning multiple socket reads are handled transparently.
type rdr struct {
	b *bufio.Reader
}

func newReader(r io.Reader) *rdr {
	return &rdr{b: bufio.NewReaderSize(r, 4096)}
}

// ReadFrame implements Framer.
func (d *rdr) ReadFrame() (string, error) {
	for {
		payload, _, err := d.readOne()

		if len(payload) == 0 {
			// Empty frame: a bare terminator with no payload, dropped.
			if err != nil {
				return "", err
			}
			continue
		}

		return strings.ToValidUTF8(string(payload), "�"), err
	}
}

// readOne reads a single frame's payload up to MaxPayload bytes and
// consumes its terminator (CR, LF, or CRLF). overflow is true if the
// frame's payload was truncated to MaxPayload bytes.
func (d *rdr) readOne() (payload []byte, overflow bool, err error) {
	for {
		c, e := d.b.ReadByte()
		if e != nil {
			return payload, overflow, e
		}

		if c == '\n' {
			return payload, overflow, nil
		}

		if c == '\r' {
			// A CR immediately followed by LF is a single terminator.
			if next, e2 := d.b.Peek(1); e2 == nil && len(next) == 1 && next[0] == '\n' {
				_, _ = d.b.ReadByte()
			}
			return payload, overflow, nil
		}

		if len(payload) >= MaxPayload {
			overflow = true
			continue
		}

		payload = append(payload, c)
	}
}
