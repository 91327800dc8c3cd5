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

package config

import "time"

// cfg is the unexported, immutable Config implementation Builder.Build
// returns. Every accessor is a plain field read; there is no setter.
type cfg struct {
	o Options
}

func (c *cfg) ServerAddress() string   { return c.o.ServerAddress }
func (c *cfg) BindAddress() string     { return c.o.BindAddress }
func (c *cfg) SSL() bool               { return c.o.SSL }
func (c *cfg) SSLKeyCertChain() string { return c.o.SSLKeyCertChain }
func (c *cfg) SSLKey() string          { return c.o.SSLKey }
func (c *cfg) SSLKeyPassword() string  { return c.o.SSLKeyPassword }
func (c *cfg) Nick() string            { return c.o.Nick }
func (c *cfg) User() string            { return c.o.User }
func (c *cfg) RealName() string        { return c.o.RealName }
func (c *cfg) ServerPassword() string  { return c.o.ServerPassword }
func (c *cfg) Name() string            { return c.o.Name }
func (c *cfg) NickMutator() NickMutator {
	return c.o.NickMutator
}

func (c *cfg) MessageDelay() time.Duration {
	return time.Duration(c.o.MessageDelayMs) * time.Millisecond
}
