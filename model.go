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

package goirc

import (
	"context"
	"sync"
	"time"

	"github/sabouaram/goirc/auth"
	"github/sabouaram/goirc/config"
	"github/sabouaram/goirc/engine"
	"github/sabouaram/goirc/event"
	"github/sabouaram/goirc/logger"
	"github/sabouaram/goirc/model"
	"github/sabouaram/goirc/queue"
	"github/sabouaram/goirc/reactor"
	"github/sabouaram/goirc/sink"
	"github/sabouaram/goirc/transport"
)

// client is the concrete Client. It owns one Factory closure that builds
// a fresh engine.Engine per connection attempt (initial and every
// reconnect successor) and a dedicated reactor.Supervisor that schedules
// those successors per spec.md §4.6.
type client struct {
	cfg config.Config

	opt Options
	bus *event.Bus
	sup reactor.Supervisor

	exSink, inSink, outSink engine.Sink

	mu  sync.Mutex
	cur engine.Engine
	id  string
}

func newClient(opt Options) (*client, error) {
	cfg, err := config.NewBuilder(opt.Config).Build()
	if err != nil {
		return nil, err
	}

	if opt.Logger == nil {
		opt.Logger = logger.New(context.Background())
	}

	c := &client{
		cfg: cfg,
		opt: opt,
		bus: event.NewBus(),
	}

	c.exSink = sinkOrDefault(opt.ExceptionSink)
	c.inSink = sinkOrDefault(opt.InputSink)
	c.outSink = sinkOrDefault(opt.OutputSink)

	c.bus.Subscribe(event.KindConnectionClosed, c.onConnectionClosed)

	_ = queue.Register(opt.Registerer)
	_ = sink.Register(opt.Registerer)

	c.sup = reactor.New(reactor.Options{
		Registerer: opt.Registerer,
		OnSpawned:  c.onSpawned,
	})

	return c, nil
}

func sinkOrDefault(s engine.Sink) engine.Sink {
	if s != nil {
		return s
	}
	return sink.New(sink.Options{Handle: func(interface{}) {}})
}

func (c *client) strategy() auth.Strategy {
	if c.opt.Strategy != nil {
		return c.opt.Strategy
	}
	if c.cfg.ServerPassword() != "" {
		return auth.ServerPassword{Password: c.cfg.ServerPassword()}
	}
	return auth.None{}
}

// factory builds one fresh engine.Engine. It is called once per Spawn,
// including every reconnect successor: a closed transport.Transport
// cannot be reused, so each call constructs its own.
func (c *client) factory() reactor.Connection {
	tr := transport.New(transport.Options{
		ServerAddress:   c.cfg.ServerAddress(),
		BindAddress:     c.cfg.BindAddress(),
		SSL:             c.cfg.SSL(),
		TrustDecider:    c.opt.TrustDecider,
		SSLKeyCertChain: c.cfg.SSLKeyCertChain(),
		SSLKey:          c.cfg.SSLKey(),
		SSLKeyPassword:  c.cfg.SSLKeyPassword(),
	})

	eng := engine.New(engine.Options{
		Config:     c.cfg,
		Transport:  tr,
		Strategy:   c.strategy(),
		Bus:        c.bus,
		Exception:  c.exSink,
		Input:      c.inSink,
		Output:     c.outSink,
		Logger:     c.opt.Logger,
		Registerer: c.opt.Registerer,
	})

	c.mu.Lock()
	c.cur = eng
	c.mu.Unlock()

	return eng
}

func (c *client) onSpawned(id string) {
	c.mu.Lock()
	c.id = id
	c.mu.Unlock()
}

// onConnectionClosed forwards the engine's own ConnectionClosed event
// (dispatched from engine/model.go) to this Client's Supervisor, which
// owns the reconnect decision the engine itself only recommends via
// Reconnect.
func (c *client) onConnectionClosed(e event.Event) {
	cc, ok := e.(event.ConnectionClosed)
	if !ok {
		return
	}

	c.mu.Lock()
	id := c.id
	c.mu.Unlock()

	if id == "" {
		return
	}

	c.sup.NotifyClosed(id, cc.Reconnect)
}

func (c *client) Connect(ctx context.Context) error {
	_, err := c.sup.Spawn(ctx, c.factory)
	return err
}

func (c *client) Shutdown(ctx context.Context, reason string) error {
	c.mu.Lock()
	cur := c.cur
	c.mu.Unlock()

	if cur != nil {
		_ = cur.Shutdown(ctx, reason)
	}

	err := c.sup.Shutdown(ctx)

	closeSink(c.exSink)
	closeSink(c.inSink)
	closeSink(c.outSink)

	return err
}

func closeSink(s engine.Sink) {
	if closer, ok := s.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func (c *client) State() engine.State {
	c.mu.Lock()
	cur := c.cur
	c.mu.Unlock()

	if cur == nil {
		return ""
	}
	return cur.State()
}

func (c *client) Roster() *model.Roster {
	c.mu.Lock()
	cur := c.cur
	c.mu.Unlock()

	if cur == nil {
		return &model.Roster{}
	}
	return cur.Roster()
}

func (c *client) current() (engine.Engine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur, c.cur != nil
}

func (c *client) SendRawLine(s string) error {
	eng, ok := c.current()
	if !ok {
		return nil
	}
	return eng.SendRawLine(s)
}

func (c *client) SendRawLineImmediately(s string) error {
	eng, ok := c.current()
	if !ok {
		return nil
	}
	return eng.SendRawLineImmediately(s)
}

func (c *client) SendMessage(target, text string) error {
	eng, ok := c.current()
	if !ok {
		return nil
	}
	return eng.SendMessage(target, text)
}

func (c *client) SendNotice(target, text string) error {
	eng, ok := c.current()
	if !ok {
		return nil
	}
	return eng.SendNotice(target, text)
}

func (c *client) SendCTCPMessage(target, command, args string) error {
	eng, ok := c.current()
	if !ok {
		return nil
	}
	return eng.SendCTCPMessage(target, command, args)
}

func (c *client) JoinChannel(name string) error {
	eng, ok := c.current()
	if !ok {
		return nil
	}
	return eng.JoinChannel(name)
}

func (c *client) PartChannel(name, reason string) error {
	eng, ok := c.current()
	if !ok {
		return nil
	}
	return eng.PartChannel(name, reason)
}

func (c *client) SetMessageDelay(d time.Duration) {
	eng, ok := c.current()
	if !ok {
		return
	}
	eng.SetMessageDelay(d)
}

func (c *client) Subscribe(kind event.Kind, fn func(event.Event)) (unsubscribe func()) {
	return c.bus.Subscribe(kind, fn)
}

func (c *client) SubscribeAll(fn func(event.Event)) (unsubscribe func()) {
	return c.bus.SubscribeAll(fn)
}
