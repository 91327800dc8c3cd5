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
	"context"
	"strconv"
	"sync"
	"time"

	"github/sabouaram/goirc/auth"
	libatm "github/sabouaram/goirc/atomic"
	"github/sabouaram/goirc/config"
	"github/sabouaram/goirc/ctcp"
	"github/sabouaram/goirc/errors"
	"github/sabouaram/goirc/event"
	"github/sabouaram/goirc/frame"
	"github/sabouaram/goirc/logger"
	"github/sabouaram/goirc/model"
	"github/sabouaram/goirc/queue"
	"github/sabouaram/goirc/runner/startStop"
	"github/sabouaram/goirc/transport"
	"github/sabouaram/goirc/watchdog"
)

// capNegotiationTimeout bounds how long the engine waits for a CAP LS
// response before giving up on capability negotiation and proceeding with
// plain registration (spec.md §8 scenario 1: "CAP END on receiving no CAP
// LS response within 10 s").
const capNegotiationTimeout = 10 * time.Second

// engine is the concrete Engine. Every field it mutates after Start is
// touched from exactly one goroutine — the one running (*engine).run —
// except the atomics and the thread-safe Roster, which Control API calls
// from arbitrary caller goroutines are allowed to reach.
type engine struct {
	cfg      config.Config
	tr       transport.Transport
	strategy auth.Strategy
	bus      EventBus
	exSink   Sink
	inSink   Sink
	outSink  Sink
	log      logger.Logger

	lifecycle startStop.StartStop

	state        libatm.Value[State]
	intendedNick libatm.Value[string]
	reconnect    libatm.Value[bool]

	roster model.Roster
	pacer  queue.Pacer
	wd     watchdog.Watchdog
	framer frame.Framer

	mu           sync.Mutex
	capRequestID string
	capsRequested []string
	capEndSent   bool
	stratDone    bool
	capTimer     *time.Timer
}

func newEngine(opt Options) *engine {
	e := &engine{
		cfg:      opt.Config,
		tr:       opt.Transport,
		strategy: opt.Strategy,
		bus:      opt.Bus,
		exSink:   opt.Exception,
		inSink:   opt.Input,
		outSink:  opt.Output,
		log:      opt.Logger,

		state:        libatm.NewValue[State](),
		intendedNick: libatm.NewValue[string](),
		reconnect:    libatm.NewValue[bool](),
	}

	if e.strategy == nil {
		e.strategy = auth.None{}
	}
	if e.cfg != nil {
		e.intendedNick.Store(e.cfg.Nick())
	}
	e.reconnect.Store(true)
	e.state.Store(StateClosed)

	_ = Register(opt.Registerer)

	e.pacer = queue.New(transportWriter{e: e}, messageDelay(e.cfg))
	e.wd = watchdog.New(0, 0, e.onReaderIdle, e.onAllIdle)
	e.lifecycle = startStop.New(e.run, e.stop)

	return e
}

func messageDelay(cfg config.Config) time.Duration {
	if cfg == nil {
		return time.Duration(config.DefaultMessageDelayMs) * time.Millisecond
	}
	return cfg.MessageDelay()
}

// transportWriter adapts the engine's transport.Transport (byte-oriented,
// no framing) into queue.Writer (line-oriented): it appends CRLF via
// frame.Encode and notes outbound traffic on the idle watchdog, the one
// place this module reconciles transport's []byte contract with queue's
// string contract.
type transportWriter struct {
	e *engine
}

func (w transportWriter) Write(line string) error {
	if err := w.e.tr.Write(frame.Encode(line)); err != nil {
		return errors.WriteError.Error(err)
	}
	w.e.wd.NoteOutbound()
	return nil
}

func (e *engine) Start(ctx context.Context) error {
	return e.lifecycle.Start(ctx)
}

func (e *engine) Shutdown(ctx context.Context, reason string) error {
	e.reconnect.Store(false)
	e.setState(StateShuttingDown)

	line := "QUIT"
	if reason != "" {
		line = "QUIT :" + reason
	}
	_ = e.pacer.Enqueue(line, true)

	return e.lifecycle.Stop(ctx)
}

func (e *engine) State() State {
	return e.state.Load()
}

func (e *engine) Roster() *model.Roster {
	return &e.roster
}

func (e *engine) SendRawLine(s string) error {
	return e.pacer.Enqueue(s, false)
}

func (e *engine) SendRawLineImmediately(s string) error {
	return e.pacer.Enqueue(s, true)
}

func (e *engine) SendMessage(target, text string) error {
	return e.SendRawLine("PRIVMSG " + target + " :" + text)
}

func (e *engine) SendNotice(target, text string) error {
	return e.SendRawLine("NOTICE " + target + " :" + text)
}

func (e *engine) SendCTCPMessage(target, command, args string) error {
	payload := command
	if args != "" {
		payload += " " + args
	}
	return e.SendRawLine("PRIVMSG " + target + " :" + ctcp.Wrap(payload))
}

func (e *engine) JoinChannel(name string) error {
	return e.SendRawLine("JOIN " + name)
}

func (e *engine) PartChannel(name, reason string) error {
	line := "PART " + name
	if reason != "" {
		line += " :" + reason
	}
	return e.SendRawLine(line)
}

func (e *engine) SetMessageDelay(d time.Duration) {
	e.pacer.SetPeriod(d)
}

func (e *engine) setState(s State) {
	e.state.Store(s)
	setStateGauge(s)
	if e.log != nil {
		e.log.Info("engine state transition", logger.IRCFields("", "", "", string(s)))
	}
}

func (e *engine) dispatch(ev event.Event) {
	if e.bus != nil {
		e.bus.Dispatch(ev)
	}
}

func (e *engine) offerException(err error) {
	if e.exSink != nil && err != nil {
		e.exSink.Offer(err)
	}
}

func (e *engine) offerInput(raw string) {
	if e.inSink != nil {
		e.inSink.Offer(raw)
	}
}

// run is the engine's startStop.StartFunc: it connects, registers,
// negotiates capabilities, and then reads inbound frames until ctx is
// cancelled or the connection is lost.
func (e *engine) run(ctx context.Context) error {
	if e.cfg == nil {
		err := ErrorNilConfig.Error(nil)
		e.offerException(err)
		e.setState(StateClosed)
		return err
	}
	if e.tr == nil {
		err := ErrorNilTransport.Error(nil)
		e.offerException(err)
		e.setState(StateClosed)
		return err
	}

	e.setState(StateConnecting)

	if e.cfg != nil && e.cfg.SSL() {
		e.setState(StateTlsHandshaking)
	}

	if err := e.tr.Connect(ctx); err != nil {
		fatal := e.cfg != nil && e.cfg.SSL()
		e.reconnect.Store(!fatal)
		e.offerException(err)
		e.setState(StateClosed)
		e.dispatch(event.ConnectionClosed{Reconnect: !fatal, Err: err})
		return err
	}

	e.framer = frame.NewReader(e.tr.Reader())

	if err := e.wd.Start(ctx); err != nil {
		e.offerException(err)
	}
	if err := e.pacer.StartPacing(ctx); err != nil {
		e.offerException(err)
	}

	e.setState(StateRegistering)
	e.sendRegistrationLines()
	e.setState(StateCapNegotiating)
	e.armCapTimeout()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := e.framer.ReadFrame()
		if err != nil {
			return e.onReadError(err)
		}

		e.wd.NoteInbound()
		e.offerInput(line)
		e.handleLine(line)
	}
}

// stop is the engine's startStop.StopFunc: it tears down the socket and
// the per-connection subsystems. Closing the transport unblocks run's
// blocked ReadFrame call.
func (e *engine) stop(ctx context.Context) error {
	e.stopCapTimer()
	_ = e.wd.Stop(ctx)
	_ = e.pacer.Stop(ctx)
	err := e.tr.Close()
	e.setState(StateClosed)
	return err
}

func (e *engine) onReadError(err error) error {
	graceful := e.State() == StateShuttingDown
	reconnect := !graceful && e.reconnect.Load()

	e.setState(StateClosed)
	e.dispatch(event.ConnectionClosed{Reconnect: reconnect, Err: err})

	if !graceful {
		e.offerException(err)
	}
	return err
}

func (e *engine) onReaderIdle() {
	e.reconnect.Store(true)
	_ = e.tr.Close()
}

func (e *engine) onAllIdle() {
	token := strconv.FormatInt(time.Now().UnixNano(), 10)
	_ = e.pacer.Enqueue("PING :"+token, true)
}

func (e *engine) armCapTimeout() {
	e.mu.Lock()
	e.capTimer = time.AfterFunc(capNegotiationTimeout, func() {
		e.mu.Lock()
		e.stratDone = true
		e.mu.Unlock()
		e.maybeSendCapEnd()
	})
	e.mu.Unlock()
}

func (e *engine) stopCapTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.capTimer != nil {
		e.capTimer.Stop()
	}
}
