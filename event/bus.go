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

package event

import "sync"

// Bus is a minimal, in-process pub/sub registry: the concrete default for
// the "event bus" collaborator spec.md §1 treats as external ("the core
// requires only a dispatch(event) capability"). Nothing in engine/ or
// reactor/ depends on Bus directly; the root package wires one in by
// default so a caller has somewhere to Subscribe without supplying their
// own EventBus.
type Bus struct {
	mu   sync.RWMutex
	subs map[Kind][]func(Event)
	all  []func(Event)
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]func(Event))}
}

// Dispatch calls every subscriber registered for e's Kind, then every
// subscriber registered via SubscribeAll, in registration order. Panics
// from one subscriber do not prevent the rest from running.
func (b *Bus) Dispatch(e Event) {
	b.mu.RLock()
	handlers := append([]func(Event){}, b.subs[e.Kind()]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	for _, h := range handlers {
		callSafely(h, e)
	}
}

func callSafely(h func(Event), e Event) {
	defer func() { _ = recover() }()
	h(e)
}

// Subscribe registers fn for every event of the given Kind, returning an
// unsubscribe function.
func (b *Bus) Subscribe(kind Kind, fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	b.subs[kind] = append(b.subs[kind], fn)
	idx := len(b.subs[kind]) - 1
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[kind]
		if idx < len(list) {
			list[idx] = nil
		}
	}
}

// SubscribeAll registers fn for every event regardless of Kind, returning
// an unsubscribe function.
func (b *Bus) SubscribeAll(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	b.all = append(b.all, fn)
	idx := len(b.all) - 1
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if idx < len(b.all) {
			b.all[idx] = nil
		}
	}
}
