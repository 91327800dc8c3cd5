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

package queue

import "github.com/prometheus/client_golang/prometheus"

// linesPaced counts non-priority lines released by the pacer's periodic
// emitter. priorityBypasses counts lines written immediately, skipping the
// FIFO entirely. Both are process-wide counters; a client with several
// connections shares them, distinguished (if needed) by the caller's own
// label wrapping before registration.
var (
	linesPaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "goirc",
		Subsystem: "queue",
		Name:      "lines_paced_total",
		Help:      "Non-priority outbound lines released by the pacer.",
	})

	priorityBypasses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "goirc",
		Subsystem: "queue",
		Name:      "priority_bypasses_total",
		Help:      "Outbound lines written immediately, bypassing the pacer FIFO.",
	})
)

// Register registers the queue package's metrics against reg. It is safe
// to call at most once per registerer; the Control API calls it only if
// the caller opted into metrics by supplying a prometheus.Registerer.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		return nil
	}
	if err := reg.Register(linesPaced); err != nil {
		return err
	}
	return reg.Register(priorityBypasses)
}
