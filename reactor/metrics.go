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

package reactor

import "github.com/prometheus/client_golang/prometheus"

var activeConnections = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "goirc",
	Subsystem: "reactor",
	Name:      "active_connections",
	Help:      "Number of connections this supervisor is currently tracking.",
})

var reconnectsTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "goirc",
	Subsystem: "reactor",
	Name:      "reconnects_total",
	Help:      "Number of successor connections scheduled after an abrupt, reconnect-eligible close.",
})

// Register registers this package's metrics against reg.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		return nil
	}
	if err := reg.Register(activeConnections); err != nil {
		return err
	}
	return reg.Register(reconnectsTotal)
}
