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

import "github.com/prometheus/client_golang/prometheus"

// stateGauge exposes the engine's current State as a label on a
// constant-value gauge, one engine instance at a time; a client running
// several connections distinguishes them by wrapping Register with its
// own label before handing the prometheus.Registerer to engine.New.
var stateGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "goirc",
	Subsystem: "engine",
	Name:      "state",
	Help:      "1 for the engine's current state, 0 for every other known state.",
}, []string{"state"})

var allStates = []State{
	StateConnecting, StateTlsHandshaking, StateRegistering, StateCapNegotiating,
	StateReady, StateShuttingDown, StateClosed,
}

// Register registers the engine package's metrics against reg.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		return nil
	}
	return reg.Register(stateGauge)
}

func setStateGauge(current State) {
	for _, s := range allStates {
		v := 0.0
		if s == current {
			v = 1.0
		}
		stateGauge.WithLabelValues(string(s)).Set(v)
	}
}
