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

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// defaultMu guards defaultInst, the process-wide singleton spec.md §4.6
// describes ("a process-wide, mutex-guarded set of live connections
// sharing a single I/O reactor"). It is a separate lock from each
// supervisor's own, since clearing defaultInst is itself a "reactor
// lifecycle transition" distinct from any one supervisor's connection
// set.
var (
	defaultMu   sync.Mutex
	defaultInst Supervisor
	defaultReg  prometheus.Registerer
)

// Default returns the process-wide Supervisor, lazily creating one if
// absent — spec.md §4.6's "starting a new connection lazily recreates
// the reactor if absent" applied to the package-level instance every
// root-package Client shares unless it opts into its own via New.
func Default() Supervisor {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultInst == nil {
		defaultInst = New(Options{Registerer: defaultReg, OnDrained: clearDefault})
	}
	return defaultInst
}

// SetDefaultRegisterer configures the prometheus.Registerer the next
// lazily-created Default() instance registers its metrics against. It
// has no effect on an already-constructed Default() instance.
func SetDefaultRegisterer(reg prometheus.Registerer) {
	defaultMu.Lock()
	defaultReg = reg
	defaultMu.Unlock()
}

// clearDefault drops the singleton so the next Default() call rebuilds
// it, matching spec.md §4.6 step 3's "shut the reactor down gracefully"
// for the package-level instance.
func clearDefault() {
	defaultMu.Lock()
	defaultInst = nil
	defaultMu.Unlock()
}
