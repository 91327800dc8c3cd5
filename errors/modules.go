/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// Each package of this module reserves a block of 100 CodeError values
// starting at its Min constant, following the teacher's convention of
// registering one Message function per block via RegisterIdFctMessage.
const (
	MinPkgCertificate = 300
	MinPkgConfig       = 500
	MinPkgIOUtils      = 900
	MinPkgLogger       = 1600
	MinPkgCore         = 2000
	MinPkgTransport    = 2200
	MinPkgFrame        = 2300
	MinPkgQueue        = 2400
	MinPkgWatchdog     = 2500
	MinPkgEngine       = 2600
	MinPkgReactor      = 2700
	MinPkgCTCP         = 2800
	MinPkgAuth         = 2900
	MinPkgModel        = 3000
	MinPkgSink         = 3100

	MinAvailable = 4000

	// MIN_AVAILABLE @Deprecated use MinAvailable constant
	MIN_AVAILABLE = MinAvailable

	// MIN_PKG_IOUtils @Deprecated use MinPkgIOUtils constant
	MIN_PKG_IOUtils = MinPkgIOUtils
)
