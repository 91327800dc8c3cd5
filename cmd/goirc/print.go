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

package main

import (
	"fmt"

	"github.com/fatih/color"

	"github/sabouaram/goirc/errors"
	"github/sabouaram/goirc/event"
)

// lineColor assigns one fatih/color printer per event.Kind the demo cares
// about, the way console.colorType keys a *color.Color per purpose rather
// than formatting ad hoc at each call site.
type lineColor uint8

const (
	colorInfo lineColor = iota
	colorChat
	colorNotice
	colorErr
)

var palette = map[lineColor]*color.Color{
	colorInfo:   color.New(color.FgCyan),
	colorChat:   color.New(color.FgWhite),
	colorNotice: color.New(color.FgYellow),
	colorErr:    color.New(color.FgRed, color.Bold),
}

func (c lineColor) Printf(format string, args ...interface{}) {
	p := palette[c]
	if p == nil {
		fmt.Printf(format, args...)
		return
	}
	_, _ = p.Printf(format, args...)
}

// printEvent renders the subset of event.Event kinds a terminal user
// actually wants to see scrolling by; everything else (CAP negotiation,
// ServerLine, NickCollision) stays silent at this verbosity level.
func printEvent(e event.Event) {
	switch v := e.(type) {
	case event.Privmsg:
		colorChat.Printf("<%s:%s> %s\n", v.From.Nick, v.Target, v.Text)
	case event.Notice:
		colorNotice.Printf("-%s:%s- %s\n", v.From.Nick, v.Target, v.Text)
	case event.Join:
		colorInfo.Printf("* %s joined %s\n", v.Who.Nick, v.ChannelRef)
	case event.Part:
		colorInfo.Printf("* %s left %s (%s)\n", v.Who.Nick, v.ChannelRef, v.Reason)
	case event.Quit:
		colorInfo.Printf("* %s quit (%s)\n", v.Who.Nick, v.Reason)
	case event.Nick:
		colorInfo.Printf("* %s is now known as %s\n", v.Who.Nick, v.NewNick)
	case event.ConnectionClosed:
		if v.Err != nil {
			colorErr.Printf("! connection closed: %v (reconnect=%v)\n", v.Err, v.Reconnect)
		} else {
			colorInfo.Printf("* connection closed (reconnect=%v)\n", v.Reconnect)
		}
	}
}

// printError renders a goirc error the way cobra/printError.go's
// AddCommandPrintErrorCode formats a code alongside its message, falling
// back to a plain %v for errors that never carry an errors.Error code.
func printError(prefix string, err error) {
	if err == nil {
		return
	}
	if ce, ok := err.(errors.Error); ok {
		colorErr.Printf("%s: [%d] %s\n", prefix, ce.GetCode().Uint16(), ce.Error())
		return
	}
	colorErr.Printf("%s: %v\n", prefix, err)
}
