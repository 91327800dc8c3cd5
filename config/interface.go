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

// Package config holds the frozen configuration object the connection
// engine is built from: server/bind addresses, TLS material, registration
// identity, and the tunables (message delay, nick mutation policy) the
// rest of the module reads through a narrow, immutable Config interface.
package config

import (
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"

	"github/sabouaram/goirc/errors"
)

// DefaultMessageDelayMs is the pacer period used when Options.MessageDelayMs
// is zero (spec.md §6: "MESSAGE_DELAY_MS (default 1200)").
const DefaultMessageDelayMs = 1200

// NickMutator rewrites a nick that collided with one already in use.
// engine.DefaultNickMutator satisfies this signature without either
// package importing the other.
type NickMutator func(nick string) string

// Options is the mutable, struct-tagged bag of configuration values a
// caller assembles — via literal construction, unmarshalling, or
// FromViper — before handing it to Builder.Build. The tag set mirrors
// the teacher's certificates.Config: mapstructure/json/yaml/toml plus
// go-playground/validator `validate` tags.
type Options struct {
	ServerAddress string `mapstructure:"serverAddress" json:"serverAddress" yaml:"serverAddress" toml:"serverAddress" validate:"required,hostname_port"`
	BindAddress   string `mapstructure:"bindAddress" json:"bindAddress" yaml:"bindAddress" toml:"bindAddress" validate:"omitempty"`

	SSL              bool   `mapstructure:"ssl" json:"ssl" yaml:"ssl" toml:"ssl"`
	SSLKeyCertChain  string `mapstructure:"sslKeyCertChain" json:"sslKeyCertChain" yaml:"sslKeyCertChain" toml:"sslKeyCertChain" validate:"omitempty,file"`
	SSLKey           string `mapstructure:"sslKey" json:"sslKey" yaml:"sslKey" toml:"sslKey" validate:"omitempty,file"`
	SSLKeyPassword   string `mapstructure:"sslKeyPassword" json:"sslKeyPassword" yaml:"sslKeyPassword" toml:"sslKeyPassword"`

	Nick           string `mapstructure:"nick" json:"nick" yaml:"nick" toml:"nick" validate:"required"`
	User           string `mapstructure:"user" json:"user" yaml:"user" toml:"user" validate:"required"`
	RealName       string `mapstructure:"realName" json:"realName" yaml:"realName" toml:"realName"`
	ServerPassword string `mapstructure:"serverPassword" json:"serverPassword" yaml:"serverPassword" toml:"serverPassword"`

	MessageDelayMs int    `mapstructure:"messageDelayMs" json:"messageDelayMs" yaml:"messageDelayMs" toml:"messageDelayMs" validate:"omitempty,min=1"`
	Name           string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`

	NickMutator NickMutator `mapstructure:"-" json:"-" yaml:"-" toml:"-"`
}

// Config is the immutable, validated view of Options the rest of the
// module depends on. It is produced only by Builder.Build, never
// constructed directly, mirroring the teacher's certificates.TLSConfig
// (interface produced by Config.New/NewFrom, never a bare struct literal).
type Config interface {
	ServerAddress() string
	BindAddress() string

	SSL() bool
	SSLKeyCertChain() string
	SSLKey() string
	SSLKeyPassword() string

	Nick() string
	User() string
	RealName() string
	ServerPassword() string

	MessageDelay() time.Duration
	Name() string

	NickMutator() NickMutator
}

// Builder validates an Options value and produces an immutable Config.
type Builder struct {
	opt Options
}

// NewBuilder returns a Builder wrapping opt. opt is copied; later
// mutation of the caller's Options has no effect on a Builder already
// constructed from it.
func NewBuilder(opt Options) *Builder {
	return &Builder{opt: opt}
}

// Build validates the wrapped Options and returns an immutable Config,
// failing closed on a missing ServerAddress or Nick (spec.md §6) or any
// other `validate` tag violation.
func (b *Builder) Build() (Config, errors.Error) {
	o := b.opt

	if o.MessageDelayMs <= 0 {
		o.MessageDelayMs = DefaultMessageDelayMs
	}
	if o.NickMutator == nil {
		o.NickMutator = defaultNickMutator
	}

	if er := libval.New().Struct(o); er != nil {
		err := ErrorValidation.Error(nil)

		if ve, ok := er.(libval.ValidationErrors); ok {
			for _, e := range ve {
				err.Add(fmt.Errorf("field '%s' fails constraint '%s'", e.StructNamespace(), e.ActualTag()))
			}
		} else {
			err.Add(er)
		}

		return nil, err
	}

	return &cfg{o: o}, nil
}

func defaultNickMutator(nick string) string {
	return nick + "_"
}
