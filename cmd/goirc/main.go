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

// Command goirc is a terminal demonstration of the Client façade: it
// reads connection parameters from flags and/or a config file (via
// viper), connects, prints inbound events in color (via fatih/color),
// and turns typed lines into outbound Control API calls.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github/sabouaram/goirc"
	"github/sabouaram/goirc/config"
	"github/sabouaram/goirc/duration"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		printError("goirc", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfgFile string
	var target string

	cmd := &cobra.Command{
		Use:   "goirc",
		Short: "Connect to an IRC server and relay its events to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config file %s: %w", cfgFile, err)
				}
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			opt, cfgErr := config.FromViper(v)
			if cfgErr != nil {
				return cfgErr
			}

			if s := v.GetString("messageDelay"); s != "" {
				d, err := duration.Parse(s)
				if err != nil {
					return fmt.Errorf("parsing --messageDelay %q: %w", s, err)
				}
				opt.MessageDelayMs = int(d.Time().Milliseconds())
			}

			return run(opt, target)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "path to a config file (yaml/json/toml); flags override its values")
	flags.String("serverAddress", "", "IRC server host:port")
	flags.String("bindAddress", "", "local address to bind the outbound connection to")
	flags.Bool("ssl", false, "use TLS for the server connection")
	flags.String("nick", "", "nickname to register with")
	flags.String("user", "", "username to register with")
	flags.String("realName", "", "GECOS real name")
	flags.String("serverPassword", "", "server (PASS) password")
	flags.Int("messageDelayMs", 0, "outbound message pacing delay in milliseconds (0 = default)")
	flags.String("messageDelay", "", `outbound message pacing delay (e.g. "1s200ms"); overrides --messageDelayMs`)
	flags.StringVarP(&target, "target", "t", "", "channel or nick new lines are sent to as PRIVMSG")

	return cmd
}

func run(opt config.Options, target string) error {
	client, err := goirc.New(goirc.Options{Config: opt})
	if err != nil {
		return err
	}

	unsubscribe := client.SubscribeAll(printEvent)
	defer unsubscribe()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := client.Connect(ctx); err != nil {
		return err
	}
	colorInfo.Printf("connecting to %s as %s ...\n", opt.ServerAddress, opt.Nick)

	var quitReason string
	go readStdin(ctx, stop, client, &target, &quitReason)

	<-ctx.Done()

	colorInfo.Printf("shutting down\n")
	reason := quitReason
	if reason == "" {
		reason = "client exiting"
	}
	return client.Shutdown(context.Background(), reason)
}

// readStdin turns typed lines into Control API calls: "/join #chan",
// "/part #chan [reason]", "/msg target text", "/quit [reason]" are
// commands; anything else is sent as a PRIVMSG to the current target.
// "/quit" calls stop rather than Shutdown directly, so run's own
// <-ctx.Done() path is the single place Shutdown is ever called from.
func readStdin(ctx context.Context, stop context.CancelFunc, client goirc.Client, target, quitReason *string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "/join "):
			printError("join", client.JoinChannel(strings.TrimPrefix(line, "/join ")))
		case strings.HasPrefix(line, "/part "):
			rest := strings.SplitN(strings.TrimPrefix(line, "/part "), " ", 2)
			reason := ""
			if len(rest) == 2 {
				reason = rest[1]
			}
			printError("part", client.PartChannel(rest[0], reason))
		case strings.HasPrefix(line, "/msg "):
			rest := strings.SplitN(strings.TrimPrefix(line, "/msg "), " ", 2)
			if len(rest) == 2 {
				printError("msg", client.SendMessage(rest[0], rest[1]))
			}
		case strings.HasPrefix(line, "/quit"):
			*quitReason = strings.TrimSpace(strings.TrimPrefix(line, "/quit"))
			stop()
			return
		case *target != "":
			printError("send", client.SendMessage(*target, line))
		default:
			colorErr.Printf("no --target set; use /msg <target> <text> or /join a channel first\n")
		}
	}
}
