/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/botobag/helios/internal/logging"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds states shared by all commands.
type app struct {
	logLevel string
	logger   *slog.Logger
}

// envOr returns the value of the environment variable key or def if it is not set.
func envOr(key string, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return def
}

func newRootCmd() *cobra.Command {
	a := &app{
		logger: logging.NewNop(),
	}

	cmd := &cobra.Command{
		Use:   "helios",
		Short: "Helios compacts value trees into pools of unique slots",
		Long: `Helios compacts JSON (or YAML) documents into pools where every distinct value is stored
once and composite values refer to their children by index.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", envOr("HELIOS_LOG_LEVEL", "info"),
		"Log level (debug, info, warn or error) [$HELIOS_LOG_LEVEL]")

	cmd.AddCommand(
		newCrunchCmd(a),
		newDecompactCmd(a),
		newDescribeCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// readInput reads the file named by the only argument or stdin when there's no argument or the
// argument is "-".
func readInput(cmd *cobra.Command, args []string) (name string, data []byte, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		return "-", data, err
	}

	name = args[0]
	data, err = os.ReadFile(name)
	return name, data, err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of helios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "helios version %s\n", version)
		},
	}
}
