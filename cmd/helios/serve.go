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
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/botobag/helios/crunch"
	"github.com/botobag/helios/handler"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		addr            string
		maxBodySize     uint
		maxDepth        int
		maxNodes        int
		compressMinSize int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Start the HTTP server that crunches documents posted to /crunch and rebuilds pools posted to /decompact.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := handler.New(
				handler.Logger(a.logger),
				handler.MaxBodySize(maxBodySize),
				handler.CompressionMinSize(compressMinSize),
				handler.CrunchOptions(crunch.MaxDepth(maxDepth)),
				handler.DecompactOptions(crunch.MaxDepth(maxDepth), crunch.MaxNodes(maxNodes)),
				handler.Registerer(prometheus.DefaultRegisterer),
			)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           h,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", "addr", addr)
				serverErrors <- srv.ListenAndServe()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err

			case <-ctx.Done():
				a.logger.Info("shutting down server")

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					a.logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
					if err := srv.Close(); err != nil {
						return err
					}
				}

				if err := <-serverErrors; !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				a.logger.Info("server stopped")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("HELIOS_ADDR", ":8080"), "Address to listen on [$HELIOS_ADDR]")
	cmd.Flags().UintVar(&maxBodySize, "max-body-size", handler.DefaultMaxBodySize, "Maximum size of request body in bytes")
	cmd.Flags().IntVar(&maxDepth, "max-depth", crunch.DefaultMaxDepth,
		"Maximum nesting of arrays and objects (0 for no limit)")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", handler.DefaultMaxNodes,
		"Maximum number of values rebuilt by /decompact (0 for no limit)")
	cmd.Flags().IntVar(&compressMinSize, "compress-min-size", gzhttp.DefaultMinSize, "Minimum size of responses to be compressed")

	return cmd
}
