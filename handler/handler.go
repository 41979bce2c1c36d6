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

// Package handler serves crunching over HTTP.
//
// The handler built by New provides the following endpoints:
//
//	POST /crunch     compacts the JSON (or YAML) document in request body and responds the pool
//	POST /decompact  rebuilds the JSON document from the pool in request body
//	GET  /metrics    exposes metrics in Prometheus text format
//
// Responses of /crunch and /decompact are compressed when client accepts gzip encoding.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/botobag/helios/crunch"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBodySize is the maximum size of request body when MaxBodySize is not given.
const DefaultMaxBodySize = 10 << 20 // 10MB

// DefaultMaxNodes is the number of values /decompact may rebuild from a pool unless
// DecompactOptions gives another crunch.MaxNodes.
const DefaultMaxNodes = 1 << 20

// config contains configuration for a handler.
type config struct {
	maxBodySize      uint
	compressMinSize  int
	logger           *slog.Logger
	registerer       prometheus.Registerer
	gatherer         prometheus.Gatherer
	crunchOptions    []crunch.Option
	decompactOptions []crunch.Option
}

// Option configures handler.
type Option func(c *config)

// MaxBodySize sets the maximum number of bytes to be read from request body.
func MaxBodySize(size uint) Option {
	return func(c *config) {
		c.maxBodySize = size
	}
}

// CompressionMinSize sets the minimum size of response to be compressed. It defaults to
// gzhttp.DefaultMinSize.
func CompressionMinSize(size int) Option {
	return func(c *config) {
		c.compressMinSize = size
	}
}

// Logger sets the logger for reporting requests. slog.Default() is used if not given.
func Logger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Registerer sets the registry where metrics are registered. /metrics serves metrics gathered from
// the registerer if it is also a prometheus.Gatherer (e.g., *prometheus.Registry) or from
// prometheus.DefaultGatherer otherwise. If not given, the handler has its own registry.
func Registerer(registerer prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = registerer
		if gatherer, ok := registerer.(prometheus.Gatherer); ok {
			c.gatherer = gatherer
		} else {
			c.gatherer = prometheus.DefaultGatherer
		}
	}
}

// CrunchOptions sets the options given to crunch.Crunch for every request.
func CrunchOptions(opts ...crunch.Option) Option {
	return func(c *config) {
		c.crunchOptions = append(c.crunchOptions, opts...)
	}
}

// DecompactOptions sets the options given to crunch.Decompact for every request. They are applied
// after crunch.MaxNodes(DefaultMaxNodes) and so can override it.
func DecompactOptions(opts ...crunch.Option) Option {
	return func(c *config) {
		c.decompactOptions = append(c.decompactOptions, opts...)
	}
}

// handler serves requests routed by a chi router.
type handler struct {
	config         config
	metrics        *metrics
	errorPresenter errorPresenter
}

// New creates a net/http.Handler serving crunch and decompact requests.
func New(opts ...Option) (http.Handler, error) {
	registry := prometheus.NewRegistry()

	// Apply Options on config.
	c := config{
		maxBodySize:     DefaultMaxBodySize,
		compressMinSize: gzhttp.DefaultMinSize,
		registerer:      registry,
		gatherer:        registry,

		decompactOptions: []crunch.Option{crunch.MaxNodes(DefaultMaxNodes)},
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	compress, err := gzhttp.NewWrapper(gzhttp.MinSize(c.compressMinSize))
	if err != nil {
		return nil, err
	}

	m, err := newMetrics(c.registerer)
	if err != nil {
		return nil, err
	}

	h := &handler{
		config:  c,
		metrics: m,
	}

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(c.logger.Handler(), slog.LevelError),
	}))
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return compress(next)
		})
		r.Post("/crunch", h.serveCrunch)
		r.Post("/decompact", h.serveDecompact)
	})

	return r, nil
}
