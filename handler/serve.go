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

package handler

import (
	"net/http"
	"time"

	"github.com/botobag/helios/crunch"

	"github.com/json-iterator/go"
)

func (h *handler) fail(w http.ResponseWriter, r *http.Request, endpoint string, start time.Time, err error) {
	code := h.errorPresenter.Write(w, err)
	h.metrics.observeRequest(endpoint, code, start)
	h.config.logger.Warn("request failed",
		"endpoint", endpoint,
		"code", code,
		"remote", r.RemoteAddr,
		"error", err)
}

func (h *handler) serveCrunch(w http.ResponseWriter, r *http.Request) {
	const endpoint = "crunch"
	start := time.Now()

	value, err := parseDocument(r, h.config.maxBodySize)
	if err != nil {
		h.fail(w, r, endpoint, start, err)
		return
	}

	pool, err := crunch.Crunch(value, h.config.crunchOptions...)
	if err != nil {
		h.fail(w, r, endpoint, start, err)
		return
	}

	stats := pool.Stats()
	h.metrics.observePool(stats)

	w.Header().Set("Content-Type", "application/json")
	n, err := pool.WriteTo(w)
	if err != nil {
		h.config.logger.Error("cannot write response", "endpoint", endpoint, "error", err)
	}
	h.metrics.observeRequest(endpoint, http.StatusOK, start)

	h.config.logger.Debug("request served",
		"endpoint", endpoint,
		"slots", stats.Slots,
		"shared_references", stats.SharedReferences,
		"bytes", n,
		"duration", time.Since(start))
}

func (h *handler) serveDecompact(w http.ResponseWriter, r *http.Request) {
	const endpoint = "decompact"
	start := time.Now()

	body, err := readBody(r, h.config.maxBodySize)
	if err != nil {
		h.fail(w, r, endpoint, start, err)
		return
	}

	if !jsoniter.Valid(body) {
		h.fail(w, r, endpoint, start, &RequestError{
			Request: r,
			Err:     errInvalidPoolDocument,
		})
		return
	}

	var pool crunch.Pool
	if err := pool.UnmarshalJSON(body); err != nil {
		h.fail(w, r, endpoint, start, err)
		return
	}

	value, err := crunch.Decompact(pool, h.config.decompactOptions...)
	if err != nil {
		h.fail(w, r, endpoint, start, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(value); err != nil {
		h.config.logger.Error("cannot write response", "endpoint", endpoint, "error", err)
	}
	h.metrics.observeRequest(endpoint, http.StatusOK, start)

	h.config.logger.Debug("request served",
		"endpoint", endpoint,
		"slots", len(pool),
		"duration", time.Since(start))
}
