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
	"strconv"
	"time"

	"github.com/botobag/helios/crunch"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	poolSlots        prometheus.Histogram
	sharedReferences prometheus.Counter
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "helios",
				Name:      "requests_total",
				Help:      "Total number of requests by endpoint and status code",
			},
			[]string{"endpoint", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "helios",
				Name:      "request_duration_seconds",
				Help:      "Time spent on serving requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		poolSlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "helios",
			Name:      "pool_slots",
			Help:      "Number of slots in pools produced by crunch",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		sharedReferences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "helios",
			Name:      "shared_references_total",
			Help:      "Total number of references to slots that are referenced more than once",
		}),
	}

	for _, collector := range []prometheus.Collector{
		m.requests,
		m.duration,
		m.poolSlots,
		m.sharedReferences,
	} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *metrics) observeRequest(endpoint string, code int, start time.Time) {
	m.requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (m *metrics) observePool(stats crunch.PoolStats) {
	m.poolSlots.Observe(float64(stats.Slots))
	m.sharedReferences.Add(float64(stats.SharedReferences))
}
