// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pyramid

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tilesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fractal",
		Subsystem: "pyramid",
		Name:      "tiles_created_total",
		Help:      "Tiles generated, including ancestors generated for context.",
	})

	tileHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fractal",
		Subsystem: "pyramid",
		Name:      "tile_hits_total",
		Help:      "Requests answered from the cache.",
	})

	tilesEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fractal",
		Subsystem: "pyramid",
		Name:      "tiles_evicted_total",
		Help:      "Tiles dropped by the eviction policy.",
	})

	generationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fractal",
		Subsystem: "pyramid",
		Name:      "generation_seconds",
		Help:      "Time to generate a requested tile and any context it pulled in.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	})
)
