// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fractal",
		Subsystem: "server",
		Name:      "sessions",
		Help:      "Open websocket sessions.",
	})

	inboundMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fractal",
		Subsystem: "server",
		Name:      "inbound_messages_total",
		Help:      "Messages received from clients by type.",
	}, []string{"type"})
)
