// Package metrics defines the Prometheus metrics exported by gowol-homelab.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsSentTotal counts magic packets handed to the local transport, by target
	PacketsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wol_packets_sent_total",
			Help: "Number of magic packets sent, by broadcast target",
		},
		[]string{"target"},
	)

	// SendErrorsTotal counts transmission failures, by target
	SendErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wol_send_errors_total",
			Help: "Number of magic packets that could not be sent, by broadcast target",
		},
		[]string{"target"},
	)

	// RequestsTotal counts wake requests, by result (woken, rejected)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wol_wake_requests_total",
			Help: "Number of wake requests, by result",
		},
		[]string{"result"},
	)

	// PacketsReceivedTotal counts datagrams seen by the listener, by validity
	PacketsReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wol_packets_received_total",
			Help: "Number of datagrams received by the listener, by result (valid, invalid)",
		},
		[]string{"result"},
	)
)
