// Package metrics exposes Prometheus counters and gauges for the DHCP
// responder and TFTP server, registered on an optional debug HTTP listener.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every counter/gauge this server exports.
type Metrics struct {
	OffersSent   prometheus.Counter
	AcksSent     prometheus.Counter
	RequestsDropped prometheus.Counter

	TransfersStarted   prometheus.Counter
	TransfersCompleted prometheus.Counter
	TransfersFailed    prometheus.Counter
	ActiveTransfers    prometheus.Gauge
}

// New constructs and registers a fresh Metrics set against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OffersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pxeserver",
			Subsystem: "dhcp",
			Name:      "offers_sent_total",
			Help:      "Number of DHCPOFFER datagrams sent.",
		}),
		AcksSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pxeserver",
			Subsystem: "dhcp",
			Name:      "acks_sent_total",
			Help:      "Number of DHCPACK datagrams sent.",
		}),
		RequestsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pxeserver",
			Subsystem: "dhcp",
			Name:      "requests_dropped_total",
			Help:      "Number of inbound DHCP datagrams that produced no response.",
		}),
		TransfersStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pxeserver",
			Subsystem: "tftp",
			Name:      "transfers_started_total",
			Help:      "Number of TFTP transfers started by RRQ.",
		}),
		TransfersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pxeserver",
			Subsystem: "tftp",
			Name:      "transfers_completed_total",
			Help:      "Number of TFTP transfers that reached the final short block.",
		}),
		TransfersFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pxeserver",
			Subsystem: "tftp",
			Name:      "transfers_failed_total",
			Help:      "Number of TFTP transfers aborted by a read error.",
		}),
		ActiveTransfers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pxeserver",
			Subsystem: "tftp",
			Name:      "active_transfers",
			Help:      "Number of TFTP transfers currently in progress.",
		}),
	}
	reg.MustRegister(
		m.OffersSent, m.AcksSent, m.RequestsDropped,
		m.TransfersStarted, m.TransfersCompleted, m.TransfersFailed, m.ActiveTransfers,
	)
	return m
}
