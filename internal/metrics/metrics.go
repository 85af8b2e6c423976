// Package metrics exposes relay counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg        *prometheus.Registry
	events     *prometheus.CounterVec
	deliveries *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swiftchat",
			Name:      "events_total",
			Help:      "Inbound events handled, by kind.",
		}, []string{"kind"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swiftchat",
			Name:      "deliveries_total",
			Help:      "Outbound frames offered to connections, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.events, m.deliveries)
	return m
}

// TrackGauges publishes live room and connection counts sampled on scrape.
func (m *Metrics) TrackGauges(rooms, connections func() int) {
	m.reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "swiftchat",
			Name:      "rooms",
			Help:      "Rooms currently registered.",
		}, func() float64 { return float64(rooms()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "swiftchat",
			Name:      "connections",
			Help:      "Live client connections.",
		}, func() float64 { return float64(connections()) }),
	)
}

func (m *Metrics) Event(kind string) { m.events.WithLabelValues(kind).Inc() }

func (m *Metrics) Sent() { m.deliveries.WithLabelValues("sent").Inc() }

func (m *Metrics) Dropped() { m.deliveries.WithLabelValues("dropped").Inc() }

// Rejected counts messages refused because the sender was not in the room.
func (m *Metrics) Rejected() { m.deliveries.WithLabelValues("rejected").Inc() }

// Handler exposes metrics at /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
