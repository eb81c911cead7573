package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the API exports.
type Metrics struct {
	registry *prometheus.Registry

	RequestCount     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	Donations        prometheus.Counter
	DonationAmount   prometheus.Counter
	CampaignsCreated *prometheus.CounterVec
	Logins           *prometheus.CounterVec
}

// New registers the collectors, plus Go runtime and process collectors, on a
// fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vakinha_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vakinha_http_request_duration_seconds",
				Help:    "Histogram of response durations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Donations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vakinha_donations_total",
			Help: "Number of donations received",
		}),
		DonationAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vakinha_donation_amount_total",
			Help: "Sum of donated amounts",
		}),
		CampaignsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vakinha_campaigns_created_total",
				Help: "Number of campaigns created, by source",
			},
			[]string{"source"},
		),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vakinha_logins_total",
				Help: "Login attempts, by result",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		m.RequestCount,
		m.RequestDuration,
		m.Donations,
		m.DonationAmount,
		m.CampaignsCreated,
		m.Logins,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The Observe helpers are no-ops on a nil *Metrics so services can run without one.

func (m *Metrics) ObserveDonation(amount float64) {
	if m == nil {
		return
	}
	m.Donations.Inc()
	m.DonationAmount.Add(amount)
}

func (m *Metrics) ObserveCampaignCreated(source string) {
	if m == nil {
		return
	}
	m.CampaignsCreated.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}
