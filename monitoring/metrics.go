package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ticketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketchain_tickets_sold_total",
			Help: "Primary-sale ticket units settled",
		},
		[]string{"event_id"},
	)

	resales = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketchain_resales_total",
			Help: "Resale purchases settled",
		},
		[]string{"event_id"},
	)

	checkIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketchain_checkins_total",
			Help: "Check-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	goldenPurchases = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketchain_golden_purchases_total",
			Help: "Golden ticket purchases settled",
		},
	)
)

func RecordPrimarySale(eventID string, quantity int) {
	ticketsSold.WithLabelValues(eventID).Add(float64(quantity))
}

func RecordResale(eventID string) {
	resales.WithLabelValues(eventID).Inc()
}

func RecordCheckIn(outcome string) {
	checkIns.WithLabelValues(outcome).Inc()
}

func RecordGoldenPurchase() {
	goldenPurchases.Inc()
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
