package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	AdsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ads_created_total",
			Help: "Total ads created",
		},
	)
	AdsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ads_deleted_total",
			Help: "Total ads deleted",
		},
	)
	ImagesStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "images_stored_total",
			Help: "Total image files written",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(AdsCreated)
	prometheus.MustRegister(AdsDeleted)
	prometheus.MustRegister(ImagesStored)
}
