package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grabbit",
		Name:      "catalog_probes_total",
		Help:      "Format catalog probes by result",
	}, []string{"result"})

	Downloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grabbit",
		Name:      "downloads_total",
		Help:      "Materializations by track type and result",
	}, []string{"track", "result"})

	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grabbit",
		Name:      "deliveries_total",
		Help:      "Delivery attempts by channel (inline, link, failed)",
	}, []string{"channel"})

	DownloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "grabbit",
		Name:      "download_duration_seconds",
		Help:      "Wall time of one materialization",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)
