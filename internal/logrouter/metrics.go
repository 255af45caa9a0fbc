package logrouter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Delivery metrics / 投递指标
	recordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tsutils_log_records_total",
			Help: "Records delivered per handler",
		},
		[]string{"handler"},
	)
	recordsFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tsutils_log_records_filtered_total",
			Help: "Records dropped by handler filter expressions",
		},
		[]string{"handler"},
	)
	filterErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tsutils_log_filter_errors_total",
			Help: "Filter expression runtime errors; the record is still delivered",
		},
		[]string{"handler"},
	)
)
