package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "emisi"
)

var (
	ETLDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "etl", "duration_seconds"),
		Help: "Duration of the last ETL run in seconds",
	})
	ETLRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "etl", "rows_total"),
		Help: "Survey rows processed by ETL runs",
	})
	ETLFailedBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "etl", "failed_batches_total"),
		Help: "Load batches skipped because they failed to write",
	}, []string{"table"})
	ETLRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "etl", "runs_total"),
		Help: "ETL runs by final status",
	}, []string{"status"})
	DashboardCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "dashboard", "cache_requests_total"),
		Help: "Dashboard reads by table and whether they were computed or served from cache",
	}, []string{"table", "result"})
	WorkerLastRun = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "last_run_timestamp_seconds"),
		Help: "Unix time the ETL worker last finished a run",
	})
	CacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "cache", "invalidations_total"),
		Help: "Cache flushes triggered by ETL completion events, by outcome",
	}, []string{"result"})
)
