package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/boardwalk-hq/boardwalk/pkg/logx"
)

// PrometheusSink implements Sink using the Prometheus client library.
// All methods are non-blocking; registration errors are logged and
// never propagated.
type PrometheusSink struct {
	jobsCreatedTotal    *prometheus.CounterVec
	jobsUpdatedTotal    prometheus.Counter
	jobsDeletedTotal    *prometheus.CounterVec
	jobViewsTotal       prometheus.Counter
	ruleRejectionsTotal *prometheus.CounterVec
	listQueryDuration   prometheus.Histogram
	listQueryResults    prometheus.Histogram
}

// NewPrometheusSink creates and registers the job-board collectors.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	s := &PrometheusSink{
		jobsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "boardwalk_jobs_created_total",
			Help: "Total number of job postings created.",
		}, []string{"job_type"}),
		jobsUpdatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boardwalk_jobs_updated_total",
			Help: "Total number of job postings updated.",
		}),
		jobsDeletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "boardwalk_jobs_deleted_total",
			Help: "Total number of job postings deleted.",
		}, []string{"forced"}),
		jobViewsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boardwalk_job_views_total",
			Help: "Total number of tracked job views by non-owners.",
		}),
		ruleRejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "boardwalk_rule_rejections_total",
			Help: "Total number of business-rule rejections.",
		}, []string{"rule"}),
		listQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boardwalk_list_query_duration_seconds",
			Help:    "Latency of listing and search queries in seconds.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		listQueryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boardwalk_list_query_results",
			Help:    "Result counts of listing and search queries.",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		}),
	}

	s.register(reg, s.jobsCreatedTotal, "boardwalk_jobs_created_total")
	s.register(reg, s.jobsUpdatedTotal, "boardwalk_jobs_updated_total")
	s.register(reg, s.jobsDeletedTotal, "boardwalk_jobs_deleted_total")
	s.register(reg, s.jobViewsTotal, "boardwalk_job_views_total")
	s.register(reg, s.ruleRejectionsTotal, "boardwalk_rule_rejections_total")
	s.register(reg, s.listQueryDuration, "boardwalk_list_query_duration_seconds")
	s.register(reg, s.listQueryResults, "boardwalk_list_query_results")
	return s
}

func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		logx.Warnf("metrics: failed to register %s: %v", name, err)
	}
}

func (s *PrometheusSink) JobCreated(jobType string) {
	s.jobsCreatedTotal.WithLabelValues(jobType).Inc()
}

func (s *PrometheusSink) JobUpdated() {
	s.jobsUpdatedTotal.Inc()
}

func (s *PrometheusSink) JobDeleted(forced bool) {
	label := "false"
	if forced {
		label = "true"
	}
	s.jobsDeletedTotal.WithLabelValues(label).Inc()
}

func (s *PrometheusSink) JobViewed() {
	s.jobViewsTotal.Inc()
}

func (s *PrometheusSink) RuleRejected(rule string) {
	s.ruleRejectionsTotal.WithLabelValues(rule).Inc()
}

func (s *PrometheusSink) ListQueryCompleted(d time.Duration, results int) {
	s.listQueryDuration.Observe(d.Seconds())
	s.listQueryResults.Observe(float64(results))
}
