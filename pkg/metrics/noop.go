package metrics

import "time"

// NoopSink is a no-op implementation of Sink.
// Used when metrics are disabled to avoid nil checks.
type NoopSink struct{}

// NewNoopSink returns a no-op metrics sink.
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (n *NoopSink) JobCreated(jobType string)                       {}
func (n *NoopSink) JobUpdated()                                     {}
func (n *NoopSink) JobDeleted(forced bool)                          {}
func (n *NoopSink) JobViewed()                                      {}
func (n *NoopSink) RuleRejected(rule string)                        {}
func (n *NoopSink) ListQueryCompleted(d time.Duration, results int) {}
