// Package metrics defines the sink the job services report into.
package metrics

import "time"

// Sink records operational metrics for the job board.
// All methods are fire-and-forget: implementations must not block or
// propagate errors.
type Sink interface {
	JobCreated(jobType string)
	JobUpdated()
	JobDeleted(forced bool)
	JobViewed()

	// RuleRejected counts a business-rule rejection by rule name.
	RuleRejected(rule string)

	// ListQueryCompleted records the latency and result count of a
	// listing/search query.
	ListQueryCompleted(duration time.Duration, results int)
}

// Rule constants for RuleRejected.
const (
	RuleCompanyBlacklist = "company_blacklist"
	RuleDuplicatePosting = "duplicate_posting"
	RuleEditWindow       = "edit_window"
	RuleCompanyLock      = "company_lock"
	RuleDeleteCooldown   = "delete_cooldown"
)
