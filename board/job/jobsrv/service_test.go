package jobsrv

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// baseTime anchors every clock-driven test at a fixed instant.
var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testClock is a settable clock shared between a test and its service.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeJobRepo is an in-memory Repository with injectable failures and
// call counters.
type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[kernel.JobID]*job.Job

	findAllCalls int
	deleteCalls  int
	lastQuery    job.JobQuery

	failCreate  error
	failFind    error
	failFindAll error
	failUpdate  error
	failDelete  error
	failCount   error
	keepRows    bool
	onDelete    func()
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[kernel.JobID]*job.Job)}
}

func (r *fakeJobRepo) add(j *job.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs[j.ID] = &cp
}

func (r *fakeJobRepo) get(id kernel.JobID) *job.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[id]
	if !ok {
		return nil
	}
	cp := *stored
	return &cp
}

func (r *fakeJobRepo) queryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAllCalls
}

func (r *fakeJobRepo) query() job.JobQuery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastQuery
}

func (r *fakeJobRepo) Create(ctx context.Context, j *job.Job) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.add(j)
	return nil
}

func (r *fakeJobRepo) FindByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	if r.failFind != nil {
		return nil, r.failFind
	}
	stored := r.get(id)
	if stored == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id)
	}
	return stored, nil
}

func (r *fakeJobRepo) FindAll(ctx context.Context, query job.JobQuery) (*kernel.Paginated[job.Job], error) {
	r.mu.Lock()
	r.findAllCalls++
	r.lastQuery = query
	fail := r.failFindAll
	r.mu.Unlock()
	if fail != nil {
		return nil, fail
	}

	matched := r.match(query)
	sort.Slice(matched, func(i, k int) bool {
		return matched[i].CreatedAt.After(matched[k].CreatedAt)
	})

	total := len(matched)
	size := query.Pagination.PageSize
	offset := query.Pagination.Offset()
	if offset > total {
		offset = total
	}
	end := offset + size
	if end > total {
		end = total
	}

	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	items := matched[offset:end]
	return &kernel.Paginated[job.Job]{
		Items: items,
		Page: kernel.Page{
			Number:  query.Pagination.Page,
			Size:    size,
			Total:   total,
			Pages:   pages,
			HasMore: query.Pagination.Page*size < total,
		},
		Empty: len(items) == 0,
	}, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, id kernel.JobID, patch job.UpdateJobRequest, updatedAt time.Time) (*job.Job, error) {
	if r.failUpdate != nil {
		return nil, r.failUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id)
	}
	if patch.Title != nil {
		stored.Title = *patch.Title
	}
	if patch.Company != nil {
		stored.Company = *patch.Company
	}
	if patch.Description != nil {
		stored.Description = *patch.Description
	}
	if patch.Location != nil {
		stored.Location = *patch.Location
	}
	if patch.JobType != nil {
		stored.JobType = *patch.JobType
	}
	stored.UpdatedAt = updatedAt
	cp := *stored
	return &cp, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id kernel.JobID) (bool, error) {
	r.mu.Lock()
	r.deleteCalls++
	hook := r.onDelete
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	if r.failDelete != nil {
		return false, r.failDelete
	}
	if r.keepRows {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return false, nil
	}
	delete(r.jobs, id)
	return true, nil
}

func (r *fakeJobRepo) Count(ctx context.Context, query job.JobQuery) (int64, error) {
	if r.failCount != nil {
		return 0, r.failCount
	}
	return int64(len(r.match(query))), nil
}

func (r *fakeJobRepo) match(query job.JobQuery) []job.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]job.Job, 0, len(r.jobs))
	for _, stored := range r.jobs {
		if !query.PostedBy.IsEmpty() && stored.PostedBy != query.PostedBy {
			continue
		}
		if query.JobType != "" && stored.JobType != query.JobType {
			continue
		}
		if query.Location != "" && !containsFold(stored.Location.String(), query.Location) {
			continue
		}
		if query.SearchTerm != "" &&
			!containsFold(stored.Title.String(), query.SearchTerm) &&
			!containsFold(stored.Company.String(), query.SearchTerm) &&
			!containsFold(stored.Description.String(), query.SearchTerm) {
			continue
		}
		matched = append(matched, *stored)
	}
	return matched
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// spyAudit records audit entries.
type spyAudit struct {
	mu      sync.Mutex
	entries []job.AuditEntry
	fail    error
}

func (a *spyAudit) Record(ctx context.Context, entry job.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail != nil {
		return a.fail
	}
	a.entries = append(a.entries, entry)
	return nil
}

func (a *spyAudit) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func (a *spyAudit) last() job.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries[len(a.entries)-1]
}

// spyViews records tracked views and serves canned counts.
type spyViews struct {
	mu        sync.Mutex
	tracked   []kernel.JobID
	counts    map[kernel.JobID]int64
	failTrack error
	failViews error
}

func newSpyViews() *spyViews {
	return &spyViews{counts: make(map[kernel.JobID]int64)}
}

func (v *spyViews) TrackView(ctx context.Context, jobID kernel.JobID, viewer kernel.UserID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failTrack != nil {
		return v.failTrack
	}
	v.tracked = append(v.tracked, jobID)
	return nil
}

func (v *spyViews) Views(ctx context.Context, jobID kernel.JobID) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failViews != nil {
		return 0, v.failViews
	}
	return v.counts[jobID], nil
}

func (v *spyViews) trackedCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.tracked)
}

// spyNotifier records emitted lifecycle events by routing key.
type spyNotifier struct {
	mu     sync.Mutex
	events []string
	fail   error
}

func (n *spyNotifier) record(event string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.events = append(n.events, event)
	return nil
}

func (n *spyNotifier) JobCreated(ctx context.Context, j *job.Job) error {
	return n.record("job.created")
}

func (n *spyNotifier) JobUpdated(ctx context.Context, j *job.Job) error {
	return n.record("job.updated")
}

func (n *spyNotifier) JobDeleted(ctx context.Context, jobID kernel.JobID, actor kernel.UserID) error {
	return n.record("job.deleted")
}

func (n *spyNotifier) eventCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

// spySink counts metric calls.
type spySink struct {
	mu          sync.Mutex
	created     int
	updated     int
	deleted     int
	viewed      int
	listQueries int
	rejections  map[string]int
}

func newSpySink() *spySink {
	return &spySink{rejections: make(map[string]int)}
}

func (s *spySink) JobCreated(jobType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
}

func (s *spySink) JobUpdated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated++
}

func (s *spySink) JobDeleted(forced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted++
}

func (s *spySink) JobViewed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewed++
}

func (s *spySink) RuleRejected(rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejections[rule]++
}

func (s *spySink) ListQueryCompleted(duration time.Duration, results int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listQueries++
}

func (s *spySink) rejected(rule string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejections[rule]
}

// fixture wires a JobService to fakes with a settable clock.
type fixture struct {
	repo     *fakeJobRepo
	audit    *spyAudit
	views    *spyViews
	notifier *spyNotifier
	sink     *spySink
	clock    *testClock
	svc      *JobService
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		repo:     newFakeJobRepo(),
		audit:    &spyAudit{},
		views:    newSpyViews(),
		notifier: &spyNotifier{},
		sink:     newSpySink(),
		clock:    &testClock{now: baseTime},
	}
	base := []Option{WithClock(f.clock.Now), WithMetrics(f.sink)}
	f.svc = NewJobService(f.repo, f.audit, f.views, f.notifier, append(base, opts...)...)
	return f
}

// seedJob stores a posting created at the given instant and returns it.
func (f *fixture) seedJob(id, owner string, createdAt time.Time) *job.Job {
	j := &job.Job{
		ID:          kernel.NewJobID(id),
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build and run our backend services.",
		Location:    "Oslo",
		JobType:     job.JobTypeFullTime,
		PostedBy:    kernel.NewUserID(owner),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	f.repo.add(j)
	return j
}

func validCreate(owner string) job.CreateJobRequest {
	return job.CreateJobRequest{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build and run our backend services.",
		Location:    "Oslo",
		JobType:     job.JobTypeFullTime,
		PostedBy:    kernel.NewUserID(owner),
	}
}
