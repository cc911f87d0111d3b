package jobapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/board/job/jobsrv"
	"github.com/boardwalk-hq/boardwalk/pkg/iam/auth"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	// Get auth context
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrUnauthenticated()
	}

	// Parse request body
	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	// Set the poster to the authenticated user
	req.PostedBy = *authContext.UserID

	// Create job
	newJob, err := h.service.CreateJob(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// GetJobByID retrieves a job with viewer-relative flags
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	// Parse job ID from URL
	jobID := kernel.JobID(c.Params("id"))

	// Get job
	jobResp, err := h.service.GetJobByID(c.Context(), jobID, viewerID(c))
	if err != nil {
		return err
	}

	return c.JSON(jobResp)
}

// ListJobs retrieves jobs with filtering, ordering and pagination
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	// Raw filters go to the service untouched; it normalizes them.
	req := job.ListJobsRequest{
		Location:   c.Query("location"),
		JobType:    c.Query("job_type"),
		SearchTerm: c.Query("search"),
		OrderBy:    c.Query("order_by"),
		OrderDir:   c.Query("order_dir"),
		Page:       c.QueryInt("page"),
		Limit:      c.QueryInt("limit"),
	}

	jobs, err := h.service.ListJobs(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetFeaturedJobs retrieves the newest postings
// GET /api/jobs/featured
func (h *Handlers) GetFeaturedJobs(c *fiber.Ctx) error {
	jobs, err := h.service.GetFeaturedJobs(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// SearchJobs searches postings by a free-text term
// GET /api/jobs/search
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	jobs, err := h.service.SearchJobs(
		c.Context(),
		c.Query("q"),
		c.QueryInt("page"),
		c.QueryInt("limit"),
	)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetMyJobs retrieves the authenticated caller's postings
// GET /api/jobs/mine
func (h *Handlers) GetMyJobs(c *fiber.Ctx) error {
	// Get auth context
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrUnauthenticated()
	}

	jobs, err := h.service.GetUserJobs(
		c.Context(),
		*authContext.UserID,
		c.QueryInt("page"),
		c.QueryInt("limit"),
	)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetMultipleJobs retrieves a batch of postings best-effort
// POST /api/jobs/batch
func (h *Handlers) GetMultipleJobs(c *fiber.Ctx) error {
	// Parse request body
	var req struct {
		JobIDs []kernel.JobID `json:"job_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return job.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	jobs, err := h.service.GetMultipleJobs(c.Context(), req.JobIDs, viewerID(c))
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJobWithRelated retrieves a posting plus related postings
// GET /api/jobs/:id/related
func (h *Handlers) GetJobWithRelated(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))

	resp, err := h.service.GetJobWithRelated(c.Context(), jobID, viewerID(c))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetJobPreview retrieves a lightweight card for a posting
// GET /api/jobs/:id/preview
func (h *Handlers) GetJobPreview(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))

	preview, err := h.service.GetJobPreview(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(preview)
}

// GetJobStats retrieves statistics for a posting
// GET /api/jobs/:id/stats
func (h *Handlers) GetJobStats(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))

	stats, err := h.service.GetJobStats(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// CountUserJobs counts the postings of a user
// GET /api/jobs/count/by-user/:userId
func (h *Handlers) CountUserJobs(c *fiber.Ctx) error {
	// Parse user ID from URL
	userID := kernel.UserID(c.Params("userId"))

	count, err := h.service.CountUserJobs(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user_id": userID,
		"count":   count,
	})
}

// UpdateJob applies a partial update to a posting
// PATCH /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	// Get auth context
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrUnauthenticated()
	}

	// Parse job ID from URL
	jobID := kernel.JobID(c.Params("id"))

	// Parse request body
	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	// Update job
	updatedJob, err := h.service.UpdateJob(c.Context(), jobID, req, *authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(updatedJob)
}

// DeleteJob deletes a posting
// DELETE /api/jobs/:id?force=true
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	// Get auth context
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrUnauthenticated()
	}

	// Parse job ID from URL
	jobID := kernel.JobID(c.Params("id"))

	// Delete job
	if err := h.service.DeleteJob(c.Context(), jobID, *authContext.UserID, c.QueryBool("force")); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// BulkDeleteJobs deletes several postings in one call
// POST /api/jobs/bulk/delete
func (h *Handlers) BulkDeleteJobs(c *fiber.Ctx) error {
	// Get auth context
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrUnauthenticated()
	}

	// Parse request body
	var req job.BulkDeleteJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.BulkDeleteJobs(c.Context(), req.JobIDs, *authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ============================================================================
// Helper Functions
// ============================================================================

// viewerID resolves the caller identity, empty for anonymous visitors.
func viewerID(c *fiber.Ctx) kernel.UserID {
	if authContext, ok := auth.GetAuthContext(c); ok && authContext.UserID != nil {
		return *authContext.UserID
	}
	return ""
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/jobs")

	// Read routes (anonymous allowed; identity picked up when present)
	api.Get("/",
		authMiddleware.Optional(),
		handlers.ListJobs,
	)

	api.Get("/featured",
		authMiddleware.Optional(),
		handlers.GetFeaturedJobs,
	)

	api.Get("/search",
		authMiddleware.Optional(),
		handlers.SearchJobs,
	)

	api.Get("/mine",
		authMiddleware.Authenticate(),
		handlers.GetMyJobs,
	)

	api.Get("/count/by-user/:userId",
		authMiddleware.Optional(),
		handlers.CountUserJobs,
	)

	api.Post("/batch",
		authMiddleware.Optional(),
		handlers.GetMultipleJobs,
	)

	api.Get("/:id",
		authMiddleware.Optional(),
		handlers.GetJobByID,
	)

	api.Get("/:id/preview",
		authMiddleware.Optional(),
		handlers.GetJobPreview,
	)

	api.Get("/:id/related",
		authMiddleware.Optional(),
		handlers.GetJobWithRelated,
	)

	api.Get("/:id/stats",
		authMiddleware.Optional(),
		handlers.GetJobStats,
	)

	// Write routes (authentication required)
	api.Post("/",
		authMiddleware.Authenticate(),
		handlers.CreateJob,
	)

	api.Patch("/:id",
		authMiddleware.Authenticate(),
		handlers.UpdateJob,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		handlers.DeleteJob,
	)

	// Bulk operations
	api.Post("/bulk/delete",
		authMiddleware.Authenticate(),
		handlers.BulkDeleteJobs,
	)
}
