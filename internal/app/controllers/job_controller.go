package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/services"
	"github.com/selin/campushub/internal/middleware"
)

// JobController handles job board endpoints
type JobController struct {
	jobService services.JobService
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService) *JobController {
	return &JobController{jobService: jobService}
}

// isAdmin reports whether the authenticated caller holds the admin role.
func isAdmin(ctx *gin.Context) bool {
	role, exists := ctx.Get(middleware.ContextRole)
	if !exists {
		return false
	}
	roleStr, ok := role.(string)
	return ok && roleStr == string(models.RoleAdmin)
}

// GetAllJobs handles GET /jobs. Students see open postings only; admins see
// everything, optionally filtered by status.
func (c *JobController) GetAllJobs(ctx *gin.Context) {
	var filter dto.JobFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.jobService.GetAllJobs(ctx.Request.Context(), &filter, isAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetJobByID handles GET /jobs/:id
func (c *JobController) GetJobByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.jobService.GetJobByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// CreateJob handles POST /jobs (admin only)
func (c *JobController) CreateJob(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.jobService.CreateJob(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Job posted"))
}

// UpdateJob handles PUT /jobs/:id (admin only)
func (c *JobController) UpdateJob(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.jobService.UpdateJob(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Job updated"))
}

// DeleteJob handles DELETE /jobs/:id (admin only)
func (c *JobController) DeleteJob(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.jobService.DeleteJob(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Job deleted"))
}

// Apply handles POST /jobs/:id/apply
func (c *JobController) Apply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.jobService.Apply(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Application submitted"))
}

// GetMyApplications handles GET /jobs/user/my-applications
func (c *JobController) GetMyApplications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	apps, err := c.jobService.GetMyApplications(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(apps, ""))
}

// GetJobApplicants handles GET /jobs/:id/applications (admin only)
func (c *JobController) GetJobApplicants(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	apps, err := c.jobService.GetJobApplicants(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(apps, ""))
}

// UpdateApplicationStatus handles PATCH /jobs/applications/:applicationId (admin only)
func (c *JobController) UpdateApplicationStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	err := c.jobService.UpdateApplicationStatus(ctx.Request.Context(), id, models.ApplicationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Application status updated"))
}
