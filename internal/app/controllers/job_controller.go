package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/helpers"
)

// JobController handles the job board and polls
type JobController struct {
	jobService  services.JobService
	pollService services.PollService
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService, pollService services.PollService) *JobController {
	return &JobController{
		jobService:  jobService,
		pollService: pollService,
	}
}

// ListJobs godoc
// @Summary Job board
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param search query string false "Title or company search"
// @Param type query string false "Full-time, Part-time or Internship"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 20, max: 100)" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.Page[models.Job]}
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	var filter dto.JobFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	jobs, err := c.jobService.ListJobs(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(helpers.Paginate(jobs, page, pageSize)))
}

// GetJob godoc
// @Summary Get a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	job, err := c.jobService.GetJob(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job))
}

// CreateJob godoc
// @Summary Post a job
// @Description Staff and admins only
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobRequest true "Job posting"
// @Success 201 {object} dto.APIResponse{data=models.Job}
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	job, err := c.jobService.CreateJob(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(job))
}

// UpdateJob godoc
// @Summary Replace a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body dto.JobRequest true "Job posting"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	job, err := c.jobService.UpdateJob(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job))
}

// DeleteJob godoc
// @Summary Delete a job posting
// @Tags jobs
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Router /jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.jobService.DeleteJob(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListPolls godoc
// @Summary List polls
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PollResponse}
// @Router /polls [get]
func (c *JobController) ListPolls(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	polls, err := c.pollService.ListPolls(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(polls))
}

// CreatePoll godoc
// @Summary Create a poll
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePollRequest true "Question and options"
// @Success 201 {object} dto.APIResponse{data=dto.PollResponse}
// @Router /polls [post]
func (c *JobController) CreatePoll(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreatePollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	poll, err := c.pollService.CreatePoll(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(poll))
}

// Vote godoc
// @Summary Vote in a poll
// @Description Voting for the current choice again retracts the vote; another option moves it
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Param request body dto.VoteRequest true "Option"
// @Success 200 {object} dto.APIResponse{data=dto.PollResponse}
// @Failure 404 {object} dto.ErrorResponse "Poll or option not found"
// @Failure 409 {object} dto.ErrorResponse "Poll closed"
// @Router /polls/{id}/vote [post]
func (c *JobController) Vote(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	poll, err := c.pollService.Vote(ctx, userID, ctx.Param("id"), req.OptionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(poll))
}

// ClosePoll godoc
// @Summary Close a poll
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Success 200 {object} dto.APIResponse{data=dto.PollResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /polls/{id}/close [post]
func (c *JobController) ClosePoll(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	poll, err := c.pollService.ClosePoll(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(poll))
}
