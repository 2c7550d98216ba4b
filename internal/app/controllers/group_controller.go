package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// GroupController handles groups and mentorship communities
type GroupController struct {
	groupService      services.GroupService
	mentorshipService services.MentorshipService
	images            imagedata.Encoder
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService, mentorshipService services.MentorshipService, images imagedata.Encoder) *GroupController {
	return &GroupController{
		groupService:      groupService,
		mentorshipService: mentorshipService,
		images:            images,
	}
}

// ListGroups godoc
// @Summary List groups
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param mine query bool false "Only groups the acting user belongs to"
// @Success 200 {object} dto.APIResponse{data=[]dto.GroupResponse}
// @Router /groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	groups, err := c.groupService.ListGroups(ctx, userID, ctx.Query("mine") == "true")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups))
}

// CreateGroup godoc
// @Summary Create a group
// @Description The creator becomes the first member and admin
// @Tags groups
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Group name"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param image formData file false "Group image"
// @Success 201 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	image, ok := uploadedImage(ctx, c.images, "image")
	if !ok {
		return
	}
	if image != "" {
		req.ImageURL = image
	}

	group, err := c.groupService.CreateGroup(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(group))
}

// GetGroup godoc
// @Summary Get a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	group, err := c.groupService.GetGroup(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}

// DeleteGroup godoc
// @Summary Delete a group
// @Description Group admins and site admins only
// @Tags groups
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.groupService.DeleteGroup(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// JoinGroup godoc
// @Summary Join a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.MembershipResponse}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 409 {object} dto.ErrorResponse "Mentorship communities are joined by request"
// @Router /groups/{id}/join [post]
func (c *GroupController) JoinGroup(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	membership, err := c.groupService.JoinGroup(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(membership))
}

// LeaveGroup godoc
// @Summary Leave a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.MembershipResponse}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 409 {object} dto.ErrorResponse "Mentors cannot leave their own community"
// @Router /groups/{id}/leave [post]
func (c *GroupController) LeaveGroup(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	membership, err := c.groupService.LeaveGroup(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(membership))
}

// ToggleMembership godoc
// @Summary Join or leave a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.MembershipResponse}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 409 {object} dto.ErrorResponse "Mentorship community membership is managed by its mentor"
// @Router /groups/{id}/membership [post]
func (c *GroupController) ToggleMembership(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	membership, err := c.groupService.ToggleMembership(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(membership))
}

// ListMentors godoc
// @Summary Mentor directory
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorResponse}
// @Router /mentors [get]
func (c *GroupController) ListMentors(ctx *gin.Context) {
	mentors, err := c.mentorshipService.ListMentors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(mentors))
}

// CreateCommunity godoc
// @Summary Create the acting mentor's community
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMentorshipCommunityRequest true "Community"
// @Success 201 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a mentor"
// @Failure 409 {object} dto.ErrorResponse "Community already exists"
// @Router /mentorship/community [post]
func (c *GroupController) CreateCommunity(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateMentorshipCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	group, err := c.mentorshipService.CreateCommunity(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(group))
}

// ListMentorshipRequests godoc
// @Summary Mentorship requests
// @Description Incoming requests for mentors and outgoing requests for everyone
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestsResponse}
// @Router /mentorship/requests [get]
func (c *GroupController) ListMentorshipRequests(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	requests, err := c.mentorshipService.ListRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// SendMentorshipRequest godoc
// @Summary Ask a mentor for mentorship
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMentorshipRequestRequest true "Mentor and community"
// @Success 201 {object} dto.APIResponse{data=dto.MentorshipRequestResponse}
// @Failure 409 {object} dto.ErrorResponse "Already requested or already a mentee"
// @Router /mentorship/requests [post]
func (c *GroupController) SendMentorshipRequest(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.SendMentorshipRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	request, err := c.mentorshipService.SendRequest(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// AcceptMentorshipRequest godoc
// @Summary Accept a mentorship request
// @Description The requester joins the mentor's community
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse}
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /mentorship/requests/{id}/accept [post]
func (c *GroupController) AcceptMentorshipRequest(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	request, err := c.mentorshipService.AcceptRequest(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}

// DeclineMentorshipRequest godoc
// @Summary Decline a mentorship request
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse}
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /mentorship/requests/{id}/decline [post]
func (c *GroupController) DeclineMentorshipRequest(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	request, err := c.mentorshipService.DeclineRequest(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}

// RemoveMentee godoc
// @Summary Remove a mentee from the acting mentor's community
// @Tags mentorship
// @Security BearerAuth
// @Param id path string true "Mentee user ID"
// @Success 204 "Removed"
// @Failure 404 {object} dto.ErrorResponse "Not a mentee"
// @Router /mentorship/mentees/{id} [delete]
func (c *GroupController) RemoveMentee(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.mentorshipService.RemoveMentee(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
