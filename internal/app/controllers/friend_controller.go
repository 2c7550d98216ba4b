package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
)

// FriendController handles friendships and friend requests
type FriendController struct {
	friendService services.FriendService
}

// NewFriendController creates a new FriendController
func NewFriendController(friendService services.FriendService) *FriendController {
	return &FriendController{friendService: friendService}
}

// ListFriends godoc
// @Summary List the acting user's friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary}
// @Router /friends [get]
func (c *FriendController) ListFriends(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	friends, err := c.friendService.ListFriends(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(friends))
}

// Suggestions godoc
// @Summary People you may know
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum suggestions" default(5)
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary}
// @Router /friends/suggestions [get]
func (c *FriendController) Suggestions(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	users, err := c.friendService.Suggestions(ctx, userID, intQuery(ctx, "limit", 5))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// ListRequests godoc
// @Summary Pending friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FriendRequestsResponse}
// @Router /friends/requests [get]
func (c *FriendController) ListRequests(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	requests, err := c.friendService.ListRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// SendRequest godoc
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendFriendRequestRequest true "Target user"
// @Success 201 {object} dto.APIResponse{data=dto.FriendRequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Request to self"
// @Failure 409 {object} dto.ErrorResponse "Already friends or a request is pending"
// @Router /friends/requests [post]
func (c *FriendController) SendRequest(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.SendFriendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	request, err := c.friendService.SendFriendRequest(ctx, userID, req.ToUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// AcceptRequest godoc
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserSummary} "The new friend"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /friends/requests/{id}/accept [post]
func (c *FriendController) AcceptRequest(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	friend, err := c.friendService.AcceptFriendRequest(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage(friend, "Friend request accepted"))
}

// DeclineRequest godoc
// @Summary Decline a friend request
// @Tags friends
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204 "Declined"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /friends/requests/{id}/decline [post]
func (c *FriendController) DeclineRequest(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.friendService.DeclineFriendRequest(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CancelRequest godoc
// @Summary Cancel a sent friend request
// @Tags friends
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204 "Cancelled"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /friends/requests/{id} [delete]
func (c *FriendController) CancelRequest(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.friendService.CancelFriendRequest(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Unfriend godoc
// @Summary Remove a friend
// @Tags friends
// @Security BearerAuth
// @Param id path string true "Friend's user ID"
// @Success 204 "Removed"
// @Failure 404 {object} dto.ErrorResponse "Not a friend"
// @Router /friends/{id} [delete]
func (c *FriendController) Unfriend(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.friendService.Unfriend(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
