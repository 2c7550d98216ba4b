package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/app/toast"
	"github.com/yigit/campusbuzz/internal/middleware"
)

// NotificationController handles the notification list and the toast
type NotificationController struct {
	notificationService services.NotificationService
	board               *toast.Board
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService, board *toast.Board) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		board:               board,
	}
}

// ListNotifications godoc
// @Summary List notifications
// @Description Newest first, with the unread count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unreadOnly query bool false "Only unread notifications"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse}
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var filter dto.NotificationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	list, err := c.notificationService.List(ctx, userID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list))
}

// UnreadCount godoc
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=map[string]int}
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	count, err := c.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"unread": count}))
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=models.Notification}
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	notification, err := c.notificationService.MarkRead(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notification))
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MarkAllReadResponse}
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	result, err := c.notificationService.MarkAllRead(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetToast godoc
// @Summary Current toast
// @Description The popup announcing the acting user's latest notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=toast.Snapshot}
// @Router /toast [get]
func (c *NotificationController) GetToast(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.board.Current(userID)))
}

// CloseToast godoc
// @Summary Dismiss the toast
// @Description Starts the fade-out immediately
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=toast.Snapshot}
// @Router /toast [delete]
func (c *NotificationController) CloseToast(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	c.board.Close(userID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.board.Current(userID)))
}
