package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
)

// MessagingController handles conversations and messages
type MessagingController struct {
	messagingService services.MessagingService
}

// NewMessagingController creates a new MessagingController
func NewMessagingController(messagingService services.MessagingService) *MessagingController {
	return &MessagingController{messagingService: messagingService}
}

// ListConversations godoc
// @Summary List conversations
// @Description Conversations the acting user takes part in, most recently active first
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse}
// @Router /conversations [get]
func (c *MessagingController) ListConversations(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	conversations, err := c.messagingService.ListConversations(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations))
}

// UnreadTotal godoc
// @Summary Total unread messages
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=map[string]int}
// @Router /conversations/unread [get]
func (c *MessagingController) UnreadTotal(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	total, err := c.messagingService.UnreadTotal(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"unread": total}))
}

// CreateConversation godoc
// @Summary Start a conversation
// @Description A single other participant opens (or reuses) a 1:1 chat
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConversationRequest true "Participants"
// @Success 201 {object} dto.APIResponse{data=dto.ConversationResponse}
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Router /conversations [post]
func (c *MessagingController) CreateConversation(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	conversation, err := c.messagingService.CreateConversation(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(conversation))
}

// SelectConversation godoc
// @Summary Open a conversation
// @Description Returns the messages and resets the acting user's unread count
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} dto.APIResponse{data=dto.ConversationResponse}
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /conversations/{id} [get]
func (c *MessagingController) SelectConversation(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	conversation, err := c.messagingService.SelectConversation(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversation))
}

// SendMessage godoc
// @Summary Send a message
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /conversations/{id}/messages [post]
func (c *MessagingController) SendMessage(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	message, err := c.messagingService.SendMessage(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}
