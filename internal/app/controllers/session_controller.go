package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
)

// SessionController issues session tokens for seed users
type SessionController struct {
	sessionService *services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// StartSession godoc
// @Summary Start a session
// @Description Issues a session token for one of the seeded users. There are no passwords; picking a user is enough.
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "User to act as"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session started"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Account suspended"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /session [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	var req dto.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	session, err := c.sessionService.StartSession(ctx, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

// CurrentUserSession godoc
// @Summary Start a session as the default user
// @Description Issues a session token for the configured current user
// @Tags session
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session started"
// @Router /session/default [post]
func (c *SessionController) CurrentUserSession(ctx *gin.Context) {
	session, err := c.sessionService.StartSession(ctx, "")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}
