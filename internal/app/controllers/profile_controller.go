package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// ProfileController handles user profiles and settings
type ProfileController struct {
	profileService services.ProfileService
	images         imagedata.Encoder
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, images imagedata.Encoder) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		images:         images,
	}
}

// ListUsers godoc
// @Summary User directory
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name, major or email search"
// @Param role query string false "Student, Staff or Admin"
// @Param mentors query bool false "Only mentors"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary}
// @Router /users [get]
func (c *ProfileController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	users, err := c.profileService.ListUsers(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// GetProfile godoc
// @Summary Get a user's profile
// @Description Fields hidden by the user's profile visibility are omitted
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetProfile(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// GetMyProfile godoc
// @Summary Get the acting user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Router /me [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetProfile(ctx, userID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile godoc
// @Summary Update the acting user's profile
// @Description Accepts JSON or multipart. Multipart requests may carry avatar and cover image files.
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string false "Display name"
// @Param bio formData string false "Bio"
// @Param avatar formData file false "Avatar image"
// @Param cover formData file false "Cover image"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /me [patch]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	avatar, ok := uploadedImage(ctx, c.images, "avatar")
	if !ok {
		return
	}
	if avatar != "" {
		req.AvatarURL = &avatar
	}
	cover, ok := uploadedImage(ctx, c.images, "cover")
	if !ok {
		return
	}
	if cover != "" {
		req.CoverURL = &cover
	}

	profile, err := c.profileService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateSettings godoc
// @Summary Update settings
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Settings to change"
// @Success 200 {object} dto.APIResponse{data=models.UserSettings}
// @Router /me/settings [put]
func (c *ProfileController) UpdateSettings(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	settings, err := c.profileService.UpdateSettings(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage(settings, "Settings saved"))
}

// BecomeMentor godoc
// @Summary Become a mentor
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BecomeMentorRequest true "Areas of expertise"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 409 {object} dto.ErrorResponse "Already a mentor"
// @Router /me/mentor [post]
func (c *ProfileController) BecomeMentor(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.BecomeMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	profile, err := c.profileService.BecomeMentor(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}
