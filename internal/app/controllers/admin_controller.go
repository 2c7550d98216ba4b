package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/helpers"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// AdminController handles the admin dashboard, user management and the
// landing page hero slides
type AdminController struct {
	adminService services.AdminService
	images       imagedata.Encoder
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, images imagedata.Encoder) *AdminController {
	return &AdminController{
		adminService: adminService,
		images:       images,
	}
}

// Dashboard godoc
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.adminService.Dashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// ListUsers godoc
// @Summary All users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 20, max: 100)" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.Page[dto.AdminUserResponse]}
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	users, err := c.adminService.ListUsers(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(helpers.Paginate(users, page, pageSize)))
}

// SetUserStatus godoc
// @Summary Suspend or reactivate a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.SetUserStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUserResponse}
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/status [put]
func (c *AdminController) SetUserStatus(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.SetUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.adminService.SetUserStatus(ctx, userID, ctx.Param("id"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// SetUserRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.SetUserRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUserResponse}
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/role [put]
func (c *AdminController) SetUserRole(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.SetUserRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.adminService.SetUserRole(ctx, userID, ctx.Param("id"), req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// DeleteUser godoc
// @Summary Delete a user and everything they own
// @Tags admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListHeroSlides godoc
// @Summary Landing page hero slides
// @Description Public; ordered by display order
// @Tags hero-slides
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.HeroSlide}
// @Router /hero-slides [get]
func (c *AdminController) ListHeroSlides(ctx *gin.Context) {
	slides, err := c.adminService.ListHeroSlides(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(slides))
}

// CreateHeroSlide godoc
// @Summary Add a hero slide
// @Tags hero-slides
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param subtitle formData string false "Subtitle"
// @Param linkUrl formData string false "Link"
// @Param order formData int false "Display order"
// @Param image formData file false "Slide image"
// @Success 201 {object} dto.APIResponse{data=models.HeroSlide}
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /admin/hero-slides [post]
func (c *AdminController) CreateHeroSlide(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.HeroSlideRequest
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

	slide, err := c.adminService.CreateHeroSlide(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(slide))
}

// UpdateHeroSlide godoc
// @Summary Replace a hero slide
// @Tags hero-slides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slide ID"
// @Param request body dto.HeroSlideRequest true "Slide"
// @Success 200 {object} dto.APIResponse{data=models.HeroSlide}
// @Failure 404 {object} dto.ErrorResponse "Slide not found"
// @Router /admin/hero-slides/{id} [put]
func (c *AdminController) UpdateHeroSlide(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.HeroSlideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	slide, err := c.adminService.UpdateHeroSlide(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(slide))
}

// DeleteHeroSlide godoc
// @Summary Delete a hero slide
// @Tags hero-slides
// @Security BearerAuth
// @Param id path string true "Slide ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Slide not found"
// @Router /admin/hero-slides/{id} [delete]
func (c *AdminController) DeleteHeroSlide(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.adminService.DeleteHeroSlide(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ReorderHeroSlides godoc
// @Summary Reorder hero slides
// @Description The body must list every slide id exactly once
// @Tags hero-slides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReorderHeroSlidesRequest true "Slide ids in display order"
// @Success 200 {object} dto.APIResponse{data=[]models.HeroSlide}
// @Failure 400 {object} dto.ErrorResponse "Ids do not match the slides"
// @Router /admin/hero-slides/order [put]
func (c *AdminController) ReorderHeroSlides(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.ReorderHeroSlidesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	slides, err := c.adminService.ReorderHeroSlides(ctx, userID, req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(slides))
}
