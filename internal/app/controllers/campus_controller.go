package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// CampusController handles the schedule, todos, library and lost and found
type CampusController struct {
	campusService services.CampusService
	images        imagedata.Encoder
}

// NewCampusController creates a new CampusController
func NewCampusController(campusService services.CampusService, images imagedata.Encoder) *CampusController {
	return &CampusController{
		campusService: campusService,
		images:        images,
	}
}

// --- Schedule ---

// ListSchedule godoc
// @Summary The acting user's weekly schedule
// @Tags campus
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ScheduleItem}
// @Router /schedule [get]
func (c *CampusController) ListSchedule(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	items, err := c.campusService.ListSchedule(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// CreateScheduleItem godoc
// @Summary Add a class to the schedule
// @Tags campus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleItemRequest true "Schedule item"
// @Success 201 {object} dto.APIResponse{data=models.ScheduleItem}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /schedule [post]
func (c *CampusController) CreateScheduleItem(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.ScheduleItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	item, err := c.campusService.CreateScheduleItem(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item))
}

// UpdateScheduleItem godoc
// @Summary Replace a schedule item
// @Tags campus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule item ID"
// @Param request body dto.ScheduleItemRequest true "Schedule item"
// @Success 200 {object} dto.APIResponse{data=models.ScheduleItem}
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /schedule/{id} [put]
func (c *CampusController) UpdateScheduleItem(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.ScheduleItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	item, err := c.campusService.UpdateScheduleItem(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// DeleteScheduleItem godoc
// @Summary Remove a schedule item
// @Tags campus
// @Security BearerAuth
// @Param id path string true "Schedule item ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /schedule/{id} [delete]
func (c *CampusController) DeleteScheduleItem(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.campusService.DeleteScheduleItem(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// --- Todos ---

// ListTodos godoc
// @Summary The acting user's todos
// @Tags campus
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.TodoItem}
// @Router /todos [get]
func (c *CampusController) ListTodos(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	todos, err := c.campusService.ListTodos(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(todos))
}

// CreateTodo godoc
// @Summary Add a todo
// @Tags campus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TodoRequest true "Todo"
// @Success 201 {object} dto.APIResponse{data=models.TodoItem}
// @Router /todos [post]
func (c *CampusController) CreateTodo(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.TodoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	todo, err := c.campusService.CreateTodo(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(todo))
}

// ToggleTodo godoc
// @Summary Toggle a todo's completion
// @Tags campus
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} dto.APIResponse{data=models.TodoItem}
// @Failure 404 {object} dto.ErrorResponse "Todo not found"
// @Router /todos/{id}/toggle [post]
func (c *CampusController) ToggleTodo(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	todo, err := c.campusService.ToggleTodo(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(todo))
}

// DeleteTodo godoc
// @Summary Delete a todo
// @Tags campus
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Todo not found"
// @Router /todos/{id} [delete]
func (c *CampusController) DeleteTodo(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.campusService.DeleteTodo(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// --- Library ---

// ListLibrary godoc
// @Summary Search the library catalog
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param search query string false "Title or author search"
// @Param type query string false "Book, Journal or Digital"
// @Param available query bool false "Availability filter"
// @Success 200 {object} dto.APIResponse{data=[]models.LibraryResource}
// @Router /library [get]
func (c *CampusController) ListLibrary(ctx *gin.Context) {
	var filter dto.LibraryFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resources, err := c.campusService.ListLibrary(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// CreateLibraryResource godoc
// @Summary Add a catalog entry
// @Description Staff and admins only
// @Tags library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LibraryResourceRequest true "Resource"
// @Success 201 {object} dto.APIResponse{data=models.LibraryResource}
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Router /library [post]
func (c *CampusController) CreateLibraryResource(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.LibraryResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resource, err := c.campusService.CreateLibraryResource(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// UpdateLibraryResource godoc
// @Summary Replace a catalog entry
// @Tags library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body dto.LibraryResourceRequest true "Resource"
// @Success 200 {object} dto.APIResponse{data=models.LibraryResource}
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /library/{id} [put]
func (c *CampusController) UpdateLibraryResource(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.LibraryResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resource, err := c.campusService.UpdateLibraryResource(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// DeleteLibraryResource godoc
// @Summary Remove a catalog entry
// @Tags library
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Router /library/{id} [delete]
func (c *CampusController) DeleteLibraryResource(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.campusService.DeleteLibraryResource(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ToggleCheckout godoc
// @Summary Check a resource out or back in
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=models.LibraryResource}
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /library/{id}/checkout [post]
func (c *CampusController) ToggleCheckout(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	resource, err := c.campusService.ToggleCheckout(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// --- Lost and found ---

// ListLostAndFound godoc
// @Summary Lost and found board
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param includeResolved query bool false "Include resolved reports"
// @Success 200 {object} dto.APIResponse{data=[]dto.LostFoundResponse}
// @Router /lost-found [get]
func (c *CampusController) ListLostAndFound(ctx *gin.Context) {
	items, err := c.campusService.ListLostAndFound(ctx, ctx.Query("includeResolved") == "true")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// ReportLostAndFound godoc
// @Summary Report a lost or found item
// @Tags lost-found
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param kind formData string true "lost or found"
// @Param location formData string false "Where"
// @Param image formData file false "Photo"
// @Success 201 {object} dto.APIResponse{data=dto.LostFoundResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /lost-found [post]
func (c *CampusController) ReportLostAndFound(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.LostFoundRequest
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

	item, err := c.campusService.ReportLostAndFound(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item))
}

// ResolveLostAndFound godoc
// @Summary Mark a report resolved
// @Tags lost-found
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.LostFoundResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the reporter"
// @Router /lost-found/{id}/resolve [post]
func (c *CampusController) ResolveLostAndFound(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	item, err := c.campusService.ResolveLostAndFound(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// DeleteLostAndFound godoc
// @Summary Delete a report
// @Tags lost-found
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Router /lost-found/{id} [delete]
func (c *CampusController) DeleteLostAndFound(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.campusService.DeleteLostAndFound(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
