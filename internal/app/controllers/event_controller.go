package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// EventController handles campus events
type EventController struct {
	eventService services.EventService
	images       imagedata.Encoder
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, images imagedata.Encoder) *EventController {
	return &EventController{
		eventService: eventService,
		images:       images,
	}
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter"
// @Param upcoming query bool false "Only events that have not ended"
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse}
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var filter dto.EventFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	events, err := c.eventService.ListEvents(ctx, userID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// CreateEvent godoc
// @Summary Create an event
// @Description The organizer attends automatically
// @Tags events
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param startTime formData string true "Start (RFC 3339)"
// @Param endTime formData string true "End (RFC 3339)"
// @Param image formData file false "Event image"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
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

	event, err := c.eventService.CreateEvent(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Organizer or admin only
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [patch]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RSVP godoc
// @Summary Toggle attendance
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RSVPResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/rsvp [post]
func (c *EventController) RSVP(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	rsvp, err := c.eventService.RSVP(ctx, userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rsvp))
}
