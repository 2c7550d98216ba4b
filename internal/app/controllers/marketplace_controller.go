package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// MarketplaceController handles marketplace listings
type MarketplaceController struct {
	marketplaceService services.MarketplaceService
	images             imagedata.Encoder
}

// NewMarketplaceController creates a new MarketplaceController
func NewMarketplaceController(marketplaceService services.MarketplaceService, images imagedata.Encoder) *MarketplaceController {
	return &MarketplaceController{
		marketplaceService: marketplaceService,
		images:             images,
	}
}

// ListListings godoc
// @Summary Browse the marketplace
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param search query string false "Title and description search"
// @Param category query string false "Category"
// @Param status query string false "Available or Sold"
// @Param sellerId query string false "Seller"
// @Success 200 {object} dto.APIResponse{data=[]dto.ListingResponse}
// @Router /listings [get]
func (c *MarketplaceController) ListListings(ctx *gin.Context) {
	var filter dto.ListingFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	listings, err := c.marketplaceService.ListListings(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listings))
}

// CreateListing godoc
// @Summary Create a listing
// @Description Multipart requests may attach several image files; they are stored as data URLs
// @Tags marketplace
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param price formData number true "Price"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param condition formData string false "Condition"
// @Param files formData file false "Images"
// @Success 201 {object} dto.APIResponse{data=dto.ListingResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or image"
// @Router /listings [post]
func (c *MarketplaceController) CreateListing(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	if ctx.ContentType() == gin.MIMEMultipartPOSTForm {
		form, err := ctx.MultipartForm()
		if err != nil {
			middleware.HandleBindError(ctx, err)
			return
		}
		uploaded, err := c.images.EncodeFiles(form.File["files"])
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		req.Images = append(req.Images, uploaded...)
	}

	listing, err := c.marketplaceService.CreateListing(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(listing))
}

// GetListing godoc
// @Summary Get a listing
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListingResponse}
// @Failure 404 {object} dto.ErrorResponse "Listing not found"
// @Router /listings/{id} [get]
func (c *MarketplaceController) GetListing(ctx *gin.Context) {
	listing, err := c.marketplaceService.GetListing(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listing))
}

// UpdateListing godoc
// @Summary Update a listing
// @Description Seller only
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body dto.UpdateListingRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ListingResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the seller"
// @Failure 404 {object} dto.ErrorResponse "Listing not found"
// @Router /listings/{id} [patch]
func (c *MarketplaceController) UpdateListing(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	listing, err := c.marketplaceService.UpdateListing(ctx, userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listing))
}

// SetStatus godoc
// @Summary Mark a listing sold or available
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body dto.SetListingStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.ListingResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Not the seller"
// @Router /listings/{id}/status [put]
func (c *MarketplaceController) SetStatus(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.SetListingStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	listing, err := c.marketplaceService.SetStatus(ctx, userID, ctx.Param("id"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listing))
}

// DeleteListing godoc
// @Summary Delete a listing
// @Tags marketplace
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Listing not found"
// @Router /listings/{id} [delete]
func (c *MarketplaceController) DeleteListing(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	if err := c.marketplaceService.DeleteListing(ctx, userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
