package dto

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// CreateListingRequest creates a marketplace listing. Images may be URLs or
// data URLs; multipart uploads are appended by the controller.
type CreateListingRequest struct {
	Title       string   `json:"title" form:"title" binding:"required,notblank,max=200"`
	Description string   `json:"description" form:"description" binding:"max=5000"`
	Price       float64  `json:"price" form:"price" binding:"gte=0"`
	Category    string   `json:"category" form:"category" binding:"max=60"`
	Condition   string   `json:"condition" form:"condition" binding:"max=60"`
	Images      []string `json:"images" form:"images"`
}

// UpdateListingRequest edits a listing. Nil fields are left unchanged.
type UpdateListingRequest struct {
	Title       *string   `json:"title" binding:"omitempty,notblank,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Category    *string   `json:"category" binding:"omitempty,max=60"`
	Condition   *string   `json:"condition" binding:"omitempty,max=60"`
	Images      *[]string `json:"images"`
	// Status is checked by the service as well; only Available and Sold pass.
	Status *models.ListingStatus `json:"status"`
}

// SetListingStatusRequest changes only the status
type SetListingStatusRequest struct {
	Status models.ListingStatus `json:"status" binding:"required"`
}

// ListingFilterRequest filters the marketplace
type ListingFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=Available Sold"`
	SellerID string `form:"sellerId"`
}

// ListingResponse is a listing with its seller resolved
type ListingResponse struct {
	ID          string               `json:"id"`
	Seller      UserSummary          `json:"seller"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Price       float64              `json:"price"`
	Category    string               `json:"category,omitempty"`
	Condition   string               `json:"condition,omitempty"`
	Images      []string             `json:"images"`
	Status      models.ListingStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// NewListingResponse resolves a listing
func NewListingResponse(m models.MarketplaceItem, lookup UserLookup) ListingResponse {
	return ListingResponse{
		ID:          m.ID,
		Seller:      Summarize(lookup, m.SellerID),
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		Condition:   m.Condition,
		Images:      m.Images,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
	}
}
