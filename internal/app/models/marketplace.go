package models

import "time"

// ListingStatus is the sale state of a marketplace item. Only Available and
// Sold exist.
type ListingStatus string

const (
	ListingAvailable ListingStatus = "Available"
	ListingSold      ListingStatus = "Sold"
)

// Valid reports whether s is Available or Sold
func (s ListingStatus) Valid() bool {
	return s == ListingAvailable || s == ListingSold
}

// MarketplaceItem is a listing in the student marketplace
type MarketplaceItem struct {
	ID          string        `json:"id"`
	SellerID    string        `json:"sellerId"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Category    string        `json:"category,omitempty"`
	Condition   string        `json:"condition,omitempty"`
	Images      []string      `json:"images"`
	Status      ListingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// GetID implements Entity
func (m MarketplaceItem) GetID() string { return m.ID }
