package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// MarketplaceService defines the interface for marketplace listings
type MarketplaceService interface {
	CreateListing(ctx context.Context, actorID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error)
	UpdateListing(ctx context.Context, actorID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingResponse, error)
	SetStatus(ctx context.Context, actorID, listingID string, status models.ListingStatus) (*dto.ListingResponse, error)
	DeleteListing(ctx context.Context, actorID, listingID string) error
	GetListing(ctx context.Context, listingID string) (*dto.ListingResponse, error)
	ListListings(ctx context.Context, filter *dto.ListingFilterRequest) ([]dto.ListingResponse, error)
}

// marketplaceServiceImpl implements MarketplaceService
type marketplaceServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewMarketplaceService creates a new MarketplaceService
func NewMarketplaceService(deps *Deps) MarketplaceService {
	return &marketplaceServiceImpl{deps: deps, logger: deps.component("marketplace_service")}
}

// CreateListing lists an item as Available. Listings by anyone other than
// the current user notify the current user.
func (s *marketplaceServiceImpl) CreateListing(ctx context.Context, actorID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("title", req.Title).Msg("Creating listing")

	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if req.Price < 0 {
		return nil, apperrors.NewBadRequestError("price must not be negative")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSaveListing)

	out := s.deps.newOutbox()
	var resp dto.ListingResponse
	err := s.deps.Store.Update("create_listing", func(st *store.State) error {
		seller, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		images := make([]string, 0, len(req.Images))
		images = append(images, req.Images...)
		item := models.MarketplaceItem{
			ID:          s.deps.IDs.ID("mk"),
			SellerID:    seller.ID,
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			Condition:   req.Condition,
			Images:      images,
			Status:      models.ListingAvailable,
			CreatedAt:   s.deps.now(),
		}
		st.Listings.Prepend(item)

		if seller.ID != st.CurrentUserID {
			out.push(st, st.CurrentUserID, models.NotificationMarketplace,
				fmt.Sprintf("%s listed %q for $%.2f", seller.Name, item.Title, item.Price), item.ID)
		}
		resp = dto.NewListingResponse(item, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)

	s.logger.Info().Str("listingID", resp.ID).Msg("Listing created")
	return &resp, nil
}

// UpdateListing edits a listing. Only the seller or an admin may edit, and
// the status may only be Available or Sold.
func (s *marketplaceServiceImpl) UpdateListing(ctx context.Context, actorID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("listingID", listingID).Msg("Updating listing")

	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.NewValidationError(apperrors.ErrInvalidListingStatus)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, apperrors.NewBadRequestError("price must not be negative")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSaveListing)

	var resp dto.ListingResponse
	err := s.deps.Store.Update("update_listing", func(st *store.State) error {
		item, err := s.editable(st, actorID, listingID)
		if err != nil {
			return err
		}
		if req.Title != nil {
			item.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			item.Description = *req.Description
		}
		if req.Price != nil {
			item.Price = *req.Price
		}
		if req.Category != nil {
			item.Category = *req.Category
		}
		if req.Condition != nil {
			item.Condition = *req.Condition
		}
		if req.Images != nil {
			item.Images = append([]string{}, (*req.Images)...)
		}
		if req.Status != nil {
			item.Status = *req.Status
		}
		st.Listings.Replace(item)
		resp = dto.NewListingResponse(item, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetStatus marks a listing Available or Sold
func (s *marketplaceServiceImpl) SetStatus(ctx context.Context, actorID, listingID string, status models.ListingStatus) (*dto.ListingResponse, error) {
	return s.UpdateListing(ctx, actorID, listingID, &dto.UpdateListingRequest{Status: &status})
}

// DeleteListing removes a listing
func (s *marketplaceServiceImpl) DeleteListing(ctx context.Context, actorID, listingID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("listingID", listingID).Msg("Deleting listing")

	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpSaveListing)

	return s.deps.Store.Update("delete_listing", func(st *store.State) error {
		if _, err := s.editable(st, actorID, listingID); err != nil {
			return err
		}
		st.Listings.Remove(listingID)
		return nil
	})
}

func (s *marketplaceServiceImpl) editable(st *store.State, actorID, listingID string) (models.MarketplaceItem, error) {
	actor, err := auth.ActorIn(st, actorID)
	if err != nil {
		return models.MarketplaceItem{}, err
	}
	item, ok := st.Listings.Get(listingID)
	if !ok {
		return models.MarketplaceItem{}, apperrors.NotFound(apperrors.ErrListingNotFound)
	}
	if err := auth.ValidateOwnership(actor, item.SellerID); err != nil {
		return models.MarketplaceItem{}, err
	}
	return item, nil
}

// GetListing returns a single listing
func (s *marketplaceServiceImpl) GetListing(ctx context.Context, listingID string) (*dto.ListingResponse, error) {
	var (
		resp dto.ListingResponse
		ok   bool
	)
	s.deps.Store.View(func(st *store.State) {
		var item models.MarketplaceItem
		if item, ok = st.Listings.Get(listingID); ok {
			resp = dto.NewListingResponse(item, lookupIn(st))
		}
	})
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrListingNotFound)
	}
	return &resp, nil
}

// ListListings filters the marketplace by category, status, seller and free
// text over title and description.
func (s *marketplaceServiceImpl) ListListings(ctx context.Context, filter *dto.ListingFilterRequest) ([]dto.ListingResponse, error) {
	if filter == nil {
		filter = &dto.ListingFilterRequest{}
	}
	s.logger.Debug().Interface("filter", filter).Msg("Listing marketplace items")

	var out []dto.ListingResponse
	s.deps.Store.View(func(st *store.State) {
		items := st.Listings.Filter(func(m models.MarketplaceItem) bool {
			if filter.Category != "" && !strings.EqualFold(m.Category, filter.Category) {
				return false
			}
			if filter.Status != "" && string(m.Status) != filter.Status {
				return false
			}
			if filter.SellerID != "" && m.SellerID != filter.SellerID {
				return false
			}
			if filter.Search != "" && !containsFold(m.Title, filter.Search) && !containsFold(m.Description, filter.Search) {
				return false
			}
			return true
		})
		lookup := lookupIn(st)
		out = make([]dto.ListingResponse, 0, len(items))
		for _, m := range items {
			out = append(out, dto.NewListingResponse(m, lookup))
		}
	})
	return out, nil
}
