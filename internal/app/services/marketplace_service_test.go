package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
)

func TestListingStatusIsAvailableOrSold(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMarketplaceService(env.deps)
	ctx := context.Background()

	item, err := svc.CreateListing(ctx, "u2", &dto.CreateListingRequest{Title: "Calculus textbook", Price: 45})
	require.NoError(t, err)
	assert.Equal(t, models.ListingAvailable, item.Status)
	assert.NotNil(t, item.Images)

	got := env.notificationsFor("u1")
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationMarketplace, got[0].Type)

	_, err = svc.SetStatus(ctx, "u2", item.ID, models.ListingStatus("Reserved"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidListingStatus)

	_, err = svc.SetStatus(ctx, "u1", item.ID, models.ListingSold)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	sold, err := svc.SetStatus(ctx, "u2", item.ID, models.ListingSold)
	require.NoError(t, err)
	assert.Equal(t, models.ListingSold, sold.Status)

	neg := -1.0
	_, err = svc.UpdateListing(ctx, "u2", item.ID, &dto.UpdateListingRequest{Price: &neg})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.CreateListing(ctx, "u2", &dto.CreateListingRequest{Title: "Lamp", Price: -3})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestListListingsFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMarketplaceService(env.deps)
	ctx := context.Background()

	_, err := svc.CreateListing(ctx, "u1", &dto.CreateListingRequest{Title: "Desk lamp", Category: "Furniture", Price: 10})
	require.NoError(t, err)
	bike, err := svc.CreateListing(ctx, "u2", &dto.CreateListingRequest{Title: "Road bike", Category: "Sports", Price: 120})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, "u2", bike.ID, models.ListingSold)
	require.NoError(t, err)

	all, err := svc.ListListings(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	avail, err := svc.ListListings(ctx, &dto.ListingFilterRequest{Status: string(models.ListingAvailable)})
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, "Desk lamp", avail[0].Title)

	bikes, err := svc.ListListings(ctx, &dto.ListingFilterRequest{Search: "BIKE"})
	require.NoError(t, err)
	require.Len(t, bikes, 1)
	assert.Equal(t, bike.ID, bikes[0].ID)

	require.NoError(t, svc.DeleteListing(ctx, "admin", bike.ID))
	_, err = svc.GetListing(ctx, bike.ID)
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
}
