package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/campusbuzz/internal/pkg/auth"
	"github.com/yigit/campusbuzz/internal/store"
)

func strPtr(s string) *string { return &s }

func withPrivateProfile(id string, visibility models.ProfileVisibility, friends ...string) func(st *store.State) {
	return func(st *store.State) {
		u, _ := st.Users.Get(id)
		u.Bio = "Secret bio"
		u.Email = id + "@campus.edu"
		u.Settings.ProfileVisibility = visibility
		u.Friends = friends
		st.Users.Replace(u)
	}
}

func TestGetProfileVisibility(t *testing.T) {
	tests := []struct {
		name       string
		visibility models.ProfileVisibility
		friends    []string
		viewer     string
		wantBio    bool
	}{
		{name: "public", visibility: models.VisibilityPublic, viewer: "u1", wantBio: true},
		{name: "friends only, stranger", visibility: models.VisibilityFriends, viewer: "u1", wantBio: false},
		{name: "friends only, friend", visibility: models.VisibilityFriends, friends: []string{"u1"}, viewer: "u1", wantBio: true},
		{name: "private, stranger", visibility: models.VisibilityPrivate, viewer: "u1", wantBio: false},
		{name: "private, admin", visibility: models.VisibilityPrivate, viewer: "admin", wantBio: true},
		{name: "private, owner", visibility: models.VisibilityPrivate, viewer: "u2", wantBio: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, withPrivateProfile("u2", tt.visibility, tt.friends...))
			svc := NewProfileService(env.deps)

			profile, err := svc.GetProfile(context.Background(), tt.viewer, "u2")
			require.NoError(t, err)
			assert.Equal(t, "Priya Shah", profile.Name)
			if tt.wantBio {
				assert.Equal(t, "Secret bio", profile.Bio)
			} else {
				assert.Empty(t, profile.Bio)
				assert.Empty(t, profile.Email)
			}
		})
	}
}

func TestUpdateProfileAndSettings(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.deps)
	ctx := context.Background()

	profile, err := svc.UpdateProfile(ctx, "u1", &dto.UpdateProfileRequest{Name: strPtr(" Alex M. "), Major: strPtr("CS")})
	require.NoError(t, err)
	assert.Equal(t, "Alex M.", profile.Name)
	assert.Equal(t, "CS", profile.Major)

	_, err = svc.UpdateProfile(ctx, "u1", &dto.UpdateProfileRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Equal(t, "Alex M.", env.user(t, "u1").Name)

	dark := true
	settings, err := svc.UpdateSettings(ctx, "u1", &dto.UpdateSettingsRequest{DarkMode: &dark, ProfileVisibility: strPtr("private")})
	require.NoError(t, err)
	assert.True(t, settings.DarkMode)
	assert.Equal(t, models.VisibilityPrivate, env.user(t, "u1").Settings.ProfileVisibility)

	_, err = svc.UpdateSettings(ctx, "u1", &dto.UpdateSettingsRequest{ProfileVisibility: strPtr("everyone")})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestBecomeMentorAndDirectory(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProfileService(env.deps)
	ctx := context.Background()

	_, err := svc.BecomeMentor(ctx, "u2", &dto.BecomeMentorRequest{Expertise: []string{" "}})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	profile, err := svc.BecomeMentor(ctx, "u2", &dto.BecomeMentorRequest{Expertise: []string{"Calculus", ""}})
	require.NoError(t, err)
	assert.True(t, profile.IsMentor)
	assert.Equal(t, []string{"Calculus"}, env.user(t, "u2").MentorExpertise)

	mentors, err := svc.ListUsers(ctx, &dto.UserFilterRequest{Mentors: true})
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "u2", mentors[0].ID)

	staff, err := svc.ListUsers(ctx, &dto.UserFilterRequest{Role: "Staff"})
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "u3", staff[0].ID)

	found, err := svc.ListUsers(ctx, &dto.UserFilterRequest{Search: "priya"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestStartSession(t *testing.T) {
	env := newTestEnv(t, withSuspended("u2"))
	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "campusbuzz.test",
	})
	svc := NewSessionService(env.deps, jwtService)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.User.ID, "empty id selects the current user")
	assert.Equal(t, "Bearer", session.TokenType)

	claims, err := jwtService.ValidateAndExtractClaims(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	_, err = svc.StartSession(ctx, "u2")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	_, err = svc.StartSession(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
