package services

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// AdminService defines the interface for the admin console
type AdminService interface {
	Dashboard(ctx context.Context, actorID string) (*dto.DashboardResponse, error)
	ListUsers(ctx context.Context, actorID string) ([]dto.AdminUserResponse, error)
	SetUserStatus(ctx context.Context, actorID, userID string, status models.UserStatus) (*dto.AdminUserResponse, error)
	SetUserRole(ctx context.Context, actorID, userID string, role models.RoleType) (*dto.AdminUserResponse, error)
	DeleteUser(ctx context.Context, actorID, userID string) error

	ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error)
	CreateHeroSlide(ctx context.Context, actorID string, req *dto.HeroSlideRequest) (*models.HeroSlide, error)
	UpdateHeroSlide(ctx context.Context, actorID, slideID string, req *dto.HeroSlideRequest) (*models.HeroSlide, error)
	DeleteHeroSlide(ctx context.Context, actorID, slideID string) error
	ReorderHeroSlides(ctx context.Context, actorID string, ids []string) ([]models.HeroSlide, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(deps *Deps) AdminService {
	return &adminServiceImpl{deps: deps, logger: deps.component("admin_service")}
}

// requireAdmin checks the actor inside an update
func requireAdmin(st *store.State, actorID string) (models.User, error) {
	actor, err := auth.ActorIn(st, actorID)
	if err != nil {
		return models.User{}, err
	}
	if !actor.IsAdmin() {
		return models.User{}, apperrors.NewForbiddenError("only admins can perform this action")
	}
	return actor, nil
}

// admin runs an admin-only mutation
func (s *adminServiceImpl) admin(ctx context.Context, actorID, op string, fn func(st *store.State) error) error {
	if s.deps.Authz != nil {
		if _, err := s.deps.Authz.ValidateAdmin(actorID); err != nil {
			return err
		}
	}
	s.deps.delay(ctx, latency.OpAdmin)
	return s.deps.Store.Update(op, func(st *store.State) error {
		if _, err := requireAdmin(st, actorID); err != nil {
			return err
		}
		return fn(st)
	})
}

// view runs an admin-only read
func (s *adminServiceImpl) view(actorID string, fn func(st *store.State)) error {
	var err error
	s.deps.Store.View(func(st *store.State) {
		if _, err = requireAdmin(st, actorID); err == nil {
			fn(st)
		}
	})
	return err
}

// Dashboard summarizes the store
func (s *adminServiceImpl) Dashboard(ctx context.Context, actorID string) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{}
	err := s.view(actorID, func(st *store.State) {
		resp.Counts = st.Counts()
		resp.ActiveUsers = st.Users.Count(func(u models.User) bool { return u.IsActive() })
		resp.SuspendedUsers = st.Users.Len() - resp.ActiveUsers
		resp.AvailableListings = st.Listings.Count(func(m models.MarketplaceItem) bool { return m.Status == models.ListingAvailable })
		resp.SoldListings = st.Listings.Count(func(m models.MarketplaceItem) bool { return m.Status == models.ListingSold })
		resp.PublishedArticles = st.Articles.Count(func(a models.Article) bool { return a.Status == models.ArticlePublished })
		resp.DraftArticles = st.Articles.Len() - resp.PublishedArticles
		resp.UnreadNotifications = st.Notifications.Count(func(n models.Notification) bool { return !n.IsRead })
		resp.PendingMentorships = st.MentorshipRequests.Count(func(r models.MentorshipRequest) bool {
			return r.Status == models.MentorshipPending
		})
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func adminUserRow(st *store.State, u models.User) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Status:      u.Status,
		FriendCount: len(u.Friends),
		PostCount:   st.Posts.Count(func(p models.Post) bool { return p.AuthorID == u.ID }),
		IsMentor:    u.IsMentor,
	}
}

// ListUsers returns the admin user table
func (s *adminServiceImpl) ListUsers(ctx context.Context, actorID string) ([]dto.AdminUserResponse, error) {
	var out []dto.AdminUserResponse
	err := s.view(actorID, func(st *store.State) {
		out = make([]dto.AdminUserResponse, 0, st.Users.Len())
		st.Users.Each(func(u models.User) { out = append(out, adminUserRow(st, u)) })
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetUserStatus suspends or reactivates a user. The current user cannot be
// suspended.
func (s *adminServiceImpl) SetUserStatus(ctx context.Context, actorID, userID string, status models.UserStatus) (*dto.AdminUserResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("userID", userID).Str("status", string(status)).Msg("Setting user status")

	if !status.Valid() {
		return nil, apperrors.NewBadRequestError("status must be active or suspended")
	}
	var row dto.AdminUserResponse
	err := s.admin(ctx, actorID, "set_user_status", func(st *store.State) error {
		u, ok := st.Users.Get(userID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}
		if status == models.UserSuspended && (u.ID == st.CurrentUserID || u.ID == actorID) {
			return apperrors.Conflict(apperrors.ErrCurrentUserProtected)
		}
		u.Status = status
		st.Users.Replace(u)
		row = adminUserRow(st, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("userID", userID).Str("status", string(status)).Msg("User status changed")
	return &row, nil
}

// SetUserRole changes a user's role. Admins cannot demote themselves.
func (s *adminServiceImpl) SetUserRole(ctx context.Context, actorID, userID string, role models.RoleType) (*dto.AdminUserResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("userID", userID).Str("role", string(role)).Msg("Setting user role")

	if !role.Valid() {
		return nil, apperrors.NewBadRequestError("role must be Student, Staff or Admin")
	}
	if actorID == userID && role != models.RoleAdmin {
		return nil, apperrors.NewBadRequestError("admins cannot demote themselves")
	}
	var row dto.AdminUserResponse
	err := s.admin(ctx, actorID, "set_user_role", func(st *store.State) error {
		u, ok := st.Users.Get(userID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}
		u.Role = role
		st.Users.Replace(u)
		row = adminUserRow(st, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteUser removes a user with the content they own and strips their id
// from every relationship. The current user cannot be deleted.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, actorID, userID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("userID", userID).Msg("Deleting user")

	err := s.admin(ctx, actorID, "delete_user", func(st *store.State) error {
		if userID == st.CurrentUserID || userID == actorID {
			return apperrors.Conflict(apperrors.ErrCurrentUserProtected)
		}
		if !st.Users.Remove(userID) {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}
		purgeUser(st, userID)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("userID", userID).Msg("User deleted")
	return nil
}

func purgeUser(st *store.State, userID string) {
	st.Users.Map(func(u models.User) (models.User, bool) {
		if !models.ContainsID(u.Friends, userID) {
			return u, false
		}
		u.Friends = models.RemoveID(u.Friends, userID)
		return u, true
	})

	// a mentorship community without its mentor has nobody to accept requests
	communities := make(map[string]bool)
	st.Groups.Each(func(g models.Group) {
		if g.IsMentorship && models.ContainsID(g.Admins, userID) {
			communities[g.ID] = true
		}
	})
	if u, ok := st.Users.Get(userID); ok && u.MentorCommunityID != "" {
		communities[u.MentorCommunityID] = true
	}
	st.Groups.RemoveWhere(func(g models.Group) bool { return communities[g.ID] })
	st.Groups.Map(func(g models.Group) (models.Group, bool) {
		if !models.ContainsID(g.Members, userID) && !models.ContainsID(g.Admins, userID) {
			return g, false
		}
		g.Members = models.RemoveID(g.Members, userID)
		g.Admins = models.RemoveID(g.Admins, userID)
		return g, true
	})

	organized := make(map[string]bool)
	st.Events.Each(func(e models.Event) {
		if e.OrganizerID == userID {
			organized[e.ID] = true
		}
	})
	st.Events.RemoveWhere(func(e models.Event) bool { return organized[e.ID] })
	st.Events.Map(func(e models.Event) (models.Event, bool) {
		if !models.ContainsID(e.Attendees, userID) {
			return e, false
		}
		e.Attendees = models.RemoveID(e.Attendees, userID)
		return e, true
	})

	st.Conversations.RemoveWhere(func(c models.Conversation) bool {
		return !c.IsGroup && models.ContainsID(c.Participants, userID)
	})
	st.Conversations.Map(func(c models.Conversation) (models.Conversation, bool) {
		if !models.ContainsID(c.Participants, userID) {
			return c, false
		}
		c.Participants = models.RemoveID(c.Participants, userID)
		unread := make(map[string]int, len(c.Unread))
		for id, n := range c.Unread {
			if id != userID {
				unread[id] = n
			}
		}
		c.Unread = unread
		return c, true
	})

	st.Polls.RemoveWhere(func(p models.Poll) bool { return p.AuthorID == userID })
	st.Polls.Map(func(p models.Poll) (models.Poll, bool) {
		changed := false
		options := make([]models.PollOption, len(p.Options))
		for i, o := range p.Options {
			if models.ContainsID(o.Voters, userID) {
				o.Voters = models.RemoveID(o.Voters, userID)
				changed = true
			}
			options[i] = o
		}
		p.Options = options
		return p, changed
	})

	st.Posts.RemoveWhere(func(p models.Post) bool { return p.AuthorID == userID })
	st.Posts.Map(func(p models.Post) (models.Post, bool) {
		changed := false
		if organized[p.EventID] {
			p.EventID = ""
			changed = true
		}
		if kept := withoutCommentsBy(p.Comments, userID); len(kept) != len(p.Comments) {
			p.Comments = kept
			changed = true
		}
		return p, changed
	})
	st.Articles.RemoveWhere(func(a models.Article) bool { return a.AuthorID == userID })
	st.Articles.Map(func(a models.Article) (models.Article, bool) {
		kept := withoutCommentsBy(a.Comments, userID)
		if len(kept) == len(a.Comments) {
			return a, false
		}
		a.Comments = kept
		return a, true
	})
	st.Listings.RemoveWhere(func(m models.MarketplaceItem) bool { return m.SellerID == userID })
	st.Jobs.RemoveWhere(func(j models.Job) bool { return j.PostedByID == userID })
	st.LostAndFound.RemoveWhere(func(i models.LostAndFoundItem) bool { return i.ReporterID == userID })
	st.FriendRequests.RemoveWhere(func(r models.FriendRequest) bool {
		return r.FromUserID == userID || r.ToUserID == userID
	})
	st.MentorshipRequests.RemoveWhere(func(r models.MentorshipRequest) bool {
		if communities[r.CommunityID] {
			return true
		}
		return r.Status == models.MentorshipPending && (r.FromUserID == userID || r.ToMentorID == userID)
	})
	st.Notifications.RemoveWhere(func(n models.Notification) bool { return n.RecipientID == userID })
	st.ScheduleItems.RemoveWhere(func(i models.ScheduleItem) bool { return i.OwnerID == userID })
	st.Todos.RemoveWhere(func(t models.TodoItem) bool { return t.OwnerID == userID })
}

func withoutCommentsBy(comments []models.Comment, userID string) []models.Comment {
	kept := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.AuthorID != userID {
			kept = append(kept, c)
		}
	}
	return kept
}

// ListHeroSlides returns the landing carousel in display order
func (s *adminServiceImpl) ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	var slides []models.HeroSlide
	s.deps.Store.View(func(st *store.State) { slides = st.HeroSlides.All() })
	slices.SortStableFunc(slides, func(a, b models.HeroSlide) int { return a.Order - b.Order })
	return slides, nil
}

// CreateHeroSlide adds a carousel slide
func (s *adminServiceImpl) CreateHeroSlide(ctx context.Context, actorID string, req *dto.HeroSlideRequest) (*models.HeroSlide, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	var slide models.HeroSlide
	err := s.admin(ctx, actorID, "create_hero_slide", func(st *store.State) error {
		slide = models.HeroSlide{
			ID:       s.deps.IDs.ID("hero"),
			Title:    strings.TrimSpace(req.Title),
			Subtitle: req.Subtitle,
			ImageURL: req.ImageURL,
			LinkURL:  req.LinkURL,
			Order:    req.Order,
		}
		st.HeroSlides.Append(slide)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &slide, nil
}

// UpdateHeroSlide replaces a carousel slide
func (s *adminServiceImpl) UpdateHeroSlide(ctx context.Context, actorID, slideID string, req *dto.HeroSlideRequest) (*models.HeroSlide, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	var slide models.HeroSlide
	err := s.admin(ctx, actorID, "update_hero_slide", func(st *store.State) error {
		existing, ok := st.HeroSlides.Get(slideID)
		if !ok {
			return apperrors.NewResourceNotFoundError("hero slide not found")
		}
		existing.Title = strings.TrimSpace(req.Title)
		existing.Subtitle = req.Subtitle
		if req.ImageURL != "" {
			existing.ImageURL = req.ImageURL
		}
		existing.LinkURL = req.LinkURL
		existing.Order = req.Order
		st.HeroSlides.Replace(existing)
		slide = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &slide, nil
}

// DeleteHeroSlide removes a carousel slide
func (s *adminServiceImpl) DeleteHeroSlide(ctx context.Context, actorID, slideID string) error {
	return s.admin(ctx, actorID, "delete_hero_slide", func(st *store.State) error {
		if !st.HeroSlides.Remove(slideID) {
			return apperrors.NewResourceNotFoundError("hero slide not found")
		}
		return nil
	})
}

// ReorderHeroSlides assigns Order by position in ids. Slides not listed keep
// their relative order after the listed ones.
func (s *adminServiceImpl) ReorderHeroSlides(ctx context.Context, actorID string, ids []string) ([]models.HeroSlide, error) {
	err := s.admin(ctx, actorID, "reorder_hero_slides", func(st *store.State) error {
		for _, id := range ids {
			if !st.HeroSlides.Has(id) {
				return apperrors.NewResourceNotFoundError("hero slide not found: " + id)
			}
		}
		rest := st.HeroSlides.Filter(func(h models.HeroSlide) bool { return !slices.Contains(ids, h.ID) })
		slices.SortStableFunc(rest, func(a, b models.HeroSlide) int { return a.Order - b.Order })

		for i, id := range ids {
			h, _ := st.HeroSlides.Get(id)
			h.Order = i
			st.HeroSlides.Replace(h)
		}
		for i, h := range rest {
			h.Order = len(ids) + i
			st.HeroSlides.Replace(h)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListHeroSlides(ctx)
}
