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

var weekdayOrder = map[models.Weekday]int{
	models.Monday: 0, models.Tuesday: 1, models.Wednesday: 2, models.Thursday: 3,
	models.Friday: 4, models.Saturday: 5, models.Sunday: 6,
}

// CampusService covers the campus utilities: class schedule, todos, library
// catalog and lost and found. These are plain CRUD over owned entities.
type CampusService interface {
	ListSchedule(ctx context.Context, ownerID string) ([]models.ScheduleItem, error)
	CreateScheduleItem(ctx context.Context, actorID string, req *dto.ScheduleItemRequest) (*models.ScheduleItem, error)
	UpdateScheduleItem(ctx context.Context, actorID, itemID string, req *dto.ScheduleItemRequest) (*models.ScheduleItem, error)
	DeleteScheduleItem(ctx context.Context, actorID, itemID string) error

	ListTodos(ctx context.Context, ownerID string) ([]models.TodoItem, error)
	CreateTodo(ctx context.Context, actorID string, req *dto.TodoRequest) (*models.TodoItem, error)
	ToggleTodo(ctx context.Context, actorID, todoID string) (*models.TodoItem, error)
	DeleteTodo(ctx context.Context, actorID, todoID string) error

	ListLibrary(ctx context.Context, filter *dto.LibraryFilterRequest) ([]models.LibraryResource, error)
	CreateLibraryResource(ctx context.Context, actorID string, req *dto.LibraryResourceRequest) (*models.LibraryResource, error)
	UpdateLibraryResource(ctx context.Context, actorID, resourceID string, req *dto.LibraryResourceRequest) (*models.LibraryResource, error)
	DeleteLibraryResource(ctx context.Context, actorID, resourceID string) error
	ToggleCheckout(ctx context.Context, actorID, resourceID string) (*models.LibraryResource, error)

	ListLostAndFound(ctx context.Context, includeResolved bool) ([]dto.LostFoundResponse, error)
	ReportLostAndFound(ctx context.Context, actorID string, req *dto.LostFoundRequest) (*dto.LostFoundResponse, error)
	ResolveLostAndFound(ctx context.Context, actorID, itemID string) (*dto.LostFoundResponse, error)
	DeleteLostAndFound(ctx context.Context, actorID, itemID string) error
}

// campusServiceImpl implements CampusService
type campusServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewCampusService creates a new CampusService
func NewCampusService(deps *Deps) CampusService {
	return &campusServiceImpl{deps: deps, logger: deps.component("campus_service")}
}

// mutate runs the common prologue: actor check, delay, then one update
func (s *campusServiceImpl) mutate(ctx context.Context, actorID string, op latency.Op, fn func(st *store.State, actor models.User) error) error {
	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}
	s.deps.delay(ctx, op)
	return s.deps.Store.Update(string(op), func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		return fn(st, actor)
	})
}

// ListSchedule returns the owner's classes ordered by day and start time
func (s *campusServiceImpl) ListSchedule(ctx context.Context, ownerID string) ([]models.ScheduleItem, error) {
	var items []models.ScheduleItem
	s.deps.Store.View(func(st *store.State) {
		items = st.ScheduleItems.Filter(func(i models.ScheduleItem) bool { return i.OwnerID == ownerID })
	})
	slices.SortStableFunc(items, func(a, b models.ScheduleItem) int {
		if d := weekdayOrder[a.Day] - weekdayOrder[b.Day]; d != 0 {
			return d
		}
		return strings.Compare(a.StartTime, b.StartTime)
	})
	return items, nil
}

func validateSchedule(req *dto.ScheduleItemRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if !req.Day.Valid() {
		return apperrors.NewBadRequestError("day must be one of Mon..Sun")
	}
	if req.StartTime >= req.EndTime {
		return apperrors.NewBadRequestError("class must end after it starts")
	}
	return nil
}

// CreateScheduleItem adds a class to the actor's schedule
func (s *campusServiceImpl) CreateScheduleItem(ctx context.Context, actorID string, req *dto.ScheduleItemRequest) (*models.ScheduleItem, error) {
	if err := validateSchedule(req); err != nil {
		return nil, err
	}
	var item models.ScheduleItem
	err := s.mutate(ctx, actorID, latency.OpSaveSchedule, func(st *store.State, actor models.User) error {
		item = models.ScheduleItem{
			ID:        s.deps.IDs.ID("sch"),
			OwnerID:   actor.ID,
			Title:     strings.TrimSpace(req.Title),
			Location:  req.Location,
			Day:       req.Day,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Color:     req.Color,
		}
		st.ScheduleItems.Append(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateScheduleItem replaces a class in the actor's schedule
func (s *campusServiceImpl) UpdateScheduleItem(ctx context.Context, actorID, itemID string, req *dto.ScheduleItemRequest) (*models.ScheduleItem, error) {
	if err := validateSchedule(req); err != nil {
		return nil, err
	}
	var item models.ScheduleItem
	err := s.mutate(ctx, actorID, latency.OpSaveSchedule, func(st *store.State, actor models.User) error {
		existing, ok := st.ScheduleItems.Get(itemID)
		if !ok {
			return apperrors.NewResourceNotFoundError("schedule item not found")
		}
		if err := auth.ValidateOwner(actor, existing.OwnerID); err != nil {
			return err
		}
		item = existing
		item.Title = strings.TrimSpace(req.Title)
		item.Location = req.Location
		item.Day = req.Day
		item.StartTime = req.StartTime
		item.EndTime = req.EndTime
		item.Color = req.Color
		st.ScheduleItems.Replace(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteScheduleItem removes a class from the actor's schedule
func (s *campusServiceImpl) DeleteScheduleItem(ctx context.Context, actorID, itemID string) error {
	return s.mutate(ctx, actorID, latency.OpSaveSchedule, func(st *store.State, actor models.User) error {
		existing, ok := st.ScheduleItems.Get(itemID)
		if !ok {
			return apperrors.NewResourceNotFoundError("schedule item not found")
		}
		if err := auth.ValidateOwner(actor, existing.OwnerID); err != nil {
			return err
		}
		st.ScheduleItems.Remove(itemID)
		return nil
	})
}

// ListTodos returns the owner's todos, open ones first
func (s *campusServiceImpl) ListTodos(ctx context.Context, ownerID string) ([]models.TodoItem, error) {
	var items []models.TodoItem
	s.deps.Store.View(func(st *store.State) {
		items = st.Todos.Filter(func(t models.TodoItem) bool { return t.OwnerID == ownerID })
	})
	slices.SortStableFunc(items, func(a, b models.TodoItem) int {
		switch {
		case a.Completed == b.Completed:
			return 0
		case a.Completed:
			return 1
		default:
			return -1
		}
	})
	return items, nil
}

// CreateTodo adds a todo for the actor
func (s *campusServiceImpl) CreateTodo(ctx context.Context, actorID string, req *dto.TodoRequest) (*models.TodoItem, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	var item models.TodoItem
	err := s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		item = models.TodoItem{
			ID:      s.deps.IDs.ID("todo"),
			OwnerID: actor.ID,
			Text:    strings.TrimSpace(req.Text),
			DueDate: req.DueDate,
		}
		st.Todos.Prepend(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleTodo flips a todo's completed flag
func (s *campusServiceImpl) ToggleTodo(ctx context.Context, actorID, todoID string) (*models.TodoItem, error) {
	var item models.TodoItem
	err := s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		existing, ok := st.Todos.Get(todoID)
		if !ok {
			return apperrors.NewResourceNotFoundError("todo not found")
		}
		if err := auth.ValidateOwner(actor, existing.OwnerID); err != nil {
			return err
		}
		existing.Completed = !existing.Completed
		st.Todos.Replace(existing)
		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteTodo removes a todo
func (s *campusServiceImpl) DeleteTodo(ctx context.Context, actorID, todoID string) error {
	return s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		existing, ok := st.Todos.Get(todoID)
		if !ok {
			return apperrors.NewResourceNotFoundError("todo not found")
		}
		if err := auth.ValidateOwner(actor, existing.OwnerID); err != nil {
			return err
		}
		st.Todos.Remove(todoID)
		return nil
	})
}

// ListLibrary searches the catalog by title or author
func (s *campusServiceImpl) ListLibrary(ctx context.Context, filter *dto.LibraryFilterRequest) ([]models.LibraryResource, error) {
	if filter == nil {
		filter = &dto.LibraryFilterRequest{}
	}
	var items []models.LibraryResource
	s.deps.Store.View(func(st *store.State) {
		items = st.LibraryResources.Filter(func(r models.LibraryResource) bool {
			if filter.Type != "" && string(r.Type) != filter.Type {
				return false
			}
			if filter.Available != nil && r.Available != *filter.Available {
				return false
			}
			return filter.Search == "" || containsFold(r.Title, filter.Search) || containsFold(r.Author, filter.Search)
		})
	})
	return items, nil
}

// CreateLibraryResource adds a catalog entry. Staff and admins only.
func (s *campusServiceImpl) CreateLibraryResource(ctx context.Context, actorID string, req *dto.LibraryResourceRequest) (*models.LibraryResource, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	var item models.LibraryResource
	err := s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		if actor.Role == models.RoleStudent {
			return apperrors.ErrPermissionDenied
		}
		item = models.LibraryResource{
			ID:        s.deps.IDs.ID("lib"),
			Title:     strings.TrimSpace(req.Title),
			Author:    req.Author,
			Type:      req.Type,
			Available: req.Available == nil || *req.Available,
			Location:  req.Location,
		}
		st.LibraryResources.Append(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateLibraryResource replaces a catalog entry. Staff and admins only.
func (s *campusServiceImpl) UpdateLibraryResource(ctx context.Context, actorID, resourceID string, req *dto.LibraryResourceRequest) (*models.LibraryResource, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	var item models.LibraryResource
	err := s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		if actor.Role == models.RoleStudent {
			return apperrors.ErrPermissionDenied
		}
		existing, ok := st.LibraryResources.Get(resourceID)
		if !ok {
			return apperrors.NewResourceNotFoundError("library resource not found")
		}
		existing.Title = strings.TrimSpace(req.Title)
		existing.Author = req.Author
		existing.Type = req.Type
		existing.Location = req.Location
		if req.Available != nil {
			existing.Available = *req.Available
		}
		st.LibraryResources.Replace(existing)
		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteLibraryResource removes a catalog entry. Staff and admins only.
func (s *campusServiceImpl) DeleteLibraryResource(ctx context.Context, actorID, resourceID string) error {
	return s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		if actor.Role == models.RoleStudent {
			return apperrors.ErrPermissionDenied
		}
		if !st.LibraryResources.Remove(resourceID) {
			return apperrors.NewResourceNotFoundError("library resource not found")
		}
		return nil
	})
}

// ToggleCheckout flips the availability of a resource
func (s *campusServiceImpl) ToggleCheckout(ctx context.Context, actorID, resourceID string) (*models.LibraryResource, error) {
	var item models.LibraryResource
	err := s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, _ models.User) error {
		existing, ok := st.LibraryResources.Get(resourceID)
		if !ok {
			return apperrors.NewResourceNotFoundError("library resource not found")
		}
		existing.Available = !existing.Available
		st.LibraryResources.Replace(existing)
		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListLostAndFound returns reports, newest first
func (s *campusServiceImpl) ListLostAndFound(ctx context.Context, includeResolved bool) ([]dto.LostFoundResponse, error) {
	var out []dto.LostFoundResponse
	s.deps.Store.View(func(st *store.State) {
		items := st.LostAndFound.Filter(func(l models.LostAndFoundItem) bool { return includeResolved || !l.Resolved })
		lookup := lookupIn(st)
		out = make([]dto.LostFoundResponse, 0, len(items))
		for _, l := range items {
			out = append(out, dto.NewLostFoundResponse(l, lookup))
		}
	})
	return out, nil
}

// ReportLostAndFound files a lost or found report
func (s *campusServiceImpl) ReportLostAndFound(ctx context.Context, actorID string, req *dto.LostFoundRequest) (*dto.LostFoundResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if req.Kind != models.KindLost && req.Kind != models.KindFound {
		return nil, apperrors.NewBadRequestError("kind must be lost or found")
	}
	var resp dto.LostFoundResponse
	err := s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		item := models.LostAndFoundItem{
			ID:          s.deps.IDs.ID("lf"),
			ReporterID:  actor.ID,
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Location:    req.Location,
			Kind:        req.Kind,
			ImageURL:    req.ImageURL,
			CreatedAt:   s.deps.now(),
		}
		st.LostAndFound.Prepend(item)
		resp = dto.NewLostFoundResponse(item, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResolveLostAndFound marks a report resolved. Reporter or admin only.
func (s *campusServiceImpl) ResolveLostAndFound(ctx context.Context, actorID, itemID string) (*dto.LostFoundResponse, error) {
	var resp dto.LostFoundResponse
	err := s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		item, ok := st.LostAndFound.Get(itemID)
		if !ok {
			return apperrors.NewResourceNotFoundError("lost and found item not found")
		}
		if err := auth.ValidateOwnership(actor, item.ReporterID); err != nil {
			return err
		}
		item.Resolved = true
		st.LostAndFound.Replace(item)
		resp = dto.NewLostFoundResponse(item, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteLostAndFound removes a report. Reporter or admin only.
func (s *campusServiceImpl) DeleteLostAndFound(ctx context.Context, actorID, itemID string) error {
	return s.mutate(ctx, actorID, latency.OpCampusCRUD, func(st *store.State, actor models.User) error {
		item, ok := st.LostAndFound.Get(itemID)
		if !ok {
			return apperrors.NewResourceNotFoundError("lost and found item not found")
		}
		if err := auth.ValidateOwnership(actor, item.ReporterID); err != nil {
			return err
		}
		st.LostAndFound.Remove(itemID)
		return nil
	})
}
