package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// JobService defines the interface for the job board
type JobService interface {
	CreateJob(ctx context.Context, actorID string, req *dto.JobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, actorID, jobID string, req *dto.JobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, actorID, jobID string) error
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	ListJobs(ctx context.Context, filter *dto.JobFilterRequest) ([]models.Job, error)
}

// jobServiceImpl implements JobService
type jobServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(deps *Deps) JobService {
	return &jobServiceImpl{deps: deps, logger: deps.component("job_service")}
}

func validateJob(req *dto.JobRequest) error {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" {
		return apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	switch req.Type {
	case models.JobFullTime, models.JobPartTime, models.JobInternship:
		return nil
	}
	return apperrors.NewBadRequestError("job type must be Full-time, Part-time or Internship")
}

// CreateJob posts a job. Staff and admins only.
func (s *jobServiceImpl) CreateJob(ctx context.Context, actorID string, req *dto.JobRequest) (*models.Job, error) {
	s.logger.Debug().Str("actorID", actorID).Str("title", req.Title).Msg("Creating job")

	if err := validateJob(req); err != nil {
		return nil, err
	}
	if s.deps.Authz != nil {
		if _, err := s.deps.Authz.ValidateRole(actorID, models.RoleStaff, models.RoleAdmin); err != nil {
			return nil, err
		}
	}

	s.deps.delay(ctx, latency.OpSaveJob)

	var job models.Job
	err := s.deps.Store.Update("create_job", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		if actor.Role == models.RoleStudent {
			return apperrors.ErrPermissionDenied
		}
		job = models.Job{
			ID:          s.deps.IDs.ID("job"),
			Title:       strings.TrimSpace(req.Title),
			Company:     strings.TrimSpace(req.Company),
			Location:    req.Location,
			Type:        req.Type,
			Description: req.Description,
			PostedByID:  actor.ID,
			PostedAt:    s.deps.now(),
		}
		st.Jobs.Prepend(job)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob replaces a job posting. Poster or admin only.
func (s *jobServiceImpl) UpdateJob(ctx context.Context, actorID, jobID string, req *dto.JobRequest) (*models.Job, error) {
	if err := validateJob(req); err != nil {
		return nil, err
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSaveJob)

	var job models.Job
	err := s.deps.Store.Update("update_job", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		existing, ok := st.Jobs.Get(jobID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrJobNotFound)
		}
		if err := auth.ValidateOwnership(actor, existing.PostedByID); err != nil {
			return err
		}
		existing.Title = strings.TrimSpace(req.Title)
		existing.Company = strings.TrimSpace(req.Company)
		existing.Location = req.Location
		existing.Type = req.Type
		existing.Description = req.Description
		st.Jobs.Replace(existing)
		job = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job posting. Poster or admin only.
func (s *jobServiceImpl) DeleteJob(ctx context.Context, actorID, jobID string) error {
	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpSaveJob)

	return s.deps.Store.Update("delete_job", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		existing, ok := st.Jobs.Get(jobID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrJobNotFound)
		}
		if err := auth.ValidateOwnership(actor, existing.PostedByID); err != nil {
			return err
		}
		st.Jobs.Remove(jobID)
		return nil
	})
}

// GetJob returns a job posting
func (s *jobServiceImpl) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	var (
		job models.Job
		ok  bool
	)
	s.deps.Store.View(func(st *store.State) { job, ok = st.Jobs.Get(jobID) })
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrJobNotFound)
	}
	return &job, nil
}

// ListJobs filters the job board by type and free text
func (s *jobServiceImpl) ListJobs(ctx context.Context, filter *dto.JobFilterRequest) ([]models.Job, error) {
	if filter == nil {
		filter = &dto.JobFilterRequest{}
	}
	var jobs []models.Job
	s.deps.Store.View(func(st *store.State) {
		jobs = st.Jobs.Filter(func(j models.Job) bool {
			if filter.Type != "" && string(j.Type) != filter.Type {
				return false
			}
			if filter.Search == "" {
				return true
			}
			return containsFold(j.Title, filter.Search) || containsFold(j.Company, filter.Search) || containsFold(j.Description, filter.Search)
		})
	})
	return jobs, nil
}
