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

func TestJobBoardPermissions(t *testing.T) {
	env := newTestEnv(t)
	svc := NewJobService(env.deps)
	ctx := context.Background()

	req := &dto.JobRequest{Title: "Lab assistant", Company: "Biology Dept", Type: models.JobPartTime}

	_, err := svc.CreateJob(ctx, "u1", req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "students cannot post jobs")

	job, err := svc.CreateJob(ctx, "u3", req)
	require.NoError(t, err)
	assert.Equal(t, "u3", job.PostedByID)

	update := &dto.JobRequest{Title: "Senior lab assistant", Company: "Biology Dept", Type: models.JobPartTime}
	_, err = svc.UpdateJob(ctx, "u2", job.ID, update)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateJob(ctx, "admin", job.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Senior lab assistant", updated.Title)

	require.NoError(t, svc.DeleteJob(ctx, "u3", job.ID))
	_, err = svc.GetJob(ctx, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestCreateJobValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewJobService(env.deps)

	_, err := svc.CreateJob(context.Background(), "u3", &dto.JobRequest{Title: " ", Company: "X", Type: models.JobFullTime})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateJob(context.Background(), "u3", &dto.JobRequest{Title: "Tutor", Company: "X", Type: "Gig"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestListJobsFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := NewJobService(env.deps)
	ctx := context.Background()

	for _, req := range []*dto.JobRequest{
		{Title: "Research intern", Company: "Physics Lab", Type: models.JobInternship},
		{Title: "Barista", Company: "Campus Cafe", Type: models.JobPartTime, Description: "Morning shifts"},
	} {
		_, err := svc.CreateJob(ctx, "u3", req)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter *dto.JobFilterRequest
		want   []string
	}{
		{name: "no filter", filter: nil, want: []string{"Barista", "Research intern"}},
		{name: "by type", filter: &dto.JobFilterRequest{Type: "Internship"}, want: []string{"Research intern"}},
		{name: "search description", filter: &dto.JobFilterRequest{Search: "MORNING"}, want: []string{"Barista"}},
		{name: "no match", filter: &dto.JobFilterRequest{Search: "astronaut"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := svc.ListJobs(ctx, tt.filter)
			require.NoError(t, err)
			var titles []string
			for _, j := range jobs {
				titles = append(titles, j.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}
}
