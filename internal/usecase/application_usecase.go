package usecase

import (
	"context"
	"errors"
	"strings"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrNotJobOwner         = errors.New("job does not belong to caller")
)

type ApplyInput struct {
	JobID       uuid.UUID
	CoverLetter string
}

type JobApplications struct {
	JobTitle     string
	Applications []repository.ApplicationDetail
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, freelancerID uuid.UUID, in ApplyInput) (repository.Application, error)
	ListForJob(ctx context.Context, clientID, jobID uuid.UUID) (JobApplications, error)
	ListAllForOwner(ctx context.Context, clientID uuid.UUID) ([]repository.ApplicationDetail, error)
	SetStatus(ctx context.Context, clientID, applicationID uuid.UUID, status string) (repository.ApplicationDetail, error)
	DashboardStats(ctx context.Context, freelancerID uuid.UUID) (repository.ApplicationCounts, error)
}

type decisionNotifier interface {
	ApplicationDecided(freelancerID, clientID, jobID, applicationID uuid.UUID, status string)
}

type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	notifier     decisionNotifier
}

func NewApplicationUsecase(applications repository.ApplicationRepository, jobs repository.JobRepository, notifier decisionNotifier) *ApplicationService {
	return &ApplicationService{applications: applications, jobs: jobs, notifier: notifier}
}

func (u *ApplicationService) Apply(ctx context.Context, freelancerID uuid.UUID, in ApplyInput) (repository.Application, error) {
	if strings.TrimSpace(in.CoverLetter) == "" {
		return repository.Application{}, ErrInvalidInput
	}

	// only open jobs accept applications
	if _, err := u.jobs.GetOpenByID(ctx, in.JobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Application{}, ErrJobNotFound
		}
		return repository.Application{}, ErrInternal
	}

	exists, err := u.applications.ExistsForJobAndApplicant(ctx, in.JobID, freelancerID)
	if err != nil {
		return repository.Application{}, ErrInternal
	}
	if exists {
		return repository.Application{}, ErrAlreadyApplied
	}

	a := repository.Application{
		ID:          uuid.New(),
		JobID:       in.JobID,
		ApplicantID: freelancerID,
		Status:      repository.ApplicationStatusPending,
		CoverLetter: in.CoverLetter,
	}

	if err := u.applications.Create(ctx, a); err != nil {
		// the unique constraint catches the race the exists-check misses
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return repository.Application{}, ErrAlreadyApplied
		}
		return repository.Application{}, ErrInternal
	}

	return a, nil
}

func (u *ApplicationService) ListForJob(ctx context.Context, clientID, jobID uuid.UUID) (JobApplications, error) {
	j, err := u.jobs.GetForClient(ctx, jobID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobApplications{}, ErrJobNotFound
		}
		return JobApplications{}, ErrInternal
	}

	apps, err := u.applications.ListByJob(ctx, jobID)
	if err != nil {
		return JobApplications{}, ErrInternal
	}

	return JobApplications{JobTitle: j.Title, Applications: apps}, nil
}

func (u *ApplicationService) ListAllForOwner(ctx context.Context, clientID uuid.UUID) ([]repository.ApplicationDetail, error) {
	apps, err := u.applications.ListByJobOwner(ctx, clientID)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (u *ApplicationService) SetStatus(ctx context.Context, clientID, applicationID uuid.UUID, status string) (repository.ApplicationDetail, error) {
	if !repository.ValidApplicationStatus(status) {
		return repository.ApplicationDetail{}, ErrInvalidInput
	}

	d, err := u.applications.GetDetail(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.ApplicationDetail{}, ErrApplicationNotFound
		}
		return repository.ApplicationDetail{}, ErrInternal
	}

	if d.JobClientID != clientID {
		return repository.ApplicationDetail{}, ErrNotJobOwner
	}

	if err := u.applications.UpdateStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.ApplicationDetail{}, ErrApplicationNotFound
		}
		return repository.ApplicationDetail{}, ErrInternal
	}
	d.Status = status

	// a move back to pending is silent
	if status != repository.ApplicationStatusPending && u.notifier != nil {
		u.notifier.ApplicationDecided(d.ApplicantID, clientID, d.JobID, d.ID, status)
	}

	return d, nil
}

func (u *ApplicationService) DashboardStats(ctx context.Context, freelancerID uuid.UUID) (repository.ApplicationCounts, error) {
	counts, err := u.applications.CountsByApplicant(ctx, freelancerID)
	if err != nil {
		return repository.ApplicationCounts{}, ErrInternal
	}
	return counts, nil
}
