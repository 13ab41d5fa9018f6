package usecase

import (
	"context"
	"errors"
	"strings"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

type CreateJobInput struct {
	Title          string
	Description    string
	Location       string
	EmploymentType string
	Budget         float64
	Skills         []string
	Status         string
}

// UpdateJobInput patches a job; nil fields are left untouched.
type UpdateJobInput struct {
	Title          *string
	Description    *string
	Location       *string
	EmploymentType *string
	Budget         *float64
	Skills         []string
	Status         *string
}

type JobUsecase interface {
	Create(ctx context.Context, clientID uuid.UUID, in CreateJobInput) (repository.Job, error)
	Update(ctx context.Context, clientID, jobID uuid.UUID, in UpdateJobInput) (repository.Job, error)
	Get(ctx context.Context, clientID, jobID uuid.UUID) (repository.Job, error)
	ListOwn(ctx context.Context, clientID uuid.UUID) ([]repository.Job, error)
	Delete(ctx context.Context, clientID, jobID uuid.UUID) error
}

type jobOpenNotifier interface {
	JobOpened(jobID uuid.UUID, jobTitle string)
}

type JobService struct {
	jobs     repository.JobRepository
	notifier jobOpenNotifier
}

func NewJobUsecase(jobs repository.JobRepository, notifier jobOpenNotifier) *JobService {
	return &JobService{jobs: jobs, notifier: notifier}
}

func (u *JobService) Create(ctx context.Context, clientID uuid.UUID, in CreateJobInput) (repository.Job, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" || in.Budget <= 0 {
		return repository.Job{}, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = repository.JobStatusOpen
	}
	if !repository.ValidJobStatus(status) {
		return repository.Job{}, ErrInvalidInput
	}

	employmentType := in.EmploymentType
	if employmentType == "" {
		employmentType = "full-time"
	}
	if !repository.ValidEmploymentType(employmentType) {
		return repository.Job{}, ErrInvalidInput
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = "Remote"
	}

	j := repository.Job{
		ID:             uuid.New(),
		Title:          title,
		Description:    description,
		Location:       location,
		EmploymentType: employmentType,
		Budget:         in.Budget,
		Skills:         cleanSkills(in.Skills),
		ClientID:       clientID,
		Status:         status,
	}

	if err := u.jobs.Create(ctx, j); err != nil {
		return repository.Job{}, ErrInternal
	}

	if j.Status == repository.JobStatusOpen && u.notifier != nil {
		u.notifier.JobOpened(j.ID, j.Title)
	}

	created, err := u.jobs.GetForClient(ctx, j.ID, clientID)
	if err != nil {
		return j, nil
	}
	return created, nil
}

func (u *JobService) Update(ctx context.Context, clientID, jobID uuid.UUID, in UpdateJobInput) (repository.Job, error) {
	j, err := u.jobs.GetForClient(ctx, jobID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}

	prevStatus := j.Status

	if in.Title != nil {
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		j.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.EmploymentType != nil {
		j.EmploymentType = *in.EmploymentType
	}
	if in.Budget != nil {
		j.Budget = *in.Budget
	}
	if in.Skills != nil {
		j.Skills = cleanSkills(in.Skills)
	}
	if in.Status != nil {
		j.Status = *in.Status
	}

	if j.Title == "" || j.Description == "" || j.Budget <= 0 {
		return repository.Job{}, ErrInvalidInput
	}
	if !repository.ValidJobStatus(j.Status) || !repository.ValidEmploymentType(j.EmploymentType) {
		return repository.Job{}, ErrInvalidInput
	}

	if err := u.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}

	// only a transition into open re-announces the job
	if prevStatus != repository.JobStatusOpen && j.Status == repository.JobStatusOpen && u.notifier != nil {
		u.notifier.JobOpened(j.ID, j.Title)
	}

	return j, nil
}

func (u *JobService) Get(ctx context.Context, clientID, jobID uuid.UUID) (repository.Job, error) {
	j, err := u.jobs.GetForClient(ctx, jobID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}
	return j, nil
}

func (u *JobService) ListOwn(ctx context.Context, clientID uuid.UUID) ([]repository.Job, error) {
	jobs, err := u.jobs.ListByClient(ctx, clientID)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (u *JobService) Delete(ctx context.Context, clientID, jobID uuid.UUID) error {
	if err := u.jobs.DeleteForClient(ctx, jobID, clientID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	return nil
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
