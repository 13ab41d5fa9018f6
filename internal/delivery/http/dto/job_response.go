package dto

import (
	"time"

	"gigboard/internal/repository"
	"gigboard/internal/usecase"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Budget         float64   `json:"budget"`
	Skills         []string  `json:"skills"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromJob(j repository.Job) JobResponse {
	return JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Budget:         j.Budget,
		Skills:         j.Skills,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func FromJobs(jobs []repository.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}

type BrowseJobResponse struct {
	JobResponse
	HasApplied bool `json:"has_applied"`
}

type BrowseJobsResponse struct {
	Jobs       []BrowseJobResponse `json:"jobs"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
}

func FromBrowseResult(r usecase.BrowseJobsResult) BrowseJobsResponse {
	jobs := make([]BrowseJobResponse, 0, len(r.Items))
	for _, it := range r.Items {
		jobs = append(jobs, BrowseJobResponse{JobResponse: FromJob(it.Job), HasApplied: it.HasApplied})
	}
	return BrowseJobsResponse{Jobs: jobs, Total: r.Total, Page: r.Page, TotalPages: r.Pages}
}
