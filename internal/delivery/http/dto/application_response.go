package dto

import (
	"time"

	"gigboard/internal/repository"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"cover_letter"`
	AppliedAt   time.Time `json:"applied_at"`
}

func FromApplication(a repository.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		Status:      a.Status,
		CoverLetter: a.CoverLetter,
		AppliedAt:   a.AppliedAt,
	}
}

type ApplicationDetailResponse struct {
	ApplicationResponse
	ApplicantID    uuid.UUID  `json:"applicant_id"`
	ApplicantName  string     `json:"applicant_name"`
	ApplicantEmail string     `json:"applicant_email"`
	ProfileID      *uuid.UUID `json:"profile_id,omitempty"`
	JobTitle       string     `json:"job_title"`
}

func FromApplicationDetail(d repository.ApplicationDetail) ApplicationDetailResponse {
	return ApplicationDetailResponse{
		ApplicationResponse: FromApplication(d.Application),
		ApplicantID:         d.ApplicantID,
		ApplicantName:       d.ApplicantName,
		ApplicantEmail:      d.ApplicantEmail,
		ProfileID:           d.ProfileID,
		JobTitle:            d.JobTitle,
	}
}

func FromApplicationDetails(ds []repository.ApplicationDetail) []ApplicationDetailResponse {
	out := make([]ApplicationDetailResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromApplicationDetail(d))
	}
	return out
}

type ApplicationStatsResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

func FromApplicationCounts(c repository.ApplicationCounts) ApplicationStatsResponse {
	return ApplicationStatsResponse{
		Total:    c.Total,
		Pending:  c.Pending,
		Accepted: c.Accepted,
		Rejected: c.Rejected,
	}
}
