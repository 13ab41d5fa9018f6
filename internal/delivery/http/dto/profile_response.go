package dto

import (
	"time"

	"gigboard/internal/repository"
	"gigboard/internal/usecase"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID                uuid.UUID                    `json:"id"`
	Description       string                       `json:"description"`
	Qualifications    []string                     `json:"qualifications"`
	Skills            []string                     `json:"skills"`
	YearsOfExperience int                          `json:"years_of_experience"`
	HourlyRate        float64                      `json:"hourly_rate"`
	Location          string                       `json:"location"`
	Portfolio         []repository.PortfolioItem   `json:"portfolio"`
	Certificates      []repository.CertificateItem `json:"certificates"`
	Experience        []repository.ExperienceItem  `json:"experience"`
	CreatedAt         time.Time                    `json:"created_at"`
	UpdatedAt         time.Time                    `json:"updated_at"`
}

func FromProfile(p repository.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID,
		Description:       p.Description,
		Qualifications:    p.Qualifications,
		Skills:            p.Skills,
		YearsOfExperience: p.YearsOfExperience,
		HourlyRate:        p.HourlyRate,
		Location:          p.Location,
		Portfolio:         p.Portfolio,
		Certificates:      p.Certificates,
		Experience:        p.Experience,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

type ProfileViewResponse struct {
	FullName string           `json:"full_name"`
	Email    string           `json:"email"`
	Avatar   string           `json:"avatar"`
	Profile  *ProfileResponse `json:"profile"`
}

func FromProfileView(v usecase.ProfileView) ProfileViewResponse {
	out := ProfileViewResponse{
		FullName: v.FullName,
		Email:    v.Email,
		Avatar:   v.Avatar,
	}
	if v.Profile != nil {
		p := FromProfile(*v.Profile)
		out.Profile = &p
	}
	return out
}

type FreelancerSearchItemResponse struct {
	ProfileID          uuid.UUID                    `json:"profile_id"`
	FullName           string                       `json:"full_name"`
	Email              string                       `json:"email"`
	Bio                string                       `json:"bio"`
	Location           string                       `json:"location"`
	Skills             []string                     `json:"skills"`
	Qualifications     []string                     `json:"qualifications"`
	YearsOfExperience  int                          `json:"years_of_experience"`
	HourlyRate         float64                      `json:"hourly_rate"`
	Portfolio          []repository.PortfolioItem   `json:"portfolio"`
	Certificates       []repository.CertificateItem `json:"certificates"`
	Experience         []repository.ExperienceItem  `json:"experience"`
	TotalApplications  int                          `json:"total_applications"`
	ApplicationsToYou  int                          `json:"applications_to_your_jobs"`
	RecentApplications []ApplicationDetailResponse  `json:"recent_applications"`
}

type FreelancerSearchResponse struct {
	Freelancers []FreelancerSearchItemResponse `json:"freelancers"`
	CurrentPage int                            `json:"current_page"`
	Limit       int                            `json:"limit"`
	Total       int                            `json:"total"`
	TotalPages  int                            `json:"total_pages"`
}

func FromFreelancerSearch(r usecase.SearchFreelancersResult) FreelancerSearchResponse {
	items := make([]FreelancerSearchItemResponse, 0, len(r.Freelancers))
	for _, f := range r.Freelancers {
		items = append(items, FreelancerSearchItemResponse{
			ProfileID:          f.ProfileID,
			FullName:           f.Name,
			Email:              f.Email,
			Bio:                f.Bio,
			Location:           f.Location,
			Skills:             f.Skills,
			Qualifications:     f.Qualifications,
			YearsOfExperience:  f.YearsOfExperience,
			HourlyRate:         f.HourlyRate,
			Portfolio:          f.Portfolio,
			Certificates:       f.Certificates,
			Experience:         f.Experience,
			TotalApplications:  f.TotalApplications,
			ApplicationsToYou:  f.ApplicationsToYou,
			RecentApplications: FromApplicationDetails(f.RecentApplications),
		})
	}
	return FreelancerSearchResponse{
		Freelancers: items,
		CurrentPage: r.CurrentPage,
		Limit:       r.Limit,
		Total:       r.Total,
		TotalPages:  r.TotalPages,
	}
}
