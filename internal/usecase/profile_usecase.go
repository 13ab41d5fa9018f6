package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gigboard/internal/domain/user"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProfileExists       = errors.New("profile already exists")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileItemNotFound = errors.New("profile item not found")
)

type CreateProfileInput struct {
	Description       string
	Qualifications    []string
	Skills            []string
	YearsOfExperience int
	HourlyRate        float64
	Location          string
	Portfolio         []PortfolioItemInput
	Certificates      []CertificateItemInput
	Experience        []ExperienceItemInput
}

type PortfolioItemInput struct {
	Name        string
	URL         string
	Description string
}

type CertificateItemInput struct {
	Name   string
	Issuer string
	Date   *time.Time
}

type ExperienceItemInput struct {
	Title       string
	Company     string
	StartDate   time.Time
	EndDate     *time.Time
	IsCurrent   bool
	Description string
}

// UpdateProfileInput patches top-level fields and individual nested items.
// A nested patch with an ID updates the matching item; without an ID it
// appends a new one.
type UpdateProfileInput struct {
	Description       *string
	Qualifications    []string
	Skills            []string
	YearsOfExperience *int
	HourlyRate        *float64
	Location          *string
	Portfolio         []PortfolioItemPatch
	Certificates      []CertificateItemPatch
	Experience        []ExperienceItemPatch
}

type PortfolioItemPatch struct {
	ID          *uuid.UUID
	Name        *string
	URL         *string
	Description *string
}

type CertificateItemPatch struct {
	ID     *uuid.UUID
	Name   *string
	Issuer *string
	Date   *time.Time
}

type ExperienceItemPatch struct {
	ID          *uuid.UUID
	Title       *string
	Company     *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsCurrent   *bool
	Description *string
}

// ProfileView merges the identity summary with the stored profile; Profile
// is nil until the freelancer creates one.
type ProfileView struct {
	FullName string
	Email    string
	Avatar   string
	Profile  *repository.Profile
}

type ProfileUsecase interface {
	Create(ctx context.Context, freelancerID uuid.UUID, in CreateProfileInput) (repository.Profile, error)
	Get(ctx context.Context, freelancerID uuid.UUID) (ProfileView, error)
	Update(ctx context.Context, freelancerID uuid.UUID, in UpdateProfileInput) (repository.Profile, error)
}

type ProfileService struct {
	profiles repository.ProfileRepository
	users    user.Repository
}

func NewProfileUsecase(profiles repository.ProfileRepository, users user.Repository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

func (u *ProfileService) Create(ctx context.Context, freelancerID uuid.UUID, in CreateProfileInput) (repository.Profile, error) {
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Location) == "" {
		return repository.Profile{}, ErrInvalidInput
	}
	if in.YearsOfExperience < 0 || in.HourlyRate < 1 {
		return repository.Profile{}, ErrInvalidInput
	}

	p := repository.Profile{
		ID:                uuid.New(),
		UserID:            freelancerID,
		Description:       strings.TrimSpace(in.Description),
		Qualifications:    cleanSkills(in.Qualifications),
		Skills:            cleanSkills(in.Skills),
		YearsOfExperience: in.YearsOfExperience,
		HourlyRate:        in.HourlyRate,
		Location:          strings.TrimSpace(in.Location),
		Portfolio:         make([]repository.PortfolioItem, 0, len(in.Portfolio)),
		Certificates:      make([]repository.CertificateItem, 0, len(in.Certificates)),
		Experience:        make([]repository.ExperienceItem, 0, len(in.Experience)),
	}

	for _, it := range in.Portfolio {
		p.Portfolio = append(p.Portfolio, repository.PortfolioItem{
			ID: uuid.New(), Name: it.Name, URL: it.URL, Description: it.Description,
		})
	}
	for _, it := range in.Certificates {
		p.Certificates = append(p.Certificates, repository.CertificateItem{
			ID: uuid.New(), Name: it.Name, Issuer: it.Issuer, Date: it.Date,
		})
	}
	for _, it := range in.Experience {
		p.Experience = append(p.Experience, repository.ExperienceItem{
			ID: uuid.New(), Title: it.Title, Company: it.Company, StartDate: it.StartDate,
			EndDate: it.EndDate, IsCurrent: it.IsCurrent, Description: it.Description,
		})
	}

	if err := u.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProfileExists) {
			return repository.Profile{}, ErrProfileExists
		}
		return repository.Profile{}, ErrInternal
	}

	return p, nil
}

func (u *ProfileService) Get(ctx context.Context, freelancerID uuid.UUID) (ProfileView, error) {
	usr, err := u.users.GetByID(ctx, freelancerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ProfileView{}, ErrUnauthorized
		}
		return ProfileView{}, ErrInternal
	}

	view := ProfileView{
		FullName: usr.Name,
		Email:    usr.Email,
		Avatar:   AvatarLetter(usr.Name),
	}

	p, err := u.profiles.GetByUserID(ctx, freelancerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return view, nil
		}
		return ProfileView{}, ErrInternal
	}
	view.Profile = &p

	return view, nil
}

func (u *ProfileService) Update(ctx context.Context, freelancerID uuid.UUID, in UpdateProfileInput) (repository.Profile, error) {
	if emptyProfilePatch(in) {
		return repository.Profile{}, ErrInvalidInput
	}

	p, err := u.profiles.GetByUserID(ctx, freelancerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.Profile{}, ErrProfileNotFound
		}
		return repository.Profile{}, ErrInternal
	}

	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Qualifications != nil {
		p.Qualifications = cleanSkills(in.Qualifications)
	}
	if in.Skills != nil {
		p.Skills = cleanSkills(in.Skills)
	}
	if in.YearsOfExperience != nil {
		if *in.YearsOfExperience < 0 {
			return repository.Profile{}, ErrInvalidInput
		}
		p.YearsOfExperience = *in.YearsOfExperience
	}
	if in.HourlyRate != nil {
		if *in.HourlyRate < 1 {
			return repository.Profile{}, ErrInvalidInput
		}
		p.HourlyRate = *in.HourlyRate
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}

	if err := applyPortfolioPatches(&p, in.Portfolio); err != nil {
		return repository.Profile{}, err
	}
	if err := applyCertificatePatches(&p, in.Certificates); err != nil {
		return repository.Profile{}, err
	}
	if err := applyExperiencePatches(&p, in.Experience); err != nil {
		return repository.Profile{}, err
	}

	if err := u.profiles.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.Profile{}, ErrProfileNotFound
		}
		return repository.Profile{}, ErrInternal
	}

	return p, nil
}

func applyPortfolioPatches(p *repository.Profile, patches []PortfolioItemPatch) error {
	for _, patch := range patches {
		if patch.ID == nil {
			if patch.Name == nil || patch.URL == nil {
				return ErrInvalidInput
			}
			item := repository.PortfolioItem{ID: uuid.New(), Name: *patch.Name, URL: *patch.URL}
			if patch.Description != nil {
				item.Description = *patch.Description
			}
			p.Portfolio = append(p.Portfolio, item)
			continue
		}

		idx := -1
		for i := range p.Portfolio {
			if p.Portfolio[i].ID == *patch.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrProfileItemNotFound
		}
		if patch.Name != nil {
			p.Portfolio[idx].Name = *patch.Name
		}
		if patch.URL != nil {
			p.Portfolio[idx].URL = *patch.URL
		}
		if patch.Description != nil {
			p.Portfolio[idx].Description = *patch.Description
		}
	}
	return nil
}

func applyCertificatePatches(p *repository.Profile, patches []CertificateItemPatch) error {
	for _, patch := range patches {
		if patch.ID == nil {
			if patch.Name == nil {
				return ErrInvalidInput
			}
			item := repository.CertificateItem{ID: uuid.New(), Name: *patch.Name, Date: patch.Date}
			if patch.Issuer != nil {
				item.Issuer = *patch.Issuer
			}
			p.Certificates = append(p.Certificates, item)
			continue
		}

		idx := -1
		for i := range p.Certificates {
			if p.Certificates[i].ID == *patch.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrProfileItemNotFound
		}
		if patch.Name != nil {
			p.Certificates[idx].Name = *patch.Name
		}
		if patch.Issuer != nil {
			p.Certificates[idx].Issuer = *patch.Issuer
		}
		if patch.Date != nil {
			p.Certificates[idx].Date = patch.Date
		}
	}
	return nil
}

func applyExperiencePatches(p *repository.Profile, patches []ExperienceItemPatch) error {
	for _, patch := range patches {
		if patch.ID == nil {
			if patch.Title == nil || patch.Company == nil || patch.StartDate == nil {
				return ErrInvalidInput
			}
			item := repository.ExperienceItem{
				ID: uuid.New(), Title: *patch.Title, Company: *patch.Company, StartDate: *patch.StartDate,
				EndDate: patch.EndDate,
			}
			if patch.IsCurrent != nil {
				item.IsCurrent = *patch.IsCurrent
			}
			if patch.Description != nil {
				item.Description = *patch.Description
			}
			p.Experience = append(p.Experience, item)
			continue
		}

		idx := -1
		for i := range p.Experience {
			if p.Experience[i].ID == *patch.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrProfileItemNotFound
		}
		if patch.Title != nil {
			p.Experience[idx].Title = *patch.Title
		}
		if patch.Company != nil {
			p.Experience[idx].Company = *patch.Company
		}
		if patch.StartDate != nil {
			p.Experience[idx].StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			p.Experience[idx].EndDate = patch.EndDate
		}
		if patch.IsCurrent != nil {
			p.Experience[idx].IsCurrent = *patch.IsCurrent
		}
		if patch.Description != nil {
			p.Experience[idx].Description = *patch.Description
		}
	}
	return nil
}

func emptyProfilePatch(in UpdateProfileInput) bool {
	return in.Description == nil &&
		in.Qualifications == nil &&
		in.Skills == nil &&
		in.YearsOfExperience == nil &&
		in.HourlyRate == nil &&
		in.Location == nil &&
		len(in.Portfolio) == 0 &&
		len(in.Certificates) == 0 &&
		len(in.Experience) == 0
}

// AvatarLetter derives the single-letter avatar from a display name.
func AvatarLetter(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}
