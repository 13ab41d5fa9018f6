package handler

import (
	"errors"
	"time"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"
	ucauth "gigboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ProfileHandler covers the freelancer profile lifecycle plus the password
// change that lives under the same prefix.
type ProfileHandler struct {
	uc   usecase.ProfileUsecase
	auth usecase.AuthUsecase
}

type portfolioItemRequest struct {
	ID          *uuid.UUID `json:"id"`
	Name        *string    `json:"name"`
	URL         *string    `json:"url"`
	Description *string    `json:"description"`
}

type certificateItemRequest struct {
	ID     *uuid.UUID `json:"id"`
	Name   *string    `json:"name"`
	Issuer *string    `json:"issuer"`
	Date   *time.Time `json:"date"`
}

type experienceItemRequest struct {
	ID          *uuid.UUID `json:"id"`
	Title       *string    `json:"title"`
	Company     *string    `json:"company"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsCurrent   *bool      `json:"is_current"`
	Description *string    `json:"description"`
}

type createProfileRequest struct {
	Description       string                   `json:"description"`
	Qualifications    []string                 `json:"qualifications"`
	Skills            []string                 `json:"skills"`
	YearsOfExperience int                      `json:"years_of_experience"`
	HourlyRate        float64                  `json:"hourly_rate"`
	Location          string                   `json:"location"`
	Portfolio         []portfolioItemRequest   `json:"portfolio"`
	Certificates      []certificateItemRequest `json:"certificates"`
	Experience        []experienceItemRequest  `json:"experience"`
}

type updateProfileRequest struct {
	Description       *string                  `json:"description"`
	Qualifications    []string                 `json:"qualifications"`
	Skills            []string                 `json:"skills"`
	YearsOfExperience *int                     `json:"years_of_experience"`
	HourlyRate        *float64                 `json:"hourly_rate"`
	Location          *string                  `json:"location"`
	Portfolio         []portfolioItemRequest   `json:"portfolio"`
	Certificates      []certificateItemRequest `json:"certificates"`
	Experience        []experienceItemRequest  `json:"experience"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func NewProfileHandler(uc usecase.ProfileUsecase, auth usecase.AuthUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc, auth: auth}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/create-profile", h.Create)
	r.Get("/profile", h.Get)
	r.Patch("/update-profile", h.Update)
	r.Patch("/profile/password", h.ChangePassword)
}

func (h *ProfileHandler) Create(c fiber.Ctx) error {
	freelancerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.CreateProfileInput{
		Description:       req.Description,
		Qualifications:    req.Qualifications,
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
		HourlyRate:        req.HourlyRate,
		Location:          req.Location,
	}
	for _, it := range req.Portfolio {
		if it.Name == nil || it.URL == nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
		}
		item := usecase.PortfolioItemInput{Name: *it.Name, URL: *it.URL}
		if it.Description != nil {
			item.Description = *it.Description
		}
		in.Portfolio = append(in.Portfolio, item)
	}
	for _, it := range req.Certificates {
		if it.Name == nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
		}
		item := usecase.CertificateItemInput{Name: *it.Name, Date: it.Date}
		if it.Issuer != nil {
			item.Issuer = *it.Issuer
		}
		in.Certificates = append(in.Certificates, item)
	}
	for _, it := range req.Experience {
		if it.Title == nil || it.Company == nil || it.StartDate == nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
		}
		item := usecase.ExperienceItemInput{
			Title:     *it.Title,
			Company:   *it.Company,
			StartDate: *it.StartDate,
			EndDate:   it.EndDate,
		}
		if it.IsCurrent != nil {
			item.IsCurrent = *it.IsCurrent
		}
		if it.Description != nil {
			item.Description = *it.Description
		}
		in.Experience = append(in.Experience, item)
	}

	p, err := h.uc.Create(c.Context(), freelancerID, in)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Profile created successfully.", dto.FromProfile(p))
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	freelancerID, err := callerID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Get(c.Context(), freelancerID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Profile fetched successfully.", dto.FromProfileView(view))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	freelancerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.UpdateProfileInput{
		Description:       req.Description,
		Qualifications:    req.Qualifications,
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
		HourlyRate:        req.HourlyRate,
		Location:          req.Location,
	}
	for _, it := range req.Portfolio {
		in.Portfolio = append(in.Portfolio, usecase.PortfolioItemPatch{
			ID: it.ID, Name: it.Name, URL: it.URL, Description: it.Description,
		})
	}
	for _, it := range req.Certificates {
		in.Certificates = append(in.Certificates, usecase.CertificateItemPatch{
			ID: it.ID, Name: it.Name, Issuer: it.Issuer, Date: it.Date,
		})
	}
	for _, it := range req.Experience {
		in.Experience = append(in.Experience, usecase.ExperienceItemPatch{
			ID: it.ID, Title: it.Title, Company: it.Company, StartDate: it.StartDate,
			EndDate: it.EndDate, IsCurrent: it.IsCurrent, Description: it.Description,
		})
	}

	p, err := h.uc.Update(c.Context(), freelancerID, in)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Profile updated successfully.", dto.FromProfile(p))
}

func (h *ProfileHandler) ChangePassword(c fiber.Ctx) error {
	freelancerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.auth.ChangePassword(c.Context(), freelancerID, ucauth.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Password updated successfully.", dto.FromUser(usr))
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileExists):
		return middleware.NewAppError(fiber.StatusConflict, "Profile already exists.", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found.", nil, err)
	case errors.Is(err, usecase.ErrProfileItemNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile item not found.", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
