package handler

import (
	"errors"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/metrics"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ApplicationHandler covers both sides of the application workflow: the
// freelancer applying and checking stats, the client reviewing and deciding.
type ApplicationHandler struct {
	uc      usecase.ApplicationUsecase
	metrics *metrics.Metrics
}

type applyRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase, m *metrics.Metrics) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, metrics: m}
}

func (h *ApplicationHandler) RegisterClientRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs/:jobId/applications", h.ListForJob)
	r.Get("/applicants", h.ListAll)
	r.Patch("/applicants/:applicantId/status", h.SetStatus)
}

func (h *ApplicationHandler) RegisterFreelancerRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs/apply", h.Apply)
	r.Get("/dashboard", h.Dashboard)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	freelancerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	jobID, err := parseUUIDField(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id.", nil, err)
	}

	a, err := h.uc.Apply(c.Context(), freelancerID, usecase.ApplyInput{JobID: jobID, CoverLetter: req.CoverLetter})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	if h.metrics != nil {
		h.metrics.ApplicationsMade.Inc()
	}

	data := map[string]any{
		"application": dto.FromApplication(a),
		"has_applied": true,
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted successfully.", data)
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	res, err := h.uc.ListForJob(c.Context(), clientID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	data := map[string]any{
		"job_title":    res.JobTitle,
		"applications": dto.FromApplicationDetails(res.Applications),
	}
	return response.Success(c, fiber.StatusOK, "Applications fetched successfully.", data)
}

func (h *ApplicationHandler) ListAll(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}

	apps, err := h.uc.ListAllForOwner(c.Context(), clientID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Applicants fetched successfully.", dto.FromApplicationDetails(apps))
}

func (h *ApplicationHandler) SetStatus(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}
	applicationID, err := pathUUID(c, "applicantId")
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	d, err := h.uc.SetStatus(c.Context(), clientID, applicationID, req.Status)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Application status updated.", dto.FromApplicationDetail(d))
}

func (h *ApplicationHandler) Dashboard(c fiber.Ctx) error {
	freelancerID, err := callerID(c)
	if err != nil {
		return err
	}

	counts, err := h.uc.DashboardStats(c.Context(), freelancerID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Dashboard stats fetched successfully.", dto.FromApplicationCounts(counts))
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found.", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found.", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job.", nil, err)
	case errors.Is(err, usecase.ErrNotJobOwner):
		return middleware.NewAppError(fiber.StatusForbidden, "Access denied. Not the job owner.", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
