package handler

import (
	"errors"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/metrics"
	"gigboard/internal/pkg/response"
	"gigboard/internal/repository"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// JobHandler covers the client-side job CRUD.
type JobHandler struct {
	uc      usecase.JobUsecase
	metrics *metrics.Metrics
}

type createJobRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	Budget         float64  `json:"budget"`
	Skills         []string `json:"skills"`
	Status         string   `json:"status"`
}

type updateJobRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Location       *string  `json:"location"`
	EmploymentType *string  `json:"employment_type"`
	Budget         *float64 `json:"budget"`
	Skills         []string `json:"skills"`
	Status         *string  `json:"status"`
}

func NewJobHandler(uc usecase.JobUsecase, m *metrics.Metrics) *JobHandler {
	return &JobHandler{uc: uc, metrics: m}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/my-jobs", h.MyJobs)
	r.Post("/jobs", h.Create)
	r.Get("/jobs/:jobId", h.Get)
	r.Put("/jobs/:jobId", h.Update)
	r.Delete("/jobs/:jobId", h.Delete)
}

func (h *JobHandler) MyJobs(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}

	jobs, err := h.uc.ListOwn(c.Context(), clientID)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Jobs fetched successfully.", dto.FromJobs(jobs))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.Create(c.Context(), clientID, usecase.CreateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Budget:         req.Budget,
		Skills:         req.Skills,
		Status:         req.Status,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	if h.metrics != nil && j.Status == repository.JobStatusOpen {
		h.metrics.JobsOpened.Inc()
	}

	return response.Success(c, fiber.StatusCreated, "Job created successfully.", dto.FromJob(j))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	j, err := h.uc.Get(c.Context(), clientID, jobID)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job fetched successfully.", dto.FromJob(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.Update(c.Context(), clientID, jobID, usecase.UpdateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Budget:         req.Budget,
		Skills:         req.Skills,
		Status:         req.Status,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job updated successfully.", dto.FromJob(j))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), clientID, jobID); err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job deleted successfully.", nil)
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found.", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
