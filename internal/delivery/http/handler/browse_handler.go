package handler

import (
	"errors"
	"strconv"
	"strings"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// BrowseHandler serves the freelancer-facing open-job listing.
type BrowseHandler struct {
	uc usecase.BrowseUsecase
}

func NewBrowseHandler(uc usecase.BrowseUsecase) *BrowseHandler {
	return &BrowseHandler{uc: uc}
}

func (h *BrowseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.Browse)
	r.Get("/jobs/:jobId", h.Get)
}

func (h *BrowseHandler) Browse(c fiber.Ctx) error {
	freelancerID, err := callerID(c)
	if err != nil {
		return err
	}

	params := usecase.BrowseJobsParams{
		Search:    strings.TrimSpace(c.Query("search")),
		Skills:    splitCSV(c.Query("skills")),
		Locations: splitCSV(c.Query("location")),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}
	if v, ok := queryFloat(c, "min_rate"); ok {
		params.MinRate = &v
	}
	if v, ok := queryFloat(c, "max_rate"); ok {
		params.MaxRate = &v
	}

	res, err := h.uc.BrowseOpenJobs(c.Context(), freelancerID, params)
	if err != nil {
		return mapBrowseUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Jobs fetched successfully.", dto.FromBrowseResult(res))
}

func (h *BrowseHandler) Get(c fiber.Ctx) error {
	freelancerID, err := callerID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	item, err := h.uc.GetOpenJob(c.Context(), freelancerID, jobID)
	if err != nil {
		return mapBrowseUsecaseError(err)
	}

	data := dto.BrowseJobResponse{JobResponse: dto.FromJob(item.Job), HasApplied: item.HasApplied}
	return response.Success(c, fiber.StatusOK, "Job fetched successfully.", data)
}

func mapBrowseUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found.", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func splitCSV(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryInt(c fiber.Ctx, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return v
}

func queryFloat(c fiber.Ctx, key string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Query(key)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
