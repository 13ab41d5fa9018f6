package handler

import (
	"strings"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// SearchHandler serves the client-side freelancer directory.
type SearchHandler struct {
	uc usecase.SearchUsecase
}

func NewSearchHandler(uc usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/search/freelancers", h.Search)
}

func (h *SearchHandler) Search(c fiber.Ctx) error {
	clientID, err := callerID(c)
	if err != nil {
		return err
	}

	params := usecase.SearchFreelancersParams{
		Name:   strings.TrimSpace(c.Query("name")),
		Skills: splitCSV(c.Query("skills")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	res, err := h.uc.SearchFreelancers(c.Context(), clientID, params)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, "Freelancers fetched successfully.", dto.FromFreelancerSearch(res))
}
