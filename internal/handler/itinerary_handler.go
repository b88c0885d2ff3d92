package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/itinerary-planner-api/internal/catalog"
	"github.com/noah-isme/itinerary-planner-api/internal/dto"
	"github.com/noah-isme/itinerary-planner-api/internal/middleware"
	"github.com/noah-isme/itinerary-planner-api/internal/models"
	"github.com/noah-isme/itinerary-planner-api/internal/service"
	appErrors "github.com/noah-isme/itinerary-planner-api/pkg/errors"
	"github.com/noah-isme/itinerary-planner-api/pkg/response"
)

type itineraryPlanner interface {
	Plan(ctx context.Context, actor service.Actor, req dto.PlanItineraryRequest) (*dto.PlanItineraryResponse, error)
	Save(ctx context.Context, actor service.Actor, req dto.SaveItineraryRequest) (string, error)
	List(ctx context.Context, actor service.Actor, query dto.ListItinerariesQuery) ([]models.Itinerary, *models.Pagination, error)
	Get(ctx context.Context, actor service.Actor, id string) (*dto.ItineraryDetailResponse, error)
	Update(ctx context.Context, actor service.Actor, id string, req dto.UpdateItineraryRequest) (*models.Itinerary, error)
	Delete(ctx context.Context, actor service.Actor, id string) error
	Export(ctx context.Context, actor service.Actor, id, format string) (*service.ExportResult, error)
	Catalogs() []catalog.Summary
	ReloadCatalogs(ctx context.Context) (int, error)
}

// ItineraryHandler exposes planning and itinerary endpoints.
type ItineraryHandler struct {
	planner itineraryPlanner
}

// NewItineraryHandler constructs the handler.
func NewItineraryHandler(svc *service.ItineraryPlannerService) *ItineraryHandler {
	return &ItineraryHandler{planner: svc}
}

// Plan godoc
// @Summary Plan an itinerary
// @Description Runs the backtracking scheduler over inline activities or a named catalog. A schedule that cannot be built is reported as status no_solution with HTTP 200.
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param payload body dto.PlanItineraryRequest true "Plan payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /itineraries/plan [post]
func (h *ItineraryHandler) Plan(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.PlanItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid plan payload"))
		return
	}
	result, err := h.planner.Plan(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, result.Cached)
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}

// Save godoc
// @Summary Save a planned itinerary
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param payload body dto.SaveItineraryRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /itineraries [post]
func (h *ItineraryHandler) Save(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.SaveItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	id, err := h.planner.Save(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SaveItineraryResponse{ID: id})
}

// List godoc
// @Summary List itineraries
// @Description Admins see every itinerary, other users only their own. Ordered by start date.
// @Tags Itineraries
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /itineraries [get]
func (h *ItineraryHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var query dto.ListItinerariesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pagination"))
		return
	}
	items, pagination, err := h.planner.List(c.Request.Context(), actor, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get itinerary with slots
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /itineraries/{id} [get]
func (h *ItineraryHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	detail, err := h.planner.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Update godoc
// @Summary Update itinerary
// @Description Partial update; omitted fields are left unchanged.
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param id path string true "Itinerary ID"
// @Param payload body dto.UpdateItineraryRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /itineraries/{id} [put]
func (h *ItineraryHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}
	itinerary, err := h.planner.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, itinerary, nil)
}

// Delete godoc
// @Summary Delete itinerary
// @Tags Itineraries
// @Param id path string true "Itinerary ID"
// @Success 204
// @Security BearerAuth
// @Router /itineraries/{id} [delete]
func (h *ItineraryHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.planner.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export itinerary as CSV or PDF
// @Tags Itineraries
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Itinerary ID"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /itineraries/{id}/export [get]
func (h *ItineraryHandler) Export(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := h.planner.Export(c.Request.Context(), actor, c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}

// Catalogs godoc
// @Summary List activity catalogs
// @Tags Catalogs
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /catalogs [get]
func (h *ItineraryHandler) Catalogs(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.planner.Catalogs(), nil)
}

// ReloadCatalogs godoc
// @Summary Reload activity catalogs from disk
// @Description Admin only. Cached plan outcomes are dropped.
// @Tags Catalogs
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /catalogs/reload [post]
func (h *ItineraryHandler) ReloadCatalogs(c *gin.Context) {
	count, err := h.planner.ReloadCatalogs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"loaded": count}, nil)
}
