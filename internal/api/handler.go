package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/admin"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/composer"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/middleware"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
	"github.com/rs/zerolog"
)

type Searcher interface {
	Search(ctx context.Context, query string) (records.Hits, error)
}

type Composer interface {
	Compose(ctx context.Context, query string, hits records.Hits, augment bool) composer.Result
}

type FacilityAdder interface {
	AddFacility(ctx context.Context, facility records.Facility) (int64, error)
}

type Handler struct {
	searcher Searcher
	composer Composer
	admin    FacilityAdder
	logger   *zerolog.Logger
}

func NewHandler(searcher Searcher, composer Composer, admin FacilityAdder, logger *zerolog.Logger) *Handler {
	return &Handler{
		searcher: searcher,
		composer: composer,
		admin:    admin,
		logger:   logger,
	}
}

// POST /api/query
// Body: QueryRequest
// Returns: QueryResponse
func (h *Handler) Query(req *restful.Request, resp *restful.Response) {
	var queryRequest QueryRequest
	if err := req.ReadEntity(&queryRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, fmt.Errorf("%w: %v", middleware.ErrInvalidBody, err), http.StatusBadRequest)
		return
	}

	if err := queryRequest.Validate(); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("message", queryRequest.Message).
		Bool("use_llm", queryRequest.UseLLM).
		Msg("Process query")

	ctx := req.Request.Context()

	hits, err := h.searcher.Search(ctx, queryRequest.Message)
	if err != nil {
		middleware.HandleError(resp, fmt.Errorf("%w: %w", middleware.ErrStoreFailure, err), http.StatusInternalServerError)
		return
	}

	result := h.composer.Compose(ctx, queryRequest.Message, hits, queryRequest.UseLLM)

	resp.WriteHeaderAndEntity(http.StatusOK, QueryResponse{
		Reply: result.Reply,
		Hits:  result.Hits,
	})
}

// GET /api/search?q=
func (h *Handler) Search(req *restful.Request, resp *restful.Response) {
	query := req.QueryParameter("q")

	hits, err := h.searcher.Search(req.Request.Context(), query)
	if err != nil {
		middleware.HandleError(resp, fmt.Errorf("%w: %w", middleware.ErrStoreFailure, err), http.StatusInternalServerError)
		return
	}

	h.logger.Debug().
		Str("query", query).
		Int("hits", hits.Total()).
		Msg("Search complete")

	resp.WriteHeaderAndEntity(http.StatusOK, SearchResponse{Hits: hits})
}

// POST /api/admin/facilities
func (h *Handler) AddFacility(req *restful.Request, resp *restful.Response) {
	var facilityRequest FacilityRequest
	if err := req.ReadEntity(&facilityRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, fmt.Errorf("%w: %v", middleware.ErrInvalidBody, err), http.StatusBadRequest)
		return
	}

	id, err := h.admin.AddFacility(req.Request.Context(), facilityRequest.Facility())
	if err != nil {
		if errors.Is(err, admin.ErrInvalidFacility) {
			middleware.HandleError(resp, fmt.Errorf("invalid facility: %w", middleware.ErrMissingName), http.StatusBadRequest)
			return
		}
		middleware.HandleError(resp, fmt.Errorf("%w: %w", middleware.ErrStoreFailure, err), http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, FacilityResponse{ID: id})
}

// Health handler GET /api/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: Version,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
