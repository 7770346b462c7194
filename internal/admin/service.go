package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
	"github.com/rs/zerolog"
)

var ErrInvalidFacility = errors.New("facility name is required")

type FacilityWriter interface {
	InsertFacility(ctx context.Context, f records.Facility) (int64, error)
}

// Invalidator drops cached search results after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	store  FacilityWriter
	cache  Invalidator
	logger *zerolog.Logger
}

// NewService builds the admin write path. cache may be nil.
func NewService(store FacilityWriter, cache Invalidator, logger *zerolog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// AddFacility inserts one facility and returns its generated id.
func (s *Service) AddFacility(ctx context.Context, facility records.Facility) (int64, error) {
	facility.Name = strings.TrimSpace(facility.Name)
	if facility.Name == "" {
		return 0, ErrInvalidFacility
	}
	facility.ID = 0

	id, err := s.store.InsertFacility(ctx, facility)
	if err != nil {
		return 0, fmt.Errorf("failed to add facility: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to invalidate search cache")
		}
	}

	s.logger.Info().
		Int64("id", id).
		Str("name", facility.Name).
		Msg("Facility added")

	return id, nil
}
