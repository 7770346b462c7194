package search

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Store is the read side of the record store.
type Store interface {
	FindSchedules(ctx context.Context, pattern string) ([]records.Schedule, error)
	FindFacilities(ctx context.Context, pattern string) ([]records.Facility, error)
	FindDining(ctx context.Context, pattern string) ([]records.DiningOption, error)
	FindLibrary(ctx context.Context, pattern string) ([]records.LibraryItem, error)
	FindAdmin(ctx context.Context, pattern string) ([]records.AdminOffice, error)
}

// Cache stores hits per query. Get reports the generation it looked under; Set
// must only make the entry visible if that generation is still current.
// Implementations treat failures as misses and return a negative generation
// when it is unknown.
type Cache interface {
	Get(ctx context.Context, query string) (records.Hits, int64, bool)
	Set(ctx context.Context, generation int64, query string, hits records.Hits)
}

type Service struct {
	store  Store
	cache  Cache
	logger *zerolog.Logger
}

// NewService builds a search service. cache may be nil.
func NewService(store Store, cache Cache, logger *zerolog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Search runs query against every collection and returns all hits.
func (s *Service) Search(ctx context.Context, query string) (records.Hits, error) {
	// Captured before the store reads so a concurrent invalidation wins.
	generation := int64(-1)
	if s.cache != nil {
		hits, gen, ok := s.cache.Get(ctx, query)
		if ok {
			s.logger.Debug().Str("query", query).Msg("Search cache hit")
			return hits.Normalize(), nil
		}
		generation = gen
	}

	hits := records.NewHits()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found, err := s.store.FindSchedules(gctx, query)
		hits.Schedules = found
		return err
	})
	g.Go(func() error {
		found, err := s.store.FindFacilities(gctx, query)
		hits.Facilities = found
		return err
	})
	g.Go(func() error {
		found, err := s.store.FindDining(gctx, query)
		hits.Dining = found
		return err
	})
	g.Go(func() error {
		found, err := s.store.FindLibrary(gctx, query)
		hits.Library = found
		return err
	})
	g.Go(func() error {
		found, err := s.store.FindAdmin(gctx, query)
		hits.Admin = found
		return err
	})

	if err := g.Wait(); err != nil {
		return records.Hits{}, fmt.Errorf("unable to search campus records: %w", err)
	}

	hits = hits.Normalize()
	s.logger.Debug().
		Str("query", query).
		Int("schedules", len(hits.Schedules)).
		Int("facilities", len(hits.Facilities)).
		Int("dining", len(hits.Dining)).
		Int("library", len(hits.Library)).
		Int("admin", len(hits.Admin)).
		Msg("Search complete")

	if s.cache != nil {
		s.cache.Set(ctx, generation, query, hits)
	}

	return hits, nil
}
