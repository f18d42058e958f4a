package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wderue/portfolio-backend/errs"
	"github.com/wderue/portfolio-backend/metrics"
	"github.com/wderue/portfolio-backend/models"
)

// Cache TTLs. Listing results go stale quickly once the catalog is reseeded;
// the tag vocabulary barely moves, so it keeps a longer memo.
const (
	ListTTL    = 5 * time.Minute
	OptionsTTL = time.Hour
)

// ProjectStore is the read surface the service needs from the database layer.
type ProjectStore interface {
	FindFiltered(ctx context.Context, search string, tags map[models.TagCategory][]string) ([]*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	DistinctTagValues(ctx context.Context, category models.TagCategory) ([]string, error)
}

// TagOptions holds the distinct tag values currently in use, per category.
// It feeds the filter UI, which only offers values that would match something.
type TagOptions map[models.TagCategory][]string

// Service resolves filters into ordered project lists, applying admission
// control and short-lived memoization in front of the store. All state is
// process-scoped; nothing survives a restart.
type Service struct {
	store   ProjectStore
	cache   Cache
	limiter *WindowLimiter
	logger  zerolog.Logger
	devMode bool
}

// NewService wires the query service. In development mode both the cache and
// the rate limiter are bypassed so the catalog always reads fresh.
func NewService(store ProjectStore, cache Cache, limiter *WindowLimiter, logger zerolog.Logger, devMode bool) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		limiter: limiter,
		logger:  logger.With().Str("component", "catalog").Logger(),
		devMode: devMode,
	}
}

func (s *Service) admit(caller string) error {
	if s.devMode || s.limiter == nil {
		return nil
	}
	if caller == "" {
		caller = GlobalCaller
	}
	if !s.limiter.Allow(caller) {
		metrics.IncrementRateLimited()
		return errs.NewRateLimitedError(s.limiter.RetryAfter(caller))
	}
	return nil
}

func (s *Service) cacheGet(ctx context.Context, key string, out any) bool {
	if s.devMode {
		return false
	}
	data, ok := s.cache.Get(ctx, key)
	if !ok {
		metrics.IncrementCacheLookup("miss")
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		metrics.IncrementCacheLookup("miss")
		return false
	}
	metrics.IncrementCacheLookup("hit")
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) {
	if s.devMode {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("could not serialize result for caching")
		return
	}
	s.cache.Set(ctx, key, data, ttl, tags...)
}

// List resolves a filter into the full matching project list, ordered by
// last update descending with untimestamped projects last. Results within
// the TTL are served from cache even if the store changed in between.
func (s *Service) List(ctx context.Context, caller string, filter Filter) ([]*models.Project, error) {
	if err := s.admit(caller); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	key := filter.CacheKey()
	var cached []*models.Project
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	projects, err := s.store.FindFiltered(ctx, filter.Search, filter.Tags)
	metrics.RecordStoreQueryDuration("list", time.Since(start))
	if err != nil {
		s.logger.Error().Err(err).Str("filter", key).Msg("project listing failed")
		return nil, errs.NewDatabaseError("list", "projects", err)
	}

	s.cacheSet(ctx, key, projects, ListTTL, TagProjects)
	return projects, nil
}

// GetByID resolves a single project. Absence is not an error: the result is
// (nil, nil) so the caller can distinguish "no such project" from a failure.
func (s *Service) GetByID(ctx context.Context, caller string, id uuid.UUID) (*models.Project, error) {
	if err := s.admit(caller); err != nil {
		return nil, err
	}

	key := "project:" + id.String()
	var cached *models.Project
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	project, err := s.store.FindByID(ctx, id)
	metrics.RecordStoreQueryDuration("get", time.Since(start))
	if err != nil {
		s.logger.Error().Err(err).Str("projectID", id.String()).Msg("project lookup failed")
		return nil, errs.NewDatabaseError("find", "project", err)
	}

	s.cacheSet(ctx, key, project, ListTTL, TagProjects)
	return project, nil
}

// TagOptions returns the distinct tag values in use per category. Same
// admission and caching discipline as listing, with the longer TTL.
func (s *Service) TagOptions(ctx context.Context, caller string) (TagOptions, error) {
	if err := s.admit(caller); err != nil {
		return nil, err
	}

	const key = "filter-options"
	var cached TagOptions
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	options := make(TagOptions, len(models.Categories))
	start := time.Now()
	for _, category := range models.Categories {
		values, err := s.store.DistinctTagValues(ctx, category)
		if err != nil {
			s.logger.Error().Err(err).Str("category", string(category)).Msg("tag option lookup failed")
			return nil, errs.NewDatabaseError("list", "tag options", err)
		}
		options[category] = values
	}
	metrics.RecordStoreQueryDuration("tag_options", time.Since(start))

	s.cacheSet(ctx, key, options, OptionsTTL, TagProjects, "filter-options")
	return options, nil
}

// InvalidateProjects drops every cache entry derived from the project store.
// The seed loader calls this after a wipe-and-reload.
func (s *Service) InvalidateProjects(ctx context.Context) {
	s.cache.Invalidate(ctx, TagProjects)
}
