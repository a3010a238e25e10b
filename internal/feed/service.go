package feed

import (
	"context"

	"github.com/allmba/ideas-portal/internal/cache"
	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/models"
)

// Archive persists fetched collections so previously seen dates keep
// rendering while the feed origin is unreachable.
type Archive interface {
	SaveCollection(ctx context.Context, coll *models.IdeaCollection) error
	Collection(ctx context.Context, date string) (*models.IdeaCollection, error)
	Dates(ctx context.Context) ([]string, error)
}

// Cache keys for the feed documents.
const (
	keyDates      = "index:dates"
	keyTypes      = "index:types"
	keyCollection = "collection:" // + date, or "latest"
)

// Service orchestrates the feed client, response cache, catalog snapshot
// and archive. Fetch failures are never retried; the service only falls
// back to already-persisted data.
type Service struct {
	client  *Client
	cache   *cache.Cache
	catalog *Catalog
	archive Archive // optional
	logger  *common.Logger
}

// NewService creates a feed service. archive may be nil, in which case
// failed fetches surface directly.
func NewService(client *Client, c *cache.Cache, archive Archive, logger *common.Logger) *Service {
	return &Service{
		client:  client,
		cache:   c,
		catalog: NewCatalog(),
		archive: archive,
		logger:  logger,
	}
}

// Catalog returns the service's index snapshot.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Dates returns the available dates, most recent first. Falls back to
// archived dates, then the catalog snapshot, when the feed is down.
func (s *Service) Dates(ctx context.Context) ([]string, error) {
	if v, ok := s.cache.Get(keyDates); ok {
		return v.([]string), nil
	}

	dates, err := s.client.Dates(ctx)
	if err == nil {
		s.cache.Set(keyDates, dates)
		return dates, nil
	}

	if s.archive != nil {
		if archived, aerr := s.archive.Dates(ctx); aerr == nil && len(archived) > 0 {
			s.logger.Warn().Str("error", err.Error()).Msg("dates index unreachable, serving archived dates")
			return archived, nil
		}
	}
	if snapshot := s.catalog.Dates(); len(snapshot) > 0 {
		s.logger.Warn().Str("error", err.Error()).Msg("dates index unreachable, serving catalog snapshot")
		return snapshot, nil
	}

	return nil, err
}

// Types returns the distinct idea types. Falls back to the catalog
// snapshot when the feed is down.
func (s *Service) Types(ctx context.Context) ([]string, error) {
	if v, ok := s.cache.Get(keyTypes); ok {
		return v.([]string), nil
	}

	types, err := s.client.Types(ctx)
	if err == nil {
		s.cache.Set(keyTypes, types)
		return types, nil
	}

	if snapshot := s.catalog.Types(); len(snapshot) > 0 {
		s.logger.Warn().Str("error", err.Error()).Msg("types index unreachable, serving catalog snapshot")
		return snapshot, nil
	}

	return nil, err
}

// Collection returns the idea collection for date, or the latest
// collection when date is empty. The bool result reports whether the
// returned collection is a stale archive copy served because the feed
// fetch failed.
func (s *Service) Collection(ctx context.Context, date string) (*models.IdeaCollection, bool, error) {
	key := keyCollection + "latest"
	if date != "" {
		key = keyCollection + date
	}

	if v, ok := s.cache.Get(key); ok {
		return v.(*models.IdeaCollection), false, nil
	}

	var res *IngestResult
	var err error
	if date == "" {
		res, err = s.client.Latest(ctx)
	} else {
		res, err = s.client.Collection(ctx, date)
	}

	if err == nil {
		if res.Dropped > 0 {
			s.logger.Warn().
				Int("dropped", res.Dropped).
				Str("date", res.Collection.Date).
				Msg("quarantined malformed idea records")
		}
		s.cache.Set(key, res.Collection)
		s.saveToArchive(ctx, res.Collection)
		return res.Collection, false, nil
	}

	if coll := s.archivedFallback(ctx, date); coll != nil {
		s.logger.Warn().Str("error", err.Error()).Str("date", coll.Date).Msg("feed unreachable, serving archived collection")
		return coll, true, nil
	}

	return nil, false, err
}

// Refresh re-fetches the indexes and the latest collection, warming the
// cache and the archive. Used by the background refresher; any error is
// returned after all steps have been attempted.
func (s *Service) Refresh(ctx context.Context) error {
	var firstErr error

	dates, err := s.client.Dates(ctx)
	if err != nil {
		firstErr = err
	}
	types, err := s.client.Types(ctx)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	if firstErr == nil {
		s.catalog.Update(dates, types)
		s.cache.Set(keyDates, dates)
		s.cache.Set(keyTypes, types)
	}

	res, err := s.client.Latest(ctx)
	if err != nil {
		if firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	s.cache.Set(keyCollection+"latest", res.Collection)
	s.cache.Set(keyCollection+res.Collection.Date, res.Collection)
	s.saveToArchive(ctx, res.Collection)

	return firstErr
}

func (s *Service) saveToArchive(ctx context.Context, coll *models.IdeaCollection) {
	if s.archive == nil {
		return
	}
	if err := s.archive.SaveCollection(ctx, coll); err != nil {
		s.logger.Warn().Str("error", err.Error()).Str("date", coll.Date).Msg("failed to archive collection")
	}
}

func (s *Service) archivedFallback(ctx context.Context, date string) *models.IdeaCollection {
	if s.archive == nil {
		return nil
	}

	if date != "" {
		coll, err := s.archive.Collection(ctx, date)
		if err != nil {
			return nil
		}
		return coll
	}

	dates, err := s.archive.Dates(ctx)
	if err != nil || len(dates) == 0 {
		return nil
	}
	coll, err := s.archive.Collection(ctx, dates[0])
	if err != nil {
		return nil
	}
	return coll
}
