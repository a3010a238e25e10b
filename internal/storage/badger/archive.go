package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// CollectionRecord is the persisted form of an idea collection.
type CollectionRecord struct {
	Date       string `badgerhold:"key"`
	Collection models.IdeaCollection
	ArchivedAt time.Time
}

// IdeaArchive persists fetched idea collections in BadgerDB so they
// remain available while the feed origin is unreachable.
type IdeaArchive struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewIdeaArchive creates an idea archive backed by BadgerDB.
func NewIdeaArchive(db *BadgerDB, logger *common.Logger) *IdeaArchive {
	return &IdeaArchive{
		db:     db,
		logger: logger,
	}
}

// SaveCollection stores or replaces the collection for its date.
func (a *IdeaArchive) SaveCollection(_ context.Context, coll *models.IdeaCollection) error {
	if coll == nil || coll.Date == "" {
		return fmt.Errorf("cannot archive collection without a date")
	}

	record := CollectionRecord{
		Date:       coll.Date,
		Collection: *coll,
		ArchivedAt: time.Now().UTC(),
	}
	if err := a.db.Store().Upsert(coll.Date, &record); err != nil {
		return fmt.Errorf("failed to archive collection %s: %w", coll.Date, err)
	}

	a.logger.Debug().Str("date", coll.Date).Int("ideas", len(coll.Ideas)).Msg("archived idea collection")
	return nil
}

// Collection retrieves the archived collection for a date.
func (a *IdeaArchive) Collection(_ context.Context, date string) (*models.IdeaCollection, error) {
	var record CollectionRecord
	err := a.db.Store().Get(date, &record)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("no archived collection for %s", date)
		}
		return nil, fmt.Errorf("failed to load archived collection %s: %w", date, err)
	}
	return &record.Collection, nil
}

// Dates returns all archived dates, most recent first.
func (a *IdeaArchive) Dates(_ context.Context) ([]string, error) {
	var records []CollectionRecord
	if err := a.db.Store().Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list archived dates: %w", err)
	}

	dates := make([]string, 0, len(records))
	for _, record := range records {
		dates = append(dates, record.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}
