package feed

import (
	"fmt"

	"github.com/allmba/ideas-portal/internal/models"
)

type collectionDoc = models.IdeaCollection

// IngestResult is a validated idea collection plus the number of records
// quarantined on the way in.
type IngestResult struct {
	Collection *models.IdeaCollection
	Dropped    int
}

// ingest validates a fetched collection document. Records missing
// required fields are dropped rather than propagated into rendering.
func ingest(doc collectionDoc) (*IngestResult, error) {
	if doc.Date == "" {
		return nil, fmt.Errorf("feed collection missing date")
	}
	dropped := doc.Sanitize()
	return &IngestResult{Collection: &doc, Dropped: dropped}, nil
}
