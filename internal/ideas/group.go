// Package ideas implements the presentation pipeline for investment
// idea collections: type filtering, market grouping, metric formatting
// and provenance derivation.
package ideas

import (
	"github.com/allmba/ideas-portal/internal/models"
)

// MarketGroup is a display bucket of ideas sharing a market value.
type MarketGroup struct {
	Market string
	Ideas  []models.Idea
}

// FilterByType keeps only ideas whose type equals filter exactly.
// An empty filter keeps everything.
func FilterByType(list []models.Idea, filter string) []models.Idea {
	if filter == "" {
		return list
	}
	var out []models.Idea
	for _, idea := range list {
		if idea.Type == filter {
			out = append(out, idea)
		}
	}
	return out
}

// GroupByMarket partitions ideas into market groups. The "Other" group
// is seeded first so ideas without a market always lead the display,
// then groups appear in first-seen order. Order within each group is
// the original fetch order. Empty groups are not emitted.
func GroupByMarket(list []models.Idea) []MarketGroup {
	buckets := map[string][]models.Idea{
		models.DefaultMarket: nil,
	}
	order := []string{models.DefaultMarket}

	for _, idea := range list {
		market := idea.MarketGroup()
		if _, seen := buckets[market]; !seen {
			order = append(order, market)
		}
		buckets[market] = append(buckets[market], idea)
	}

	groups := make([]MarketGroup, 0, len(order))
	for _, market := range order {
		if len(buckets[market]) == 0 {
			continue
		}
		groups = append(groups, MarketGroup{Market: market, Ideas: buckets[market]})
	}
	return groups
}
