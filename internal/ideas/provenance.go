package ideas

import (
	"sort"

	"github.com/allmba/ideas-portal/internal/models"
)

// DataSource is one named provenance entry.
type DataSource struct {
	Name        string
	Description string
}

// Provenance summarizes where a collection's data came from. All
// slices hold first-seen order from a single pass over the ideas.
type Provenance struct {
	Markets     []string
	Sectors     []string
	Types       []string
	DataTypes   []string
	DataSources []DataSource
}

// dataTypeRules maps metric keys to the data-type label their presence
// implies. Checked in declaration order so labels come out stable.
var dataTypeRules = []struct {
	label string
	keys  []string
}{
	{"Technical Indicators", []string{"rsi", "macd"}},
	{"Alternative Data", []string{"finnhub_score"}},
	{"Insider Trading Data", []string{"net_buys", "insider_trend"}},
	{"News Sentiment", []string{"sentiment"}},
}

// fallbackSourceOrder fixes the display order of the default data
// sources when a collection carries none of its own.
var fallbackSourceOrder = []string{
	"Stock Data",
	"Market Indices",
	"Sectors Analyzed",
	"Economic Data",
	"Technical Analysis",
	"News Sentiment",
	"Insider Trading",
}

var fallbackSources = map[string]string{
	"Stock Data":         "Alpha Vantage, Twelve Data, and Finnhub APIs",
	"Market Indices":     "S&P 500, NASDAQ, FTSE 100",
	"Sectors Analyzed":   "Various sectors",
	"Economic Data":      "FRED (Federal Reserve Economic Data)",
	"Technical Analysis": "RSI, MACD, Moving Averages",
	"News Sentiment":     "News API",
	"Insider Trading":    "Finnhub API",
}

// DeriveProvenance builds the provenance summary for a collection.
// The collection's own data_sources mapping wins when present;
// otherwise the fixed fallback mapping is used.
func DeriveProvenance(coll *models.IdeaCollection) Provenance {
	var p Provenance
	if coll == nil {
		return p
	}

	seenMarkets := make(map[string]bool)
	seenSectors := make(map[string]bool)
	seenTypes := make(map[string]bool)
	seenDataTypes := make(map[string]bool)

	for _, idea := range coll.Ideas {
		if idea.Market != "" && !seenMarkets[idea.Market] {
			seenMarkets[idea.Market] = true
			p.Markets = append(p.Markets, idea.Market)
		}
		if idea.Sector != "" && !seenSectors[idea.Sector] {
			seenSectors[idea.Sector] = true
			p.Sectors = append(p.Sectors, idea.Sector)
		}
		if idea.Type != "" && !seenTypes[idea.Type] {
			seenTypes[idea.Type] = true
			p.Types = append(p.Types, idea.Type)
		}
		for _, rule := range dataTypeRules {
			if seenDataTypes[rule.label] {
				continue
			}
			for _, key := range rule.keys {
				if _, ok := idea.Metrics[key]; ok {
					seenDataTypes[rule.label] = true
					p.DataTypes = append(p.DataTypes, rule.label)
					break
				}
			}
		}
	}

	p.DataSources = sourceEntries(coll.DataSources)
	return p
}

// sourceEntries orders a data_sources mapping for display. Known
// category names keep their canonical order; unknown extras follow
// alphabetically.
func sourceEntries(sources map[string]string) []DataSource {
	if len(sources) == 0 {
		out := make([]DataSource, 0, len(fallbackSourceOrder))
		for _, name := range fallbackSourceOrder {
			out = append(out, DataSource{Name: name, Description: fallbackSources[name]})
		}
		return out
	}

	var out []DataSource
	used := make(map[string]bool)
	for _, name := range fallbackSourceOrder {
		if desc, ok := sources[name]; ok {
			out = append(out, DataSource{Name: name, Description: desc})
			used[name] = true
		}
	}
	var extras []string
	for name := range sources {
		if !used[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		out = append(out, DataSource{Name: name, Description: sources[name]})
	}
	return out
}
