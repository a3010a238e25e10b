package ideas

import (
	"fmt"
	"math"

	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/models"
)

// Metric is one formatted metric ready for display.
type Metric struct {
	Key   string
	Label string
	Value string
}

// metricSpec pairs a metric key with its display label and formatter.
// Keys outside this table are dropped so new backend metrics never
// break rendering.
type metricSpec struct {
	key    string
	label  string
	format func(float64) string
}

var metricSpecs = []metricSpec{
	{"return", "Return", formatPercent},
	{"volatility", "Volatility", formatPercent},
	{"rsi", "RSI", formatOneDecimal},
	{"sentiment", "Sentiment", formatSentiment},
	{"yield_change", "Yield Change", formatPercent},
	{"price", "Price", common.FormatMoney},
	{"finnhub_score", "Finnhub Score", formatOneDecimal},
	{"net_buys", "Net Buys", formatInteger},
	{"stocks_count", "Stocks", formatInteger},
}

func formatPercent(v float64) string {
	return common.FormatPct(v)
}

func formatOneDecimal(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// formatSentiment renders a 0..1 score as an integer percentage.
func formatSentiment(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v*100)))
}

func formatInteger(v float64) string {
	return fmt.Sprintf("%d", int64(v))
}

// FormatMetrics renders the recognized metrics of an idea in canonical
// display order. Unrecognized keys are silently omitted.
func FormatMetrics(m models.Metrics) []Metric {
	if len(m) == 0 {
		return nil
	}
	var out []Metric
	for _, spec := range metricSpecs {
		v, ok := m[spec.key]
		if !ok {
			continue
		}
		out = append(out, Metric{Key: spec.key, Label: spec.label, Value: spec.format(v)})
	}
	return out
}
