package ideas

import (
	"encoding/json"
	"testing"

	"github.com/allmba/ideas-portal/internal/models"
)

func TestFormatMetrics_Rules(t *testing.T) {
	tests := []struct {
		key   string
		value float64
		want  string
	}{
		{"return", 12.3456, "12.35%"},
		{"volatility", 8.1, "8.10%"},
		{"yield_change", -0.25, "-0.25%"},
		{"rsi", 67.89, "67.9"},
		{"finnhub_score", 0.57, "0.6"},
		{"finnhub_score", 0.72, "0.7"},
		{"sentiment", 0.5, "50%"},
		{"sentiment", 0.876, "88%"},
		{"price", 12.3, "$12.30"},
		{"price", 1234.5, "$1,234.50"},
		{"net_buys", 12, "12"},
		{"stocks_count", 7, "7"},
	}

	for _, tt := range tests {
		out := FormatMetrics(models.Metrics{tt.key: tt.value})
		if len(out) != 1 {
			t.Errorf("%s: expected 1 metric, got %+v", tt.key, out)
			continue
		}
		if out[0].Value != tt.want {
			t.Errorf("%s(%v) = %q, want %q", tt.key, tt.value, out[0].Value, tt.want)
		}
	}
}

func TestFormatMetrics_UnknownKeysOmitted(t *testing.T) {
	out := FormatMetrics(models.Metrics{
		"return":       1.0,
		"avg_return":   2.0,
		"sharpe_ratio": 3.0,
	})

	if len(out) != 1 || out[0].Key != "return" {
		t.Errorf("unknown keys must be dropped, got %+v", out)
	}
}

func TestFormatMetrics_CanonicalOrder(t *testing.T) {
	out := FormatMetrics(models.Metrics{
		"price":  10,
		"return": 5,
		"rsi":    50,
	})

	want := []string{"return", "rsi", "price"}
	if len(out) != len(want) {
		t.Fatalf("expected %d metrics, got %+v", len(want), out)
	}
	for i, key := range want {
		if out[i].Key != key {
			t.Errorf("metric %d = %s, want %s", i, out[i].Key, key)
		}
	}
}

func TestFormatMetrics_NullValueNeverRenders(t *testing.T) {
	var m models.Metrics
	if err := json.Unmarshal([]byte(`{"price": null, "return": 2.5}`), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out := FormatMetrics(m)
	for _, metric := range out {
		if metric.Key == "price" {
			t.Errorf("null price must not render a value, got %q", metric.Value)
		}
	}
	if len(out) != 1 || out[0].Value != "2.50%" {
		t.Errorf("expected only the return metric, got %+v", out)
	}
}

func TestFormatMetrics_Empty(t *testing.T) {
	if out := FormatMetrics(nil); out != nil {
		t.Errorf("expected nil for empty metrics, got %+v", out)
	}
}
