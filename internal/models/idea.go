// Package models defines the typed JSON contract published by the idea feed.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultMarket is the group assigned to ideas that carry no market field.
const DefaultMarket = "Other"

// RiskLevel is the qualitative risk rating attached to an idea.
type RiskLevel string

// Recognized risk levels. Anything else renders as RiskMedium.
const (
	RiskLow        RiskLevel = "Low"
	RiskMedium     RiskLevel = "Medium"
	RiskMediumHigh RiskLevel = "Medium-High"
	RiskHigh       RiskLevel = "High"
	RiskVeryHigh   RiskLevel = "Very High"
)

// Normalize maps arbitrary input to one of the recognized risk levels,
// defaulting to RiskMedium for unrecognized values.
func (r RiskLevel) Normalize() RiskLevel {
	switch r {
	case RiskLow, RiskMedium, RiskMediumHigh, RiskHigh, RiskVeryHigh:
		return r
	default:
		return RiskMedium
	}
}

// CSSClass returns the visual class hook for the normalized risk level.
func (r RiskLevel) CSSClass() string {
	switch r.Normalize() {
	case RiskLow:
		return "risk-low"
	case RiskMediumHigh:
		return "risk-medium-high"
	case RiskHigh:
		return "risk-high"
	case RiskVeryHigh:
		return "risk-very-high"
	default:
		return "risk-medium"
	}
}

// Metrics maps metric names to numeric values. The feed producer is a
// loosely typed pipeline, so unmarshalling tolerates malformed entries:
// numeric strings are coerced, anything else is dropped rather than
// surfaced as a parse error.
type Metrics map[string]float64

// UnmarshalJSON keeps numeric values (including numeric strings) and
// silently drops nulls and non-numeric entries.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("metrics must be an object: %w", err)
	}

	out := make(Metrics, len(raw))
	for key, val := range raw {
		// A pointer target distinguishes JSON null (nil, dropped)
		// from a real zero value.
		var f *float64
		if err := json.Unmarshal(val, &f); err == nil && f != nil {
			out[key] = *f
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				out[key] = f
			}
		}
	}

	*m = out
	return nil
}

// Idea is one investment recommendation record. Ideas are immutable once
// fetched; their lifetime is a single render cycle.
type Idea struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Asset       string    `json:"asset"`
	Market      string    `json:"market,omitempty"`
	Sector      string    `json:"sector,omitempty"`
	Direction   string    `json:"direction,omitempty"`
	Rationale   string    `json:"rationale"`
	RiskLevel   RiskLevel `json:"risk_level"`
	TimeHorizon string    `json:"time_horizon"`
	Metrics     Metrics   `json:"metrics,omitempty"`
}

// MarketGroup returns the market bucket this idea belongs to,
// falling back to DefaultMarket when the field is absent.
func (i *Idea) MarketGroup() string {
	if i.Market == "" {
		return DefaultMarket
	}
	return i.Market
}

// Validate reports whether the idea carries the fields every renderable
// record needs.
func (i *Idea) Validate() error {
	if i.Title == "" {
		return fmt.Errorf("idea missing title")
	}
	if i.Type == "" {
		return fmt.Errorf("idea %q missing type", i.Title)
	}
	if i.Asset == "" {
		return fmt.Errorf("idea %q missing asset", i.Title)
	}
	return nil
}

// IdeaCollection is one day's published set of ideas plus provenance
// metadata.
type IdeaCollection struct {
	Date            string            `json:"date"`
	Ideas           []Idea            `json:"ideas"`
	DataSources     map[string]string `json:"data_sources,omitempty"`
	MarketsAnalyzed []string          `json:"markets_analyzed,omitempty"`
	DataTypesUsed   []string          `json:"data_types_used,omitempty"`
	IndicesUsed     []string          `json:"indices_used,omitempty"`
	GeneratedAt     string            `json:"generated_at,omitempty"`
}

// Sanitize drops ideas that fail validation, preserving order, and
// returns how many were quarantined.
func (c *IdeaCollection) Sanitize() int {
	kept := c.Ideas[:0]
	dropped := 0
	for _, idea := range c.Ideas {
		if idea.Validate() != nil {
			dropped++
			continue
		}
		kept = append(kept, idea)
	}
	c.Ideas = kept
	return dropped
}
