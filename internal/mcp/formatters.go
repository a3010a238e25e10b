package mcp

import (
	"fmt"
	"strings"

	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/ideas"
	"github.com/allmba/ideas-portal/internal/models"
)

// signedMetricKeys are change figures shown with an explicit +/- in
// markdown, where there is no color cue to carry direction.
var signedMetricKeys = map[string]bool{
	"return":       true,
	"yield_change": true,
}

// formatIdeas formats an idea collection as markdown, applying the same
// type filter and market grouping the portal page uses.
func formatIdeas(coll *models.IdeaCollection, typeFilter string, stale bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Investment Ideas: %s\n\n", coll.Date))
	if stale {
		sb.WriteString("_Served from the local archive; the live feed was unreachable._\n\n")
	}
	if typeFilter != "" {
		sb.WriteString(fmt.Sprintf("**Type filter:** %s\n\n", typeFilter))
	}

	filtered := ideas.FilterByType(coll.Ideas, typeFilter)
	if len(filtered) == 0 {
		sb.WriteString("No ideas found for this selection.\n")
		return sb.String()
	}

	for _, group := range ideas.GroupByMarket(filtered) {
		sb.WriteString(fmt.Sprintf("## %s\n\n", group.Market))
		for _, idea := range group.Ideas {
			writeIdea(&sb, idea)
		}
	}

	writeProvenance(&sb, coll)

	return sb.String()
}

func writeIdea(sb *strings.Builder, idea models.Idea) {
	sb.WriteString(fmt.Sprintf("### %s\n", idea.Title))
	sb.WriteString(fmt.Sprintf("**Asset:** %s | **Type:** %s | **Risk:** %s", idea.Asset, idea.Type, idea.RiskLevel.Normalize()))
	if idea.TimeHorizon != "" {
		sb.WriteString(fmt.Sprintf(" | **Horizon:** %s", idea.TimeHorizon))
	}
	sb.WriteString("\n\n")

	if idea.Rationale != "" {
		sb.WriteString(idea.Rationale + "\n\n")
	}

	if metrics := ideas.FormatMetrics(idea.Metrics); len(metrics) > 0 {
		for i, m := range metrics {
			if i > 0 {
				sb.WriteString(" | ")
			}
			value := m.Value
			if signedMetricKeys[m.Key] {
				value = common.FormatSignedPct(idea.Metrics[m.Key])
			}
			sb.WriteString(fmt.Sprintf("%s: %s", m.Label, value))
		}
		sb.WriteString("\n\n")
	}
}

func writeProvenance(sb *strings.Builder, coll *models.IdeaCollection) {
	p := ideas.DeriveProvenance(coll)
	if len(p.DataSources) == 0 && len(p.DataTypes) == 0 {
		return
	}

	sb.WriteString("## Data Provenance\n\n")
	if len(p.DataTypes) > 0 {
		sb.WriteString(fmt.Sprintf("**Data types used:** %s\n\n", strings.Join(p.DataTypes, ", ")))
	}
	for _, src := range p.DataSources {
		sb.WriteString(fmt.Sprintf("- **%s:** %s\n", src.Name, src.Description))
	}
}
