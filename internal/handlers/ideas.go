package handlers

import (
	"net/http"
	"time"

	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/config"
	"github.com/allmba/ideas-portal/internal/feed"
	"github.com/allmba/ideas-portal/internal/ideas"
	"github.com/allmba/ideas-portal/internal/models"
)

// dateOption is one entry in the date selector.
type dateOption struct {
	Value    string
	Label    string
	Selected bool
}

// typeOption is one entry in the type selector. The "all types"
// sentinel carries an empty value.
type typeOption struct {
	Value    string
	Label    string
	Selected bool
}

// cardView is one rendered idea card.
type cardView struct {
	Title       string
	Type        string
	Asset       string
	Rationale   string
	RiskLevel   string
	RiskClass   string
	TimeHorizon string
	Metrics     []ideas.Metric
}

// groupView is a market heading with its cards.
type groupView struct {
	Market string
	Cards  []cardView
}

// ideasView is the full template model for the ideas page. Exactly one
// of Groups, NoIdeas or Error is the active state.
type ideasView struct {
	Page          string
	PortalVersion string

	DateOptions []dateOption
	TypeOptions []typeOption
	DateDisplay string

	Groups  []groupView
	NoIdeas bool
	Error   bool
	Stale   bool

	Provenance ideas.Provenance
}

// IdeasHandler renders the investment ideas page: selectors, grouped
// idea cards and the data provenance block.
type IdeasHandler struct {
	logger *common.Logger
	pages  *PageHandler
	svc    *feed.Service
}

// NewIdeasHandler creates the ideas page handler. It shares the page
// handler's parsed templates; a nil page handler means the scaffolding
// is missing and the caller should not register the route.
func NewIdeasHandler(logger *common.Logger, pages *PageHandler, svc *feed.Service) (*IdeasHandler, error) {
	if pages == nil || pages.templates == nil {
		return nil, errMissingTemplates
	}
	if pages.templates.Lookup("ideas.html") == nil {
		return nil, errMissingTemplates
	}

	return &IdeasHandler{
		logger: logger,
		pages:  pages,
		svc:    svc,
	}, nil
}

// ServeHTTP handles GET /ideas?date=&type=.
func (h *IdeasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	selectedDate := r.URL.Query().Get("date")
	selectedType := r.URL.Query().Get("type")

	view := ideasView{
		Page:          "ideas",
		PortalVersion: config.GetVersion(),
	}

	ctx := r.Context()

	dates, err := h.svc.Dates(ctx)
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("dates index fetch failed")
		view.Error = true
		h.render(w, view)
		return
	}
	types, err := h.svc.Types(ctx)
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("types index fetch failed")
		view.Error = true
		h.render(w, view)
		return
	}

	coll, stale, err := h.svc.Collection(ctx, selectedDate)
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Str("date", selectedDate).Msg("collection fetch failed")
		view.DateOptions = buildDateOptions(dates, selectedDate)
		view.TypeOptions = buildTypeOptions(types, selectedType)
		view.Error = true
		h.render(w, view)
		return
	}

	// With no explicit date the latest collection decides the selection.
	if selectedDate == "" {
		selectedDate = coll.Date
	}

	view.Stale = stale
	view.DateOptions = buildDateOptions(dates, selectedDate)
	view.TypeOptions = buildTypeOptions(types, selectedType)
	view.DateDisplay = formatDateLabel(coll.Date)
	view.Provenance = ideas.DeriveProvenance(coll)

	filtered := ideas.FilterByType(coll.Ideas, selectedType)
	if len(filtered) == 0 {
		view.NoIdeas = true
		h.render(w, view)
		return
	}

	for _, group := range ideas.GroupByMarket(filtered) {
		gv := groupView{Market: group.Market}
		for _, idea := range group.Ideas {
			gv.Cards = append(gv.Cards, buildCard(idea))
		}
		view.Groups = append(view.Groups, gv)
	}

	h.render(w, view)
}

func (h *IdeasHandler) render(w http.ResponseWriter, view ideasView) {
	if err := h.pages.templates.ExecuteTemplate(w, "ideas.html", view); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "ideas.html").Str("error", err.Error()).Msg("failed to render ideas page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func buildCard(idea models.Idea) cardView {
	risk := idea.RiskLevel.Normalize()
	return cardView{
		Title:       idea.Title,
		Type:        idea.Type,
		Asset:       idea.Asset,
		Rationale:   idea.Rationale,
		RiskLevel:   string(risk),
		RiskClass:   risk.CSSClass(),
		TimeHorizon: idea.TimeHorizon,
		Metrics:     ideas.FormatMetrics(idea.Metrics),
	}
}

func buildDateOptions(dates []string, selected string) []dateOption {
	opts := make([]dateOption, 0, len(dates))
	for i, date := range dates {
		opts = append(opts, dateOption{
			Value:    date,
			Label:    formatDateLabel(date),
			Selected: date == selected || (selected == "" && i == 0),
		})
	}
	return opts
}

func buildTypeOptions(types []string, selected string) []typeOption {
	opts := make([]typeOption, 0, len(types)+1)
	opts = append(opts, typeOption{Value: "", Label: "All Types", Selected: selected == ""})
	for _, typ := range types {
		opts = append(opts, typeOption{Value: typ, Label: typ, Selected: typ == selected})
	}
	return opts
}

// formatDateLabel renders a feed date as a long-form label, falling
// back to the raw string when it does not parse.
func formatDateLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
