package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/config"
)

// errMissingTemplates signals that the page scaffolding a handler
// depends on was not found, so its routes should not be registered.
var errMissingTemplates = errors.New("required page templates not found")

// PageHandler serves HTML pages rendered with Go templates.
type PageHandler struct {
	logger    *common.Logger
	templates *template.Template
}

// NewPageHandler creates a page handler that loads templates from the
// pages directory. A missing or empty pages directory is an error so
// the caller can disable page routes instead of serving broken HTML.
func NewPageHandler(logger *common.Logger) (*PageHandler, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		logger:    logger,
		templates: templates,
	}, nil
}

func loadTemplates() (*template.Template, error) {
	pagesDir := FindPagesDir()

	templates, err := template.ParseGlob(filepath.Join(pagesDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates from %s: %w", pagesDir, err)
	}

	partials := filepath.Join(pagesDir, "partials", "*.html")
	if matches, _ := filepath.Glob(partials); len(matches) > 0 {
		if _, err := templates.ParseGlob(partials); err != nil {
			return nil, fmt.Errorf("failed to load partials from %s: %w", pagesDir, err)
		}
	}

	return templates, nil
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
		".",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// ServePage creates a handler function for serving a specific page template.
func (h *PageHandler) ServePage(templateName string, pageName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"Page":          pageName,
			"PortalVersion": config.GetVersion(),
		}

		if err := h.templates.ExecuteTemplate(w, templateName, data); err != nil {
			if h.logger != nil {
				h.logger.Error().Str("template", templateName).Str("error", err.Error()).Msg("failed to render page")
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// StaticFileHandler serves static files (CSS, JS, images).
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	pagesDir := FindPagesDir()
	staticDir := filepath.Join(pagesDir, "static")

	// Remove /static/ prefix from URL path
	path := r.URL.Path[len("/static/"):]
	fullPath := filepath.Join(staticDir, path)

	// Security: prevent directory traversal
	absStaticDir, _ := filepath.Abs(staticDir)
	absFullPath, _ := filepath.Abs(fullPath)
	if len(absFullPath) < len(absStaticDir) || absFullPath[:len(absStaticDir)] != absStaticDir {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
