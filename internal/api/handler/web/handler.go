// internal/api/handler/web/handler.go
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/newthinker/cryptofolio/internal/format"
	"github.com/newthinker/cryptofolio/internal/market"
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

// pages lists the page templates (excluding layout.html).
var pages = []string{"portfolio.html"}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// pageTemplates holds separate template instances for each page
	// Each instance contains layout.html + the specific page template
	pageTemplates map[string]*template.Template

	portfolio *portfolio.Portfolio
	icons     market.IconResolver
	formatter format.Formatter
	logger    *zap.Logger
	onReject  func(code string)
}

// Option configures a Handler.
type Option func(*Handler)

// WithIcons sets the icon resolver.
func WithIcons(icons market.IconResolver) Option {
	return func(h *Handler) { h.icons = icons }
}

// WithFormatter sets the money formatter.
func WithFormatter(f format.Formatter) Option {
	return func(h *Handler) { h.formatter = f }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithRejectHook registers a callback for add submissions ignored because of invalid input.
func WithRejectHook(fn func(code string)) Option {
	return func(h *Handler) { h.onReject = fn }
}

// NewHandler creates a new web handler with templates loaded from the given directory.
// If templatesDir is empty, it falls back to embedded templates.
func NewHandler(templatesDir string, p *portfolio.Portfolio, opts ...Option) (*Handler, error) {
	var fsys fs.FS
	if templatesDir != "" {
		fsys = os.DirFS(filepath.Clean(templatesDir))
	} else {
		fsys = TemplateFS()
	}
	return NewHandlerWithFS(fsys, p, opts...)
}

// NewHandlerWithFS creates a new web handler using a custom filesystem.
// This is useful for testing or custom template sources.
func NewHandlerWithFS(fsys fs.FS, p *portfolio.Portfolio, opts ...Option) (*Handler, error) {
	pageTemplates := make(map[string]*template.Template)

	for _, page := range pages {
		// Parse layout first, then the page template
		tmpl, err := template.ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	h := &Handler{
		pageTemplates: pageTemplates,
		portfolio:     p,
		icons:         market.DefaultIcons(),
		formatter:     format.Default(),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// render executes the specified page template with the given data
func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("rendering template", zap.String("page", page), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// TemplateFS returns the embedded template filesystem for external use.
func TemplateFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// This should never happen with valid embed directive
		return templateFS
	}
	return subFS
}
