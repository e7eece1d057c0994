// Package web provides the embedded web UI for the formula engine.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/datuumlabs/formula-engine/pkg/formula"
	"github.com/datuumlabs/formula-engine/pkg/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the web UI pages.
type Handler struct {
	store   *store.Store
	funcMap template.FuncMap
}

// pageData wraps all page-specific data with common fields.
type pageData struct {
	NavActive string
	Data      interface{}
}

// New creates a new web UI handler.
func New(s *store.Store) *Handler {
	return &Handler{
		store: s,
		funcMap: template.FuncMap{
			"formatTime": formatTime,
			"truncate":   truncate,
		},
	}
}

func (h *Handler) render(c *fiber.Ctx, page string, navActive string, data interface{}) error {
	// Parse templates fresh each time for the page-specific template
	// This avoids the Go template issue where define blocks conflict across pages
	tmpl := template.Must(
		template.New("").Funcs(h.funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page),
	)

	pd := pageData{
		NavActive: navActive,
		Data:      data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, page, pd); err != nil {
		return c.Status(500).SendString(fmt.Sprintf("template error: %v", err))
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

// Register adds web UI routes to the Fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/ui", h.playground)
	app.Get("/ui/formulas", h.formulaList)

	// Redirect root to UI
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/ui")
	})
}

// --- Page Data Types ---

type playgroundContent struct {
	Expression string
	Evaluated  bool
	Result     float64
	Err        string
	Valid      bool
}

type formulaListContent struct {
	Formulas []*store.Formula
}

// --- Page Handlers ---

func (h *Handler) playground(c *fiber.Ctx) error {
	content := playgroundContent{
		Expression: c.Query("expression"),
	}

	if content.Expression != "" {
		content.Evaluated = true
		content.Valid = formula.IsValid(content.Expression)

		result, err := formula.Evaluate(content.Expression)
		if err != nil {
			content.Err = err.Error()
		} else {
			content.Result = result
		}
	}

	return h.render(c, "playground.html", "playground", content)
}

func (h *Handler) formulaList(c *fiber.Ctx) error {
	formulas := h.store.ListFormulas()

	sort.Slice(formulas, func(i, j int) bool {
		return formulas[i].UpdateTime.After(formulas[j].UpdateTime)
	})

	return h.render(c, "formula_list.html", "formulas", formulaListContent{
		Formulas: formulas,
	})
}

// --- Template Helpers ---

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02 15:04:05")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
