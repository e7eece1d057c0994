package web

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/datuumlabs/formula-engine/pkg/store"
)

func setupTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	s := store.New()
	h := New(s)
	app := fiber.New()
	h.Register(app)
	return app, s
}

func getPage(t *testing.T, app *fiber.App, path string) string {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func TestPlaygroundEmpty(t *testing.T) {
	app, _ := setupTestApp(t)

	html := getPage(t, app, "/ui")
	if !strings.Contains(html, "Playground") {
		t.Error("expected Playground in response")
	}
	if !strings.Contains(html, "Formula Engine") {
		t.Error("expected brand in response")
	}
}

func TestPlaygroundEvaluates(t *testing.T) {
	app, _ := setupTestApp(t)

	html := getPage(t, app, "/ui?expression=2%2B3*4")
	if !strings.Contains(html, "14") {
		t.Error("expected result 14 in response")
	}
	if !strings.Contains(html, "passes the safety check") {
		t.Error("expected safety check verdict in response")
	}
}

func TestPlaygroundShowsErrors(t *testing.T) {
	app, _ := setupTestApp(t)

	html := getPage(t, app, "/ui?expression=10%2F0")
	if !strings.Contains(html, "formula evaluation failed") {
		t.Error("expected evaluation error in response")
	}
	if !strings.Contains(html, "fails the safety check") {
		t.Error("expected failed safety verdict in response")
	}
}

func TestFormulaListEmpty(t *testing.T) {
	app, _ := setupTestApp(t)

	html := getPage(t, app, "/ui/formulas")
	if !strings.Contains(html, "No formulas saved yet") {
		t.Error("expected empty state message")
	}
}

func TestFormulaListWithData(t *testing.T) {
	app, s := setupTestApp(t)

	if _, err := s.CreateFormula("margin", "(revenue-cost)/revenue", "gross margin"); err != nil {
		t.Fatalf("failed to create formula: %v", err)
	}

	html := getPage(t, app, "/ui/formulas")
	if !strings.Contains(html, "margin") {
		t.Error("expected formula name in response")
	}
	if !strings.Contains(html, "(revenue-cost)/revenue") {
		t.Error("expected expression in response")
	}
}

func TestRootRedirect(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 302 {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/ui" {
		t.Errorf("got location %q, want /ui", loc)
	}
}
