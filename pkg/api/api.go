// Package api implements the REST API for evaluating, validating, applying,
// and saving formulas.
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/datuumlabs/formula-engine/pkg/columns"
	"github.com/datuumlabs/formula-engine/pkg/formula"
	"github.com/datuumlabs/formula-engine/pkg/store"
)

// Server is the formula engine API server.
type Server struct {
	app   *fiber.App
	store *store.Store
}

// New creates a new API server. bodyLimit caps request body size in bytes;
// zero keeps the Fiber default.
func New(s *store.Store, bodyLimit int) *Server {
	srv := &Server{store: s}

	cfg := fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	}
	if bodyLimit > 0 {
		cfg.BodyLimit = bodyLimit
	}
	app := fiber.New(cfg)

	app.Get("/healthz", srv.health)

	// Evaluation API
	app.Post("/v1/formulas\\:evaluate", srv.evaluate)
	app.Post("/v1/formulas\\:validate", srv.validate)
	app.Post("/v1/formulas\\:apply", srv.apply)

	// Saved formulas API
	app.Post("/v1/formulas", srv.createFormula)
	app.Get("/v1/formulas", srv.listFormulas)
	app.Get("/v1/formulas/:formula", srv.getFormula)
	app.Patch("/v1/formulas/:formula", srv.updateFormula)
	app.Delete("/v1/formulas/:formula", srv.deleteFormula)
	app.Post("/v1/formulas/:formula\\:apply", srv.applySaved)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// --- Evaluation Handlers ---

type expressionRequest struct {
	Expression string `json:"expression"`
}

type applyRequest struct {
	Expression string               `json:"expression"`
	Columns    map[string][]float64 `json:"columns"`
}

func (s *Server) evaluate(c *fiber.Ctx) error {
	var req expressionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": fmt.Sprintf("invalid request body: %v", err),
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	result, err := formula.Evaluate(req.Expression)
	if err != nil {
		return c.Status(400).JSON(formulaErrorJSON(err))
	}

	return c.JSON(fiber.Map{"result": result})
}

func (s *Server) validate(c *fiber.Ctx) error {
	var req expressionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": fmt.Sprintf("invalid request body: %v", err),
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	return c.JSON(fiber.Map{"valid": formula.IsValid(req.Expression)})
}

func (s *Server) apply(c *fiber.Ctx) error {
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": fmt.Sprintf("invalid request body: %v", err),
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	return s.applyColumns(c, req.Expression, req.Columns)
}

func (s *Server) applyColumns(c *fiber.Ctx, expression string, cols map[string][]float64) error {
	results, err := columns.Apply(expression, cols)
	if err != nil {
		return c.Status(400).JSON(formulaErrorJSON(err))
	}

	return c.JSON(fiber.Map{
		"results": results,
		"rows":    len(results),
	})
}

// --- Saved Formula Handlers ---

type saveFormulaRequest struct {
	Expression  string `json:"expression"`
	Description string `json:"description"`
}

func (s *Server) createFormula(c *fiber.Ctx) error {
	formulaID := c.Query("formulaId")
	if formulaID == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": "formulaId query parameter is required",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	var req saveFormulaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": fmt.Sprintf("invalid request body: %v", err),
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	if req.Expression == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": "expression is required",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	// Saved formulas may reference columns, so only the raw-input denylist
	// applies here; structural checks run when the formula is applied.
	if formula.MatchesDenylist(req.Expression) {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": "expression contains disallowed syntax",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	f, err := s.store.CreateFormula(formulaID, req.Expression, req.Description)
	if err != nil {
		return c.Status(409).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    409,
				"message": err.Error(),
				"status":  "ALREADY_EXISTS",
			},
		})
	}

	return c.Status(200).JSON(f)
}

func (s *Server) getFormula(c *fiber.Ctx) error {
	f, err := s.store.GetFormula(c.Params("formula"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    404,
				"message": err.Error(),
				"status":  "NOT_FOUND",
			},
		})
	}

	return c.JSON(f)
}

func (s *Server) listFormulas(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"formulas": s.store.ListFormulas(),
	})
}

func (s *Server) updateFormula(c *fiber.Ctx) error {
	var req saveFormulaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": fmt.Sprintf("invalid request body: %v", err),
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	if req.Expression == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": "expression is required",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	if formula.MatchesDenylist(req.Expression) {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": "expression contains disallowed syntax",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	f, err := s.store.UpdateFormula(c.Params("formula"), req.Expression, req.Description)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    404,
				"message": err.Error(),
				"status":  "NOT_FOUND",
			},
		})
	}

	return c.JSON(f)
}

func (s *Server) deleteFormula(c *fiber.Ctx) error {
	if err := s.store.DeleteFormula(c.Params("formula")); err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    404,
				"message": err.Error(),
				"status":  "NOT_FOUND",
			},
		})
	}

	return c.JSON(fiber.Map{})
}

func (s *Server) applySaved(c *fiber.Ctx) error {
	f, err := s.store.GetFormula(c.Params("formula"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    404,
				"message": err.Error(),
				"status":  "NOT_FOUND",
			},
		})
	}

	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    400,
				"message": fmt.Sprintf("invalid request body: %v", err),
				"status":  "INVALID_ARGUMENT",
			},
		})
	}

	return s.applyColumns(c, f.Expression, req.Columns)
}

// formulaErrorJSON builds the error envelope for a failed evaluation. The
// reason tag is machine-readable; the message is for humans only.
func formulaErrorJSON(err error) fiber.Map {
	e := fiber.Map{
		"code":    400,
		"message": err.Error(),
		"status":  "INVALID_ARGUMENT",
	}

	var fe *formula.Error
	if errors.As(err, &fe) && len(fe.Tags) > 0 {
		e["reason"] = fe.Tags[0]
	}

	return fiber.Map{"error": e}
}
