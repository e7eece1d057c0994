// Package store provides in-memory storage for saved formulas.
package store

import (
	"fmt"
	"sync"
	"time"
)

// Formula represents a saved, named formula definition.
type Formula struct {
	Name        string    `json:"name"`
	Expression  string    `json:"expression"`
	Description string    `json:"description,omitempty"`
	CreateTime  time.Time `json:"createTime"`
	UpdateTime  time.Time `json:"updateTime"`
}

// Store is a thread-safe in-memory registry of saved formulas.
type Store struct {
	mu       sync.RWMutex
	formulas map[string]*Formula
}

// New creates a new empty store.
func New() *Store {
	return &Store{
		formulas: make(map[string]*Formula),
	}
}

// CreateFormula saves a new formula definition.
func (s *Store) CreateFormula(name, expression, description string) (*Formula, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.formulas[name]; exists {
		return nil, fmt.Errorf("formula '%s' already exists", name)
	}

	now := time.Now()
	f := &Formula{
		Name:        name,
		Expression:  expression,
		Description: description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	s.formulas[name] = f
	return f, nil
}

// GetFormula retrieves a formula by name.
func (s *Store) GetFormula(name string) (*Formula, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.formulas[name]
	if !ok {
		return nil, fmt.Errorf("formula '%s' not found", name)
	}
	return f, nil
}

// ListFormulas returns all saved formulas.
func (s *Store) ListFormulas() []*Formula {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Formula, 0, len(s.formulas))
	for _, f := range s.formulas {
		result = append(result, f)
	}
	return result
}

// UpdateFormula updates a formula's expression and, if non-empty, its
// description.
func (s *Store) UpdateFormula(name, expression, description string) (*Formula, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.formulas[name]
	if !ok {
		return nil, fmt.Errorf("formula '%s' not found", name)
	}

	f.Expression = expression
	if description != "" {
		f.Description = description
	}
	f.UpdateTime = time.Now()

	return f, nil
}

// DeleteFormula removes a formula.
func (s *Store) DeleteFormula(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.formulas[name]; !ok {
		return fmt.Errorf("formula '%s' not found", name)
	}
	delete(s.formulas, name)
	return nil
}
