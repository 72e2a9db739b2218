// Package planner holds the recipe catalog and the user's current selection.
package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"smart-pantry/internal/recipe"
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrDuplicateRecipe = errors.New("recipe already in catalog")
)

// Store is the state container for the catalog and the selection. Callers
// read snapshots and hand them to the shopping pipeline; the pipeline never
// mutates the store. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	catalog   []recipe.Recipe
	index     map[string]int // id -> position in catalog
	selection []string       // ids in selection order
	log       *slog.Logger
}

// NewStore creates a store preloaded with the given catalog.
func NewStore(catalog []recipe.Recipe, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		index: make(map[string]int, len(catalog)),
		log:   log,
	}
	for _, r := range catalog {
		if err := s.insert(r); err != nil {
			return nil, err
		}
	}
	s.log.Debug("catalog loaded", "recipes", len(s.catalog))
	return s, nil
}

func (s *Store) insert(r recipe.Recipe) error {
	if err := recipe.Validate(r); err != nil {
		return err
	}
	if _, ok := s.index[r.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRecipe, r.ID)
	}
	s.index[r.ID] = len(s.catalog)
	s.catalog = append(s.catalog, r)
	return nil
}

// Catalog returns every known recipe in insertion order.
func (s *Store) Catalog() []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]recipe.Recipe(nil), s.catalog...)
}

// Get returns a catalog recipe by id.
func (s *Store) Get(id string) (recipe.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return recipe.Recipe{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	return s.catalog[i], nil
}

// Selection returns the selected recipes in selection order.
func (s *Store) Selection() []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recipe.Recipe, 0, len(s.selection))
	for _, id := range s.selection {
		out = append(out, s.catalog[s.index[id]])
	}
	return out
}

// SelectionIDs returns the ids of the selected recipes in selection order.
func (s *Store) SelectionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

// IsSelected reports whether the recipe is part of the plan.
func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedAt(id) >= 0
}

func (s *Store) selectedAt(id string) int {
	for i, sel := range s.selection {
		if sel == id {
			return i
		}
	}
	return -1
}

// AddToSelection appends a catalog recipe to the plan. Adding a recipe that
// is already selected does nothing.
func (s *Store) AddToSelection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	if s.selectedAt(id) >= 0 {
		s.log.Debug("recipe already selected", "id", id)
		return nil
	}
	s.selection = append(s.selection, id)
	s.log.Debug("recipe selected", "id", id, "selected", len(s.selection))
	return nil
}

// RemoveFromSelection drops a recipe from the plan. Removing a recipe that is
// not selected does nothing.
func (s *Store) RemoveFromSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.selectedAt(id)
	if i < 0 {
		return
	}
	s.selection = append(s.selection[:i:i], s.selection[i+1:]...)
	s.log.Debug("recipe removed", "id", id, "selected", len(s.selection))
}

// AddToCatalog stores a new recipe and selects it straight away.
func (s *Store) AddToCatalog(r recipe.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.insert(r); err != nil {
		return fmt.Errorf("failed to add recipe %q: %w", r.Title, err)
	}
	s.selection = append(s.selection, r.ID)
	s.log.Info("recipe added", "id", r.ID, "title", r.Title)
	return nil
}
