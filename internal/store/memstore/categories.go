package memstore

import (
	"context"
	"strings"

	"ideaboard/internal/apperr"
	"ideaboard/internal/models"
)

// CategoryRegistry is the in-memory category lookup.
type CategoryRegistry struct {
	s *Store
}

// SeedDefaults inserts names not already present. Blank names are ignored.
func (r *CategoryRegistry) SeedDefaults(ctx context.Context, names []string) error {
	if err := live(ctx, "category seed"); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := s.categoryByName[name]; ok {
			continue
		}
		id := int64(len(s.categories) + 1)
		s.categories = append(s.categories, models.Category{ID: id, Name: name})
		s.categoryByName[name] = id
	}
	return nil
}

// Resolve returns the category name for id.
func (r *CategoryRegistry) Resolve(ctx context.Context, id int64) (string, error) {
	if err := live(ctx, "category resolve"); err != nil {
		return "", err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.categoryName(id)
	if !ok {
		return "", apperr.NotFound("category resolve", "category")
	}
	return name, nil
}

// List returns every category ordered by id.
func (r *CategoryRegistry) List(ctx context.Context) ([]models.Category, error) {
	if err := live(ctx, "category list"); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Category(nil), s.categories...), nil
}
