// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ideaboard/internal/apperr"
	"ideaboard/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	base
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB, timeout time.Duration) *CategoryStore {
	return &CategoryStore{base: newBase(db, timeout)}
}

// SeedDefaults inserts each name unless a category with that name exists.
// Runs in one transaction so a partial seed is never committed.
func (s *CategoryStore) SeedDefaults(ctx context.Context, names []string) error {
	return s.atomic(ctx, "category seed", func(ctx context.Context, tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("prepare seed: %w", err)
		}
		defer stmt.Close()

		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, name); err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}
		}
		return nil
	})
}

// Resolve returns the name of the category with the given id.
func (s *CategoryStore) Resolve(ctx context.Context, id int64) (string, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM categories WHERE id = $1`, id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", apperr.NotFound("category resolve", "category")
	}
	if err != nil {
		return "", apperr.Storage("category resolve", fmt.Errorf("find category by id: %w", err))
	}
	return name, nil
}

// List returns all categories ordered by id.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, apperr.Storage("category list", fmt.Errorf("list categories: %w", err))
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, apperr.Storage("category list", fmt.Errorf("scan category: %w", err))
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("category list", err)
	}
	return items, nil
}
