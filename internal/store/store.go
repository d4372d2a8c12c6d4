// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the PostgreSQL implementations of the board
// repositories. Each store wraps a *sql.DB and bounds every call with a
// store-level timeout; vote and status mutations run as single transactions
// that lock the idea row first.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ideaboard/internal/apperr"
)

// DefaultTimeout bounds a single store call or transaction.
const DefaultTimeout = 5 * time.Second

// base carries what every store needs.
type base struct {
	db      *sql.DB
	timeout time.Duration
}

func newBase(db *sql.DB, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return base{db: db, timeout: timeout}
}

// bounded returns ctx limited by the store timeout. Used for reads, which
// may be abandoned when the caller goes away.
func (b base) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

// atomic runs fn inside one transaction. The transaction is detached from
// caller cancellation and bounded only by the store timeout, so a client
// that disconnects mid-request cannot leave the unit half-applied; any error
// from fn or the commit rolls everything back and is reported as a storage
// error unless fn already classified it.
func (b base) atomic(ctx context.Context, op string, fn func(ctx context.Context, tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
	defer cancel()

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(op, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	if err := fn(ctx, tx); err != nil {
		return apperr.Storage(op, err)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Storage(op, fmt.Errorf("commit: %w", err))
	}
	return nil
}

// lockIdea takes a row lock on the idea that serializes writers of the same
// idea while still letting comment inserts (which only need a key-share lock
// through the foreign key) proceed.
func lockIdea(ctx context.Context, tx *sql.Tx, op string, id any) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM ideas WHERE id = $1 FOR NO KEY UPDATE`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return apperr.NotFound(op, "idea")
	}
	if err != nil {
		return fmt.Errorf("lock idea: %w", err)
	}
	return nil
}

// ideaExists reports NotFound for unknown ideas on read paths.
func ideaExists(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, op string, id any) error {
	var ok bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM ideas WHERE id = $1)`, id).Scan(&ok); err != nil {
		return apperr.Storage(op, fmt.Errorf("check idea: %w", err))
	}
	if !ok {
		return apperr.NotFound(op, "idea")
	}
	return nil
}
