// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the idea board.
// Handlers decode the request, take the caller identity from the context
// set by middleware.Identity, and delegate to the board service.
package handlers

import "ideaboard/internal/board"

// Board groups all idea board HTTP handlers and their dependencies.
type Board struct {
	svc *board.Service
}

// NewBoard creates a new Board handler group.
func NewBoard(svc *board.Service) *Board {
	return &Board{svc: svc}
}

