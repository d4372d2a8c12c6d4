// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category is a fixed classification label. Categories are seeded at
// startup and never modified or deleted afterwards.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories are seeded on every startup. Seeding is idempotent.
var DefaultCategories = []string{
	"Feature Request",
	"Bug Report",
	"Performance Improvement",
	"Documentation",
	"Other",
}
