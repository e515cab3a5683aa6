package entity

import (
	"github.com/google/uuid"
)

// Acronym is an owned content record: a short form, its expansion, and the
// user who created it. Every acronym has exactly one owning user.
type Acronym struct {
	ID     uuid.UUID `json:"id"`
	Short  string    `json:"short"`  // The abbreviated form, e.g. "OMG".
	Long   string    `json:"long"`   // The expanded form, e.g. "Oh My God".
	UserID uuid.UUID `json:"userID"` // Foreign key to the owning user. Required, never null.
}

// Category is a tag record. Acronyms and categories are associated through a
// pivot table managed by the relationship manager.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"` // Unique across all categories.
}

// AcronymCategory is one pivot row of the acronym/category many-to-many
// association. At most one row may exist per (acronym, category) pair.
type AcronymCategory struct {
	ID         uuid.UUID
	AcronymID  uuid.UUID
	CategoryID uuid.UUID
}
