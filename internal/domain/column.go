package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Column-specific validation errors
var (
	// ErrColumnIDEmpty is returned when a column ID is the nil UUID.
	ErrColumnIDEmpty = NewValidationError("id", "cannot be empty", ErrInvalidID)

	// ErrColumnNameEmpty is returned when a column name is missing or blank.
	ErrColumnNameEmpty = NewValidationError("name", "is required", nil)
)

// Column is a named lane on the board that groups tasks, e.g. "To Do".
type Column struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewColumn creates a Column with a fresh ID and timestamps.
// The name is trimmed before validation.
func NewColumn(name string) (*Column, error) {
	now := time.Now().UTC()
	column := &Column{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := column.Validate(); err != nil {
		return nil, err
	}

	return column, nil
}

// Validate checks if the Column has valid data.
func (c *Column) Validate() error {
	if c.ID == uuid.Nil {
		return ErrColumnIDEmpty
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrColumnNameEmpty
	}

	return nil
}

// Rename changes the column name and bumps UpdatedAt.
// The column is left untouched when the new name is invalid.
func (c *Column) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrColumnNameEmpty
	}

	c.Name = name
	c.UpdatedAt = time.Now().UTC()
	return nil
}
