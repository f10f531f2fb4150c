package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewColumn(t *testing.T) {
	t.Parallel()

	column, err := NewColumn("  To Do ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if column.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if column.Name != "To Do" {
		t.Errorf("Expected trimmed name %q, got %q", "To Do", column.Name)
	}

	if column.CreatedAt.IsZero() || column.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	other, err := NewColumn("To Do")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if other.ID == column.ID {
		t.Error("Expected each column to get a unique ID")
	}

	for _, name := range []string{"", "   "} {
		_, err = NewColumn(name)
		if !errors.Is(err, ErrColumnNameEmpty) {
			t.Errorf("Expected %v for name %q, got %v", ErrColumnNameEmpty, name, err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Expected error to wrap ErrValidation, got %v", err)
		}
	}
}

func TestColumnValidate(t *testing.T) {
	t.Parallel()

	column := &Column{Name: "Done"}
	if err := column.Validate(); !errors.Is(err, ErrColumnIDEmpty) {
		t.Errorf("Expected %v, got %v", ErrColumnIDEmpty, err)
	}
	if err := column.Validate(); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error to wrap ErrInvalidID, got %v", err)
	}
}

func TestColumnRename(t *testing.T) {
	t.Parallel()

	column, err := NewColumn("Doing")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	before := column.UpdatedAt

	if err := column.Rename(" In Progress "); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if column.Name != "In Progress" {
		t.Errorf("Expected name %q, got %q", "In Progress", column.Name)
	}
	if column.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to move forward")
	}

	if err := column.Rename(""); !errors.Is(err, ErrColumnNameEmpty) {
		t.Errorf("Expected %v, got %v", ErrColumnNameEmpty, err)
	}
	if column.Name != "In Progress" {
		t.Errorf("Expected name to be unchanged after failed rename, got %q", column.Name)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError("name", "is required", nil)
	if err.Error() != "name is required" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected nil cause to default to ErrValidation")
	}
}
