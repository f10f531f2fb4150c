// Package domain holds the board entities, columns and tasks, along with
// the validation rules they enforce on themselves.
package domain
