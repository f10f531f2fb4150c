// Package store declares the persistence contracts for columns and tasks,
// the sentinel errors shared by their implementations and a helper for
// running work in a SQL transaction.
package store
