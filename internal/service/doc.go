// Package service contains the board's use cases. It orchestrates domain
// objects and the repositories defined in internal/store to create,
// arrange and complete tasks across columns.
//
// Operations that read and then write several records (reordering, bulk
// moves, creating a task in a column) run inside one transaction through a
// TxRunner, so a failed check never leaves a partial write behind.
//
// Services return store and domain sentinel errors unchanged where callers
// are expected to branch on them (not found, validation) and wrap anything
// unexpected in a BoardServiceError. The API layer maps both to HTTP status
// codes.
package service
