// Package jobs runs fire-and-forget background work, such as delivering
// notifications, on a fixed pool of workers fed by a bounded in-memory
// queue. Submitting never blocks: a full or closed queue is reported to the
// caller immediately so request handling is never held up by slow work.
package jobs
