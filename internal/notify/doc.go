// Package notify is the reminder core: the engine that computes which
// notifications are due and records what has been sent, and the dispatcher
// that pushes batches to the messaging transport.
//
// Delivery semantics: at-least-once at the transport boundary, deduplicated
// at the computation boundary. Records are persisted unsent before dispatch
// (write-before-send), marked sent on acknowledgment, and re-surfaced on
// later ticks while unsent. A duplicate delivery is possible only when
// marking fails after a successful send.
package notify
