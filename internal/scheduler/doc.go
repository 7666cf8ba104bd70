// Package scheduler provides the cancellable one-shot countdown behind a
// napgate schedule. A single background goroutine blocks on the deadline
// and wakes immediately on cancellation (event-driven, no polling). One
// schedule per process lifetime: Fired and Cancelled are terminal states.
package scheduler
