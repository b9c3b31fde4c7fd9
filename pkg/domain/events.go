package domain

// Event is a domain event collected by an aggregate while it mutates.
// Aggregates accumulate events in an outbox drained by PullEvents; services
// publish them only after the surrounding unit of work has committed.
type Event interface {
	Type() string
}
