package domain

import "time"

// CompositionEvent requests one lore composition: one paragraph per
// Composition entry, each entry giving that paragraph's sentence
// count. The envelope also carries the retry metadata consumed by the
// retry policy.
type CompositionEvent struct {
	Composition []int     `json:"composition"`
	CreatedAt   time.Time `json:"createdAt"`
	Retry       int       `json:"retry,omitempty"`
}

// NewCompositionEvent creates a fresh request for the given shape with
// zero prior attempts.
func NewCompositionEvent(shape []int) CompositionEvent {
	return CompositionEvent{Composition: shape, CreatedAt: time.Now().UTC()}
}

// Created reports when the composition was first requested.
func (e CompositionEvent) Created() time.Time { return e.CreatedAt }

// Attempts reports how many prior attempts have failed.
func (e CompositionEvent) Attempts() int { return e.Retry }

// NextAttempt returns a copy accounting for one more failed attempt.
// CreatedAt is preserved so duration-based termination keeps measuring
// from the first request.
func (e CompositionEvent) NextAttempt() CompositionEvent {
	e.Retry++
	return e
}
