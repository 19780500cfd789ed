package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker shields an upstream dependency. Consecutive failures trip
// it open; after the cooldown a bounded number of probes may pass, and a
// full set of probe successes closes it again.
type CircuitBreaker struct {
	mu sync.Mutex

	failureLimit int
	cooldown     time.Duration
	probeLimit   int

	state         CircuitState
	failureStreak int
	trippedAt     time.Time
	probesActive  int
	probesPassed  int
	now           func() time.Time
}

func NewCircuitBreaker(failureLimit int, cooldown time.Duration, probeLimit int) *CircuitBreaker {
	if failureLimit < 1 {
		failureLimit = 1
	}
	if cooldown <= 0 {
		cooldown = 15 * time.Second
	}
	if probeLimit < 1 {
		probeLimit = 1
	}

	return &CircuitBreaker{
		failureLimit: failureLimit,
		cooldown:     cooldown,
		probeLimit:   probeLimit,
		state:        CircuitStateClosed,
		now:          time.Now,
	}
}

// Allow reports whether a request may proceed, reserving a probe slot when
// the breaker is half-open.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if !b.cooldownElapsed() {
			return ErrCircuitOpen
		}
		b.transition(CircuitStateHalfOpen)
	}

	if b.state == CircuitStateHalfOpen {
		if b.probesActive >= b.probeLimit {
			return ErrCircuitOpen
		}
		b.probesActive++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak = 0
	case CircuitStateHalfOpen:
		b.releaseProbe()
		b.probesPassed++
		if b.probesPassed >= b.probeLimit && b.probesActive == 0 {
			b.transition(CircuitStateClosed)
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak++
		if b.failureStreak >= b.failureLimit {
			b.transition(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.releaseProbe()
		b.transition(CircuitStateOpen)
	case CircuitStateOpen:
		b.trippedAt = b.now()
	}
}

// State reports the effective state: an open breaker past its cooldown
// reads as half-open even before the next Allow.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooldownElapsed() {
		return CircuitStateHalfOpen
	}

	return b.state
}

func (b *CircuitBreaker) cooldownElapsed() bool {
	return b.now().Sub(b.trippedAt) >= b.cooldown
}

func (b *CircuitBreaker) releaseProbe() {
	if b.probesActive > 0 {
		b.probesActive--
	}
}

func (b *CircuitBreaker) transition(next CircuitState) {
	b.state = next
	b.probesActive = 0
	b.probesPassed = 0
	switch next {
	case CircuitStateOpen:
		b.trippedAt = b.now()
	case CircuitStateClosed:
		b.failureStreak = 0
		b.trippedAt = time.Time{}
	}
}
