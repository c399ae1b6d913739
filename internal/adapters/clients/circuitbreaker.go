package clients

import (
	"sync"
	"time"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed is the normal operating state. Requests flow through.
	StateClosed State = iota

	// StateOpen blocks requests to protect a failing downstream.
	StateOpen

	// StateHalfOpen lets probe requests through to test recovery.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the
	// circuit opens.
	MaxFailures int

	// Timeout is how long to stay open before probing with half-open.
	Timeout time.Duration

	// HalfOpenLimit is the number of consecutive successes in half-open
	// state required to close the circuit again.
	HalfOpenLimit int
}

// CircuitBreaker prevents requests to an unhealthy downstream.
//
// State transitions:
//   - Closed → Open: after MaxFailures consecutive failures
//   - Open → HalfOpen: after Timeout has elapsed
//   - HalfOpen → Closed: after HalfOpenLimit consecutive successes
//   - HalfOpen → Open: on any failure
type CircuitBreaker struct {
	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
	cfg         CircuitBreakerConfig

	onStateChange func(from, to State)

	// now is overridable for tests.
	now func() time.Time
}

// NewCircuitBreaker creates a circuit breaker with the given configuration.
// Zero-valued fields fall back to conservative defaults.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}

	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange sets a callback invoked on every state transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may proceed, transitioning open→half-open
// once the open timeout has elapsed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			cb.transition(StateHalfOpen)
			cb.successes = 0

			return true
		}

		return false
	default:
		return false
	}
}

// RecordSuccess notes a successful request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.transition(StateClosed)
			cb.failures = 0
		}
	case StateOpen:
		// Late success from a request admitted before opening; ignored.
	}
}

// RecordFailure notes a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.transition(StateOpen)
		}
	case StateHalfOpen:
		cb.transition(StateOpen)
	case StateOpen:
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// transition moves to a new state and fires the callback.
// Caller must hold cb.mu.
func (cb *CircuitBreaker) transition(to State) {
	if cb.state == to {
		return
	}

	from := cb.state
	cb.state = to

	if cb.onStateChange != nil {
		cb.onStateChange(from, to)
	}
}
