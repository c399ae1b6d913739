package clients

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBreaker(cfg CircuitBreakerConfig) (*CircuitBreaker, *time.Time) {
	cb := NewCircuitBreaker(cfg)

	now := time.Now()
	cb.now = func() time.Time { return now }

	return cb, &now
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb, _ := newTestBreaker(CircuitBreakerConfig{MaxFailures: 3, Timeout: time.Minute})

	assert.Equal(t, StateClosed, cb.State())

	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb, _ := newTestBreaker(CircuitBreakerConfig{MaxFailures: 2, Timeout: time.Minute})

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()

	assert.Equal(t, StateClosed, cb.State(), "success must reset the consecutive failure count")
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	cb, now := newTestBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: 30 * time.Second})

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())

	*now = now.Add(31 * time.Second)

	assert.True(t, cb.Allow(), "open circuit must probe after timeout")
	assert.Equal(t, StateHalfOpen, cb.State())
}

func TestCircuitBreaker_HalfOpenClosesOnSuccesses(t *testing.T) {
	cb, now := newTestBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Second, HalfOpenLimit: 2})

	cb.RecordFailure()
	*now = now.Add(2 * time.Second)
	assert.True(t, cb.Allow())

	cb.RecordSuccess()
	assert.Equal(t, StateHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenReopensOnFailure(t *testing.T) {
	cb, now := newTestBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Second})

	cb.RecordFailure()
	*now = now.Add(2 * time.Second)
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb, _ := newTestBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Minute})

	var transitions []string

	cb.OnStateChange(func(from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	cb.RecordFailure()

	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}
