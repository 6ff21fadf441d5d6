package worker

import (
	"errors"
	"sync"
	"time"

	"github.com/ninehex/nhsim/pkg/logging"
)

// CircuitState is the circuit breaker's current mode.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreakerConfig controls when a flaky worker subprocess gets
// cut off from further requests (adapted for the worker protocol's
// request/response calls rather than HTTP calls).
type CircuitBreakerConfig struct {
	MaxFailures  int
	ResetTimeout time.Duration
	SuccessReset int
}

// DefaultCircuitBreakerConfig trips after 3 consecutive failures and
// waits 5s before probing again.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{MaxFailures: 3, ResetTimeout: 5 * time.Second, SuccessReset: 1}
}

// ErrCircuitOpen is returned when a call is rejected without reaching
// the worker subprocess at all.
var ErrCircuitOpen = errors.New("worker: circuit breaker open")

// CircuitBreaker wraps calls to a worker subprocess, tripping open
// after a run of consecutive failures so a hung or crash-looping
// reference build doesn't stall an entire parity run.
type CircuitBreaker struct {
	config          CircuitBreakerConfig
	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastFailureTime time.Time
}

// NewCircuitBreaker creates a closed circuit breaker with cfg.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{config: cfg, state: CircuitClosed}
}

// Call executes fn if the circuit allows it, recording the outcome.
func (cb *CircuitBreaker) Call(fn func() (Response, error)) (Response, error) {
	cb.mu.Lock()
	if cb.state == CircuitOpen {
		if time.Since(cb.lastFailureTime) < cb.config.ResetTimeout {
			cb.mu.Unlock()
			return Response{}, ErrCircuitOpen
		}
		cb.state = CircuitHalfOpen
		cb.successes = 0
		logging.Info("worker circuit breaker probing half-open")
	}
	cb.mu.Unlock()

	resp, err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		cb.lastFailureTime = time.Now()
		if cb.state == CircuitHalfOpen || cb.failures >= cb.config.MaxFailures {
			cb.state = CircuitOpen
			logging.Error("worker circuit breaker opened", "failures", cb.failures)
		}
		return Response{}, err
	}

	if cb.state == CircuitHalfOpen {
		cb.successes++
		if cb.successes >= cb.config.SuccessReset {
			cb.state = CircuitClosed
			cb.failures = 0
		}
	} else {
		cb.failures = 0
	}
	return resp, nil
}

// State reports the breaker's current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
