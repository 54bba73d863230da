package interact

import "time"

// DefaultIdleDelay is how long an empty brush keeps the guard armed.
const DefaultIdleDelay = 350 * time.Millisecond

// IdleGuard detects two empty brush gestures in quick succession.
type IdleGuard struct {
	delay   time.Duration
	now     func() time.Time
	armedAt time.Time
	armed   bool
}

// GuardOption configures an IdleGuard.
type GuardOption func(*IdleGuard)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) GuardOption {
	return func(g *IdleGuard) { g.now = now }
}

// WithDelay overrides DefaultIdleDelay.
func WithDelay(d time.Duration) GuardOption {
	return func(g *IdleGuard) { g.delay = d }
}

// NewIdleGuard returns a disarmed guard.
func NewIdleGuard(opts ...GuardOption) *IdleGuard {
	g := &IdleGuard{delay: DefaultIdleDelay, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Armed reports whether the guard was armed less than the delay ago.
func (g *IdleGuard) Armed() bool {
	return g.armed && g.now().Sub(g.armedAt) < g.delay
}

// Arm starts the idle window.
func (g *IdleGuard) Arm() {
	g.armed = true
	g.armedAt = g.now()
}

// Disarm cancels the idle window.
func (g *IdleGuard) Disarm() { g.armed = false }
