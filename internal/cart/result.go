package cart

import (
	"errors"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

var (
	ErrNoSession       = errors.New("no user session")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrLineNotFound    = errors.New("product is not in the cart")
	ErrNotConfirmed    = errors.New("operation not confirmed")
	ErrEmptyCart       = errors.New("cart is empty")
)

// Outcome tells which path an operation took.
type Outcome int

const (
	// OutcomeConfirmed: the remote store accepted the change.
	OutcomeConfirmed Outcome = iota + 1
	// OutcomeDegraded: the change was applied locally only.
	OutcomeDegraded
	// OutcomeRefused: nothing was changed.
	OutcomeRefused
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeRefused:
		return "refused"
	}
	return "unknown"
}

// Result is returned by every manager operation. Err carries the underlying
// cause of a degraded or refused outcome; it is informational, the
// operation itself never fails.
type Result struct {
	Outcome Outcome
	Notice  domain.Notice
	Err     error
}

func (r Result) Confirmed() bool { return r.Outcome == OutcomeConfirmed }
func (r Result) Degraded() bool  { return r.Outcome == OutcomeDegraded }
func (r Result) Refused() bool   { return r.Outcome == OutcomeRefused }
