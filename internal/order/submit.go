package order

import (
	"context"
	"time"
)

// Submitter delivers a finished payload to the remote spreadsheet endpoint.
// Satisfied by *sheets.Client; narrow interface for testability.
type Submitter interface {
	Send(ctx context.Context, payload SubmissionPayload) error
}

// Submit validates the cart, generates order and payment IDs, and delivers
// the payload through the submitter. At most one submission is in flight
// per cart; a second call while one is running fails with ErrSubmitInFlight.
// The cart state is left untouched on failure so the customer can retry
// without re-entering anything.
func (c *Cart) Submit(ctx context.Context, submitter Submitter) (*Confirmation, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if result := c.validateLocked(); !result.Valid {
		c.mu.Unlock()
		return nil, ErrNotValid
	}
	c.submitting = true
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	payload := SubmissionPayload{
		OrderID:   NewOrderID(),
		PaymentID: NewPaymentID(),
		Order:     snapshot,
	}

	if err := submitter.Send(ctx, payload); err != nil {
		return nil, err
	}

	return &Confirmation{
		OrderID:       payload.OrderID,
		PaymentID:     payload.PaymentID,
		Customer:      snapshot.CustomerInfo,
		Total:         snapshot.Total,
		BonusEligible: snapshot.Total.GreaterThanOrEqual(BonusThreshold),
		PlacedAt:      time.Now(),
	}, nil
}
