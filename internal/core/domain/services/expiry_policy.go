package services

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/transfer"
	"dispatch/internal/pkg/errs"
)

const (
	DefaultUnacceptedTTL    = 2 * time.Hour
	DefaultDeliveryDeadline = 4 * time.Hour
	DefaultBacklogThreshold = 2 * time.Hour
)

// ExpiryPolicy turns the configured thresholds into cutoff instants. All
// comparisons are strict: an order exactly UnacceptedTTL old is still acceptable.
type ExpiryPolicy struct {
	unacceptedTTL    time.Duration
	deliveryDeadline time.Duration
	backlogThreshold time.Duration
	transferTTL      time.Duration
}

func NewExpiryPolicy(unacceptedTTL, deliveryDeadline, backlogThreshold, transferTTL time.Duration) (ExpiryPolicy, error) {
	for name, d := range map[string]time.Duration{
		"unaccepted ttl":    unacceptedTTL,
		"delivery deadline": deliveryDeadline,
		"backlog threshold": backlogThreshold,
		"transfer ttl":      transferTTL,
	} {
		if d <= 0 {
			return ExpiryPolicy{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not positive", d))
		}
	}

	return ExpiryPolicy{
		unacceptedTTL:    unacceptedTTL,
		deliveryDeadline: deliveryDeadline,
		backlogThreshold: backlogThreshold,
		transferTTL:      transferTTL,
	}, nil
}

// DefaultExpiryPolicy is 2h to accept, 4h to deliver, 2h backlog and 24h offers.
func DefaultExpiryPolicy() ExpiryPolicy {
	return ExpiryPolicy{
		unacceptedTTL:    DefaultUnacceptedTTL,
		deliveryDeadline: DefaultDeliveryDeadline,
		backlogThreshold: DefaultBacklogThreshold,
		transferTTL:      transfer.DefaultTTL,
	}
}

func (p ExpiryPolicy) TransferTTL() time.Duration {
	return p.transferTTL
}

// UnacceptedCutoff: Unaccepted orders created before it are expired.
func (p ExpiryPolicy) UnacceptedCutoff(now time.Time) time.Time {
	return now.Add(-p.unacceptedTTL)
}

// OverdueCutoff: Accepted orders created before it are overdue.
func (p ExpiryPolicy) OverdueCutoff(now time.Time) time.Time {
	return now.Add(-p.deliveryDeadline)
}

// BacklogCutoff: an open assignment accepted before it counts against the driver.
func (p ExpiryPolicy) BacklogCutoff(now time.Time) time.Time {
	return now.Add(-p.backlogThreshold)
}

// IsAcceptanceWindowClosed reports whether o is too old to be accepted.
func (p ExpiryPolicy) IsAcceptanceWindowClosed(o *order.Order, now time.Time) bool {
	return o.Age(now) > p.unacceptedTTL
}
