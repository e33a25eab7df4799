// Package transfer implements the PendingTransfer aggregate of the two-phase
// hand-off between drivers.
//
// An offer is open while its status is Pending and its deadline has not passed.
// A Pending row past expires_at is treated as closed everywhere even before a
// sweep flips its status, so every method takes the current instant.
package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// DefaultTTL is how long a candidate has to answer an offer.
const DefaultTTL = 24 * time.Hour

var ErrPendingTransferIsNotConstructed = errors.New("PendingTransfer must be created via NewPendingTransfer constructor")

type Status int

const (
	UnknownStatus Status = iota
	Pending
	Accepted
	Rejected
	Expired
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

func (s Status) Validate() error {
	if s < Pending || s > Expired {
		return errs.NewValueIsInvalidErrorWithCause("transfer status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Proposer identifies the driver who made the offer. Name and phone are
// copied at proposal time for the hand-off audit trail.
type Proposer struct {
	DriverID kernel.UUID
	Name     string
	Phone    string
}

type PendingTransfer struct {
	id          kernel.UUID
	orderID     kernel.UUID
	proposer    Proposer
	newDriverID kernel.UUID
	status      Status
	createdAt   time.Time
	expiresAt   time.Time

	isConstructed bool
}

// NewPendingTransfer opens an offer from proposer to newDriverID that stays
// valid for ttl.
func NewPendingTransfer(
	id, orderID kernel.UUID,
	proposer Proposer,
	newDriverID kernel.UUID,
	createdAt time.Time,
	ttl time.Duration,
) (*PendingTransfer, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), proposer.DriverID.Validate(), newDriverID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(proposer.Name) == "" {
		return nil, errs.NewValueIsRequiredError("proposer name")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("ttl", fmt.Errorf("%s is not positive", ttl))
	}
	if proposer.DriverID.IsEqual(newDriverID) {
		return nil, errs.NewRuleViolationError(errs.ErrSelfTransfer, "")
	}

	return &PendingTransfer{
		id:            id,
		orderID:       orderID,
		proposer:      proposer,
		newDriverID:   newDriverID,
		status:        Pending,
		createdAt:     createdAt.UTC(),
		expiresAt:     createdAt.UTC().Add(ttl),
		isConstructed: true,
	}, nil
}

// RestorePendingTransfer rebuilds an offer from storage.
func RestorePendingTransfer(
	id, orderID kernel.UUID,
	proposer Proposer,
	newDriverID kernel.UUID,
	status Status,
	createdAt, expiresAt time.Time,
) (*PendingTransfer, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), proposer.DriverID.Validate(), newDriverID.Validate(), status.Validate(),
	); err != nil {
		return nil, err
	}
	if !expiresAt.After(createdAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause("expires at", errors.New("must be after created at"))
	}

	return &PendingTransfer{
		id:            id,
		orderID:       orderID,
		proposer:      proposer,
		newDriverID:   newDriverID,
		status:        status,
		createdAt:     createdAt.UTC(),
		expiresAt:     expiresAt.UTC(),
		isConstructed: true,
	}, nil
}

func (t *PendingTransfer) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrPendingTransferIsNotConstructed
	}
	return nil
}

func (t *PendingTransfer) ID() kernel.UUID          { return t.id }
func (t *PendingTransfer) OrderID() kernel.UUID     { return t.orderID }
func (t *PendingTransfer) Proposer() Proposer       { return t.proposer }
func (t *PendingTransfer) NewDriverID() kernel.UUID { return t.newDriverID }
func (t *PendingTransfer) Status() Status           { return t.status }
func (t *PendingTransfer) CreatedAt() time.Time     { return t.createdAt }
func (t *PendingTransfer) ExpiresAt() time.Time     { return t.expiresAt }

// IsOpen reports whether the candidate may still answer at instant now.
func (t *PendingTransfer) IsOpen(now time.Time) bool {
	return t.status == Pending && now.Before(t.expiresAt)
}

// EnsureOpen distinguishes a closed offer (not found) from a lapsed one (expired).
func (t *PendingTransfer) EnsureOpen(now time.Time) error {
	if t.status != Pending {
		return errs.NewObjectNotFoundErrorWithCause("transfer", t.id.String(),
			fmt.Errorf("transfer is %s", t.status))
	}
	if !now.Before(t.expiresAt) {
		return errs.NewRuleViolationError(errs.ErrExpired,
			fmt.Sprintf("transfer %s expired at %s", t.id, t.expiresAt.Format(time.RFC3339)))
	}
	return nil
}

// AuthorizeCandidate fails with Forbidden for anyone but the addressed driver.
func (t *PendingTransfer) AuthorizeCandidate(driverID kernel.UUID) error {
	if !t.newDriverID.IsEqual(driverID) {
		return errs.NewForbiddenError(driverID.String(), "transfer "+t.id.String())
	}
	return nil
}

// Accept closes the offer successfully.
func (t *PendingTransfer) Accept(driverID kernel.UUID, now time.Time) error {
	if err := t.answer(driverID, now); err != nil {
		return err
	}
	t.status = Accepted
	return nil
}

// Reject closes the offer without touching the ledger.
func (t *PendingTransfer) Reject(driverID kernel.UUID, now time.Time) error {
	if err := t.answer(driverID, now); err != nil {
		return err
	}
	t.status = Rejected
	return nil
}

// Expire closes a pending offer. Closed offers are left as they are.
func (t *PendingTransfer) Expire() {
	if t.status == Pending {
		t.status = Expired
	}
}

func (t *PendingTransfer) answer(driverID kernel.UUID, now time.Time) error {
	if err := t.EnsureOpen(now); err != nil {
		return err
	}
	return t.AuthorizeCandidate(driverID)
}
