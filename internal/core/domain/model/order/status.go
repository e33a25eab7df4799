package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Legal moves are listed in
// getTransitions; nothing else may change a status.
//
//	Unaccepted ──> Accepted ──> InDelivery ──> Completed
//	    │             │  └──────────────────────> Completed
//	    │             ├──> DeliveryOverdue ──┐
//	    ├──> Expired ─┼──────────────────────┴──> ReturnedToSeller | Disposed | Donated | Completed
//	    └──> Cancelled <┘
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota

	// Unaccepted orders wait in the FIFO pool for a driver.
	Unaccepted

	// Accepted orders are held by exactly one driver.
	Accepted

	// InDelivery orders were picked up by their driver.
	InDelivery

	// Completed orders were handed to the buyer. Terminal.
	Completed

	// Expired orders sat in the pool past the acceptance window.
	Expired

	// DeliveryOverdue orders were accepted but not delivered before the deadline.
	DeliveryOverdue

	// Cancelled orders were withdrawn by the buyer. Terminal.
	Cancelled

	// ReturnedToSeller, Disposed and Donated are disposition outcomes. Terminal.
	ReturnedToSeller
	Disposed
	Donated
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Unaccepted:       "Unaccepted",
		Accepted:         "Accepted",
		InDelivery:       "InDelivery",
		Completed:        "Completed",
		Expired:          "Expired",
		DeliveryOverdue:  "DeliveryOverdue",
		Cancelled:        "Cancelled",
		ReturnedToSeller: "ReturnedToSeller",
		Disposed:         "Disposed",
		Donated:          "Donated",
	}
}

// getTransitions is the single table of legal status moves. A status absent
// from the keys is terminal.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing moves
	return map[Status][]Status{
		Unaccepted:      {Accepted, Expired, Cancelled},
		Accepted:        {InDelivery, Completed, DeliveryOverdue, Cancelled},
		InDelivery:      {Completed},
		Expired:         {ReturnedToSeller, Disposed, Donated, Completed},
		DeliveryOverdue: {ReturnedToSeller, Disposed, Donated, Completed},
	}
}

// AllStatuses lists every valid status in declaration order.
func AllStatuses() []Status {
	return []Status{
		Unaccepted, Accepted, InDelivery, Completed, Expired,
		DeliveryOverdue, Cancelled, ReturnedToSeller, Disposed, Donated,
	}
}

// Validate rejects Unknown and out-of-range values coming from storage or callers.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus is the inverse of String.
func ParseStatus(name string) (Status, error) {
	for st, str := range getStatusStrings() {
		if st != Unknown && str == name {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	if s.Validate() != nil {
		return false
	}
	_, ok := getTransitions()[s]
	return !ok
}

// IsHeld reports whether a driver is currently responsible for the order.
func (s Status) IsHeld() bool {
	return s == Accepted || s == InDelivery
}

// CanTransitionTo consults the transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the move is legal and an
// InvalidStateTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidStateTransitionError("order", s, target)
	}
	return target, nil
}
