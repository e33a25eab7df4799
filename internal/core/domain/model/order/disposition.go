package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Disposition is the manual outcome chosen for an expired or overdue order.
type Disposition int

const (
	UnknownDisposition Disposition = iota
	ReturnToSeller
	Dispose
	Donate
	CustomerStillWants
)

func getDispositionNames() map[Disposition]string {
	return map[Disposition]string{
		ReturnToSeller:     "return_to_seller",
		Dispose:            "dispose",
		Donate:             "donate",
		CustomerStillWants: "customer_still_wants",
	}
}

// ParseDisposition accepts the wire names used by the HTTP surface.
func ParseDisposition(name string) (Disposition, error) {
	for d, n := range getDispositionNames() {
		if n == name {
			return d, nil
		}
	}
	return UnknownDisposition, errs.NewValueIsInvalidErrorWithCause(
		"disposition is invalid",
		fmt.Errorf("%q is not one of return_to_seller, dispose, donate, customer_still_wants", name),
	)
}

func (d Disposition) String() string {
	if n, ok := getDispositionNames()[d]; ok {
		return n
	}
	return "unknown"
}

// TargetStatus maps the disposition to the status it produces.
func (d Disposition) TargetStatus() (Status, error) {
	switch d {
	case ReturnToSeller:
		return ReturnedToSeller, nil
	case Dispose:
		return Disposed, nil
	case Donate:
		return Donated, nil
	case CustomerStillWants:
		return Completed, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("disposition is invalid", fmt.Errorf("%d is unknown", d))
	}
}
