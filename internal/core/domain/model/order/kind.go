package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Kind distinguishes the two order variants that share one state machine.
type Kind int

const (
	UnknownKind Kind = iota

	// Necessities orders carry any number of catalog items from a seller.
	Necessities

	// Produce orders carry a single produce line priced by the catalog.
	Produce
)

func (k Kind) String() string {
	switch k {
	case Necessities:
		return "Necessities"
	case Produce:
		return "Produce"
	default:
		return "Unknown"
	}
}

func (k Kind) Validate() error {
	if k != Necessities && k != Produce {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid order kind", k))
	}
	return nil
}
