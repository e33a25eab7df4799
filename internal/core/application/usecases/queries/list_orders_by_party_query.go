package queries

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrListOrdersByPartyQueryIsNotConstructed = errors.New(
	"ListOrdersByPartyQuery must be created via NewListOrdersByPartyQuery constructor",
)

// Party selects which side of an order a listing is for.
type Party int

const (
	Buyer Party = iota + 1
	Seller
)

func (p Party) String() string {
	switch p {
	case Buyer:
		return "buyer"
	case Seller:
		return "seller"
	default:
		return fmt.Sprintf("Party(%d)", int(p))
	}
}

// column is the orders column the party is stored in.
func (p Party) column() string {
	if p == Seller {
		return "seller_id"
	}
	return "buyer_id"
}

// ListOrdersByPartyQuery asks for every order placed by a buyer or sold by a seller.
type ListOrdersByPartyQuery struct {
	party   Party
	partyID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListOrdersByPartyQuery(party Party, partyID kernel.UUID) (ListOrdersByPartyQuery, error) {
	if party != Buyer && party != Seller {
		return ListOrdersByPartyQuery{}, errs.NewValueIsInvalidError("party")
	}
	if err := partyID.Validate(); err != nil {
		return ListOrdersByPartyQuery{}, errs.NewValueIsRequiredErrorWithCause(party.String()+" id", err)
	}
	return ListOrdersByPartyQuery{party: party, partyID: partyID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersByPartyQuery) Party() Party         { return q.party }
func (q ListOrdersByPartyQuery) PartyID() kernel.UUID { return q.partyID }

func (q ListOrdersByPartyQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByPartyQueryIsNotConstructed)
}
