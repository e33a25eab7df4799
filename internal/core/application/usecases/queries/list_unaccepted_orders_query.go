package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrListUnacceptedOrdersQueryIsNotConstructed = errors.New(
	"ListUnacceptedOrdersQuery must be created via NewListUnacceptedOrdersQuery constructor",
)

// ListUnacceptedOrdersQuery asks for the FIFO pool drivers pick from.
type ListUnacceptedOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListUnacceptedOrdersQuery() ListUnacceptedOrdersQuery {
	return ListUnacceptedOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListUnacceptedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUnacceptedOrdersQueryIsNotConstructed)
}
