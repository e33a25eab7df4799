// Package order implements the OrderStore aggregate: immutable order facts plus
// the status machine every driver-facing operation goes through.
//
// Orders come in two kinds, Necessities and Produce, that share one state
// machine. The transition table in status.go is the only place legal moves are
// defined; Accept, Pickup, Complete, Expire, MarkOverdue, Cancel and Dispose all
// route through it and fail with errs.ErrInvalidStateTransition otherwise.
package order
