package errs

import (
	"errors"
	"fmt"
)

// Domain rule kinds. Every RuleViolationError unwraps to exactly one of them,
// so callers branch with errors.Is.
var (
	ErrAlreadyAssigned        = errors.New("order is already assigned")
	ErrExpired                = errors.New("deadline has passed")
	ErrSelfAssignment         = errors.New("driver cannot accept own order")
	ErrSelfTransfer           = errors.New("driver cannot transfer order to self")
	ErrNotHolder              = errors.New("driver does not hold the order")
	ErrStaleOwnership         = errors.New("order ownership changed since transfer was proposed")
	ErrDuplicatePending       = errors.New("open transfer offer already exists")
	ErrOverdueBacklog         = errors.New("driver has overdue deliveries")
	ErrQuantityLimitExceeded  = errors.New("order quantity limit exceeded")
	ErrNotRegistered          = errors.New("driver is not registered")
	ErrForbidden              = errors.New("actor is not allowed to act on this entity")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInternal               = errors.New("internal error")
)

// RuleViolationError carries a rule kind together with the precondition that failed.
type RuleViolationError struct {
	Kind   error
	Detail string
}

func NewRuleViolationError(kind error, detail string) *RuleViolationError {
	return &RuleViolationError{Kind: kind, Detail: detail}
}

func (e *RuleViolationError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *RuleViolationError) Unwrap() error {
	return e.Kind
}

// ForbiddenError names the actor that tried to touch an entity it does not own.
type ForbiddenError struct {
	Actor  any
	Entity string
}

func NewForbiddenError(actor any, entity string) *ForbiddenError {
	return &ForbiddenError{Actor: actor, Entity: entity}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %v on %s", ErrForbidden, e.Actor, e.Entity)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidStateTransitionError reports an attempted move the state machine does not allow.
type InvalidStateTransitionError struct {
	Entity string
	From   fmt.Stringer
	To     fmt.Stringer
}

func NewInvalidStateTransitionError(entity string, from, to fmt.Stringer) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidStateTransition, e.Entity, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// InternalError wraps an unexpected infrastructure failure. Its message is safe
// to show to callers; the cause is kept for logs.
type InternalError struct {
	Op    string
	Cause error
}

func NewInternalError(op string, cause error) *InternalError {
	return &InternalError{Op: op, Cause: cause}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInternal, e.Op)
}

func (e *InternalError) Unwrap() []error {
	return []error{ErrInternal, e.Cause}
}

var domainKinds = []error{
	ErrObjectNotFound,
	ErrValueIsInvalid,
	ErrValueIsOutOfRange,
	ErrValueIsRequired,
	ErrAlreadyAssigned,
	ErrExpired,
	ErrSelfAssignment,
	ErrSelfTransfer,
	ErrNotHolder,
	ErrStaleOwnership,
	ErrDuplicatePending,
	ErrOverdueBacklog,
	ErrQuantityLimitExceeded,
	ErrNotRegistered,
	ErrForbidden,
	ErrInvalidStateTransition,
}

// IsDomain reports whether err is an expected business outcome rather than an
// infrastructure failure.
func IsDomain(err error) bool {
	if err == nil || errors.Is(err, ErrInternal) {
		return false
	}
	for _, kind := range domainKinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
