// Package errs holds the error taxonomy shared by the dispatch service.
//
// Two families live here:
//   - value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) raised while constructing or loading objects;
//   - domain rule errors (RuleViolationError, ForbiddenError,
//     InvalidStateTransitionError) raised when an operation's precondition fails.
//
// Every typed error unwraps to a sentinel, so callers match with errors.Is and
// never compare messages. InternalError marks unexpected persistence failures;
// IsDomain separates those from expected business outcomes.
package errs
