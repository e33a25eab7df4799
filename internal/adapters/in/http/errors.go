package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const internalMessage = "internal error"

// statusFor classifies an error returned by a use case.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrQuantityLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errs.IsDomain(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. Unclassified errors are logged and
// counted, and the caller only sees a generic message.
func (s *Server) fail(ctx echo.Context, operation string, err error) error {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		var internal *errs.InternalError
		if !errors.As(err, &internal) {
			internal = errs.NewInternalError(operation, err)
		}
		s.logger.ErrorContext(ctx.Request().Context(), "operation failed",
			"operation", operation,
			"error", internal,
			"cause", internal.Cause,
		)
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		message = internalMessage
	}

	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func toKernel(name string, id openapi_types.UUID) (kernel.UUID, error) {
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return u, nil
}
