package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateDriver handles POST /api/v1/drivers - registers a new driver.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body servers.CreateDriverJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := toKernel("user id", body.UserId)
	if err != nil {
		return s.fail(ctx, "register_driver", err)
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(driverID, userID, body.Name, body.Phone)
	if err != nil {
		return s.fail(ctx, "register_driver", err)
	}
	if err = s.h.RegisterDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "register_driver", err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: driverID.Bytes()})
}
