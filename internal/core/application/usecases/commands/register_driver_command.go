package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand enrols an account as a driver reachable by phone.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	userID   kernel.UUID
	name     string
	phone    string

	guard guard.ConstructorGuard
}

func NewRegisterDriverCommand(driverID, userID kernel.UUID, name, phone string) (RegisterDriverCommand, error) {
	cmd := RegisterDriverCommand{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driverID.Validate(),
		userID.Validate(),
		cmd.setPhone(phone),
	); err != nil {
		return RegisterDriverCommand{}, err
	}
	if name == "" {
		return RegisterDriverCommand{}, errs.NewValueIsRequiredError("name")
	}

	cmd.driverID = driverID
	cmd.userID = userID
	return cmd, nil
}

func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) DriverID() kernel.UUID { return c.driverID }
func (c RegisterDriverCommand) UserID() kernel.UUID   { return c.userID }
func (c RegisterDriverCommand) Name() string          { return c.name }

// Phone is already normalised.
func (c RegisterDriverCommand) Phone() string { return c.phone }

func (c *RegisterDriverCommand) setPhone(phone string) error {
	normalized, err := driver.NormalizePhone(phone)
	if err != nil {
		return err
	}
	c.phone = normalized
	return nil
}
