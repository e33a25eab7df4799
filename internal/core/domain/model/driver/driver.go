// Package driver holds the Driver aggregate: a courier account that can accept
// orders and take part in hand-offs.
package driver

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired        = errs.NewValueIsRequiredError("phone")
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver is a registered courier. userID is the platform account behind the
// driver; the same account may also place orders as a buyer, which is why
// self-assignment is checked against it. Notifications are addressed to it.
type Driver struct {
	id     kernel.UUID
	userID kernel.UUID
	name   string
	phone  string
	guard  guard.ConstructorGuard
}

// NewDriver validates and normalises the phone so lookups by phone are exact.
func NewDriver(id, userID kernel.UUID, name, phone string) (*Driver, error) {
	d := &Driver{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setName(name),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) UserID() kernel.UUID {
	return d.userID
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Phone() string {
	return d.phone
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// NormalizePhone strips formatting so "+7 (999) 000-11-22" and "+79990001122" match.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("unexpected character %q", r))
		}
	}

	normalized := b.String()
	digits := strings.TrimPrefix(normalized, "+")
	if digits == "" {
		return "", ErrPhoneIsRequired
	}
	if len(digits) < 5 || len(digits) > 15 {
		return "", errs.NewValueIsOutOfRangeError("phone digits", len(digits), 5, 15)
	}
	return normalized, nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user id", err)
	}
	d.userID = id
	return nil
}

func (d *Driver) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	d.name = strings.TrimSpace(name)
	return nil
}

func (d *Driver) setPhone(phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	d.phone = normalized
	return nil
}
