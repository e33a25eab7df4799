package order_test

import (
	"math"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func item(t *testing.T, id, price string, qty int) order.LineItem {
	t.Helper()
	li, err := order.NewLineItem(id, "item "+id, decimal.RequireFromString(price), qty, []string{"no sugar"})
	require.NoError(t, err)
	return li
}

func newNecessities(t *testing.T, items ...order.LineItem) *order.Order {
	t.Helper()
	seller := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &seller, order.Necessities, items, "Dorm 4, room 12", "", createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder_ComputesTotal(t *testing.T) {
	o := newNecessities(t,
		item(t, "a", "2.50", 3),
		item(t, "b", "10.00", 1),
		item(t, "c", "0.99", 2),
	)

	assert.True(t, decimal.RequireFromString("19.48").Equal(o.TotalPrice()), o.TotalPrice().String())
	assert.Equal(t, 6, o.TotalQuantity())
	assert.Equal(t, order.Unaccepted, o.Status())
	assert.Equal(t, createdAt, o.CreatedAt())
	require.NoError(t, o.Validate())
}

func TestNewOrder_ProduceTotalIsUnitPriceTimesQuantity(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Produce,
		[]order.LineItem{item(t, "apples", "1.15", 7)}, "Dorm 1", "", createdAt)

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("8.05").Equal(o.TotalPrice()))
	assert.Nil(t, o.SellerID())
}

func TestNewOrder_ProduceNeedsExactlyOneItem(t *testing.T) {
	_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Produce,
		[]order.LineItem{item(t, "a", "1", 1), item(t, "b", "1", 1)}, "Dorm 1", "", createdAt)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewOrder_QuantityCap(t *testing.T) {
	t.Run("exactly the cap is accepted", func(t *testing.T) {
		o := newNecessities(t, item(t, "a", "1", 20), item(t, "b", "1", 10))
		assert.Equal(t, order.MaxItemsPerOrder, o.TotalQuantity())
	})

	t.Run("one over the cap is rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities,
			[]order.LineItem{item(t, "a", "1", 20), item(t, "b", "1", 11)}, "Dorm 1", "", createdAt)

		require.ErrorIs(t, err, errs.ErrQuantityLimitExceeded)
	})

	t.Run("huge quantities do not wrap around", func(t *testing.T) {
		huge, err := order.NewLineItem("a", "a", decimal.NewFromInt(1), math.MaxInt, nil)
		require.NoError(t, err)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities,
			[]order.LineItem{huge, item(t, "b", "1", 2)}, "Dorm 1", "", createdAt)

		require.ErrorIs(t, err, errs.ErrQuantityLimitExceeded)
		assert.Nil(t, o)
	})

	t.Run("a single item over the cap is rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities,
			[]order.LineItem{item(t, "a", "1", order.MaxItemsPerOrder+1)}, "Dorm 1", "", createdAt)

		require.ErrorIs(t, err, errs.ErrQuantityLimitExceeded)
	})
}

func TestNewOrder_TotalMustFitStoredMoney(t *testing.T) {
	_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities,
		[]order.LineItem{item(t, "a", "9999999999.99", 2)}, "Dorm 1", "", createdAt)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewOrder_Validation(t *testing.T) {
	valid := []order.LineItem{item(t, "a", "1", 1)}

	testCases := []struct {
		name  string
		build func() (*order.Order, error)
	}{
		{"nil order id", func() (*order.Order, error) {
			return order.NewOrder(kernel.UUID{}, kernel.NewUUID(), nil, order.Necessities, valid, "x", "", createdAt)
		}},
		{"nil buyer", func() (*order.Order, error) {
			return order.NewOrder(kernel.NewUUID(), kernel.UUID{}, nil, order.Necessities, valid, "x", "", createdAt)
		}},
		{"unknown kind", func() (*order.Order, error) {
			return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.UnknownKind, valid, "x", "", createdAt)
		}},
		{"blank location", func() (*order.Order, error) {
			return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities, valid, "  ", "", createdAt)
		}},
		{"zero time", func() (*order.Order, error) {
			return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities, valid, "x", "", time.Time{})
		}},
		{"no items", func() (*order.Order, error) {
			return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities, nil, "x", "", createdAt)
		}},
		{"zero-value item", func() (*order.Order, error) {
			return order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities, []order.LineItem{{}}, "x", "", createdAt)
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o, err := tc.build()
			require.Error(t, err)
			assert.Nil(t, o)
		})
	}
}

func TestNewLineItem_Validation(t *testing.T) {
	_, err := order.NewLineItem("", "x", decimal.NewFromInt(1), 1, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = order.NewLineItem("a", "", decimal.NewFromInt(1), 1, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = order.NewLineItem("a", "x", decimal.NewFromInt(-1), 1, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewLineItem("a", "x", decimal.NewFromInt(1), 0, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewLineItem("a", "x", decimal.RequireFromString("0.005"), 2, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewLineItem("a", "x", decimal.RequireFromString("10000000000"), 1, nil)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	li, err := order.NewLineItem("a", "x", decimal.RequireFromString("1.500"), 2, nil)
	require.NoError(t, err)
	assert.True(t, li.Subtotal().Equal(decimal.RequireFromString("3")))

	opts := []string{"large"}
	li, err = order.NewLineItem("a", "x", decimal.NewFromInt(1), 1, opts)
	require.NoError(t, err)
	opts[0] = "mutated"
	assert.Equal(t, []string{"large"}, li.Options())
}

func TestOrder_HappyPath(t *testing.T) {
	o := newNecessities(t, item(t, "a", "1", 1))

	require.NoError(t, o.Accept())
	require.NoError(t, o.Pickup())
	require.NoError(t, o.Complete())
	assert.Equal(t, order.Completed, o.Status())
	assert.True(t, o.Status().IsTerminal())
}

func TestOrder_CompleteRequiresHeldOrder(t *testing.T) {
	o := newNecessities(t, item(t, "a", "1", 1))
	require.ErrorIs(t, o.Complete(), errs.ErrInvalidStateTransition)

	require.NoError(t, o.Expire())
	require.ErrorIs(t, o.Complete(), errs.ErrInvalidStateTransition)
	assert.Equal(t, order.Expired, o.Status())
}

func TestOrder_AcceptTwiceFails(t *testing.T) {
	o := newNecessities(t, item(t, "a", "1", 1))

	require.NoError(t, o.Accept())
	require.ErrorIs(t, o.Accept(), errs.ErrInvalidStateTransition)
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("only the buyer may cancel", func(t *testing.T) {
		o := newNecessities(t, item(t, "a", "1", 1))

		err := o.Cancel(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.Unaccepted, o.Status())
	})

	t.Run("from accepted", func(t *testing.T) {
		o := newNecessities(t, item(t, "a", "1", 1))
		require.NoError(t, o.Accept())

		require.NoError(t, o.Cancel(o.BuyerID()))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("not once in delivery", func(t *testing.T) {
		o := newNecessities(t, item(t, "a", "1", 1))
		require.NoError(t, o.Accept())
		require.NoError(t, o.Pickup())

		require.ErrorIs(t, o.Cancel(o.BuyerID()), errs.ErrInvalidStateTransition)
	})
}

func TestOrder_Dispose(t *testing.T) {
	testCases := []struct {
		disposition order.Disposition
		want        order.Status
	}{
		{order.ReturnToSeller, order.ReturnedToSeller},
		{order.Dispose, order.Disposed},
		{order.Donate, order.Donated},
		{order.CustomerStillWants, order.Completed},
	}

	for _, tc := range testCases {
		t.Run(tc.disposition.String(), func(t *testing.T) {
			o := newNecessities(t, item(t, "a", "1", 1))
			require.NoError(t, o.Accept())
			require.NoError(t, o.MarkOverdue())

			require.NoError(t, o.Dispose(tc.disposition, "left at the door"))

			assert.Equal(t, tc.want, o.Status())
			assert.Equal(t, "["+tc.disposition.String()+"] left at the door", o.Note())
		})
	}

	t.Run("appends to an existing note", func(t *testing.T) {
		seller := kernel.NewUUID()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &seller, order.Necessities,
			[]order.LineItem{item(t, "a", "1", 1)}, "x", "ring twice", createdAt)
		require.NoError(t, err)
		require.NoError(t, o.Expire())

		require.NoError(t, o.Dispose(order.Donate, ""))
		assert.Equal(t, "ring twice\n[donate]", o.Note())
	})

	t.Run("only from expired or overdue", func(t *testing.T) {
		o := newNecessities(t, item(t, "a", "1", 1))
		require.NoError(t, o.Accept())

		require.ErrorIs(t, o.Dispose(order.Dispose, ""), errs.ErrInvalidStateTransition)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("unknown disposition", func(t *testing.T) {
		o := newNecessities(t, item(t, "a", "1", 1))
		require.NoError(t, o.Expire())

		require.ErrorIs(t, o.Dispose(order.UnknownDisposition, ""), errs.ErrValueIsInvalid)
	})
}

func TestParseDisposition(t *testing.T) {
	d, err := order.ParseDisposition("customer_still_wants")
	require.NoError(t, err)
	assert.Equal(t, order.CustomerStillWants, d)

	_, err = order.ParseDisposition("burn")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestoreOrder_KeepsStoredTotal(t *testing.T) {
	items := []order.LineItem{item(t, "a", "1.00", 2)}
	stored := decimal.RequireFromString("1.50")

	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities, items,
		stored, "x", "", order.DeliveryOverdue, createdAt)

	require.NoError(t, err)
	assert.True(t, stored.Equal(o.TotalPrice()))
	assert.Equal(t, order.DeliveryOverdue, o.Status())

	_, err = order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.Necessities, items,
		stored, "x", "", order.Unknown, createdAt)
	require.Error(t, err)
}

func TestOrder_ZeroValueIsNotConstructed(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}
