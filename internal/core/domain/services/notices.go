package services

import (
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/transfer"
)

func shortID(id kernel.UUID) string {
	return strings.SplitN(id.String(), "-", 2)[0]
}

// OrderAcceptedNotice tells the buyer who is bringing the order.
func OrderAcceptedNotice(o *order.Order, d *driver.Driver) string {
	return fmt.Sprintf("Order %s was accepted by %s (%s). Total %s.",
		shortID(o.ID()), d.Name(), d.Phone(), o.TotalPrice().StringFixed(2))
}

func OrderPickedUpNotice(o *order.Order, d *driver.Driver) string {
	return fmt.Sprintf("Order %s was picked up by %s and is on its way to %s.",
		shortID(o.ID()), d.Name(), o.Location())
}

func OrderCompletedNotice(o *order.Order) string {
	return fmt.Sprintf("Order %s was delivered. Thank you!", shortID(o.ID()))
}

// OrderCancelledNotice is sent to the driver who lost the order.
func OrderCancelledNotice(o *order.Order) string {
	return fmt.Sprintf("Order %s was cancelled by the buyer. You no longer need to deliver it.", shortID(o.ID()))
}

func OrderDisposedNotice(o *order.Order, d order.Disposition) string {
	return fmt.Sprintf("Order %s was closed as %s: %s.", shortID(o.ID()), strings.ReplaceAll(d.String(), "_", " "), o.Status())
}

// TransferProposedNotice is sent to the candidate driver.
func TransferProposedNotice(o *order.Order, t *transfer.PendingTransfer) string {
	p := t.Proposer()
	return fmt.Sprintf("%s (%s) offers you order %s to %s. Answer before %s.",
		p.Name, p.Phone, shortID(o.ID()), o.Location(), t.ExpiresAt().Format("2006-01-02 15:04 MST"))
}

// TransferAcceptedNotice is sent to the proposer once the candidate took over.
func TransferAcceptedNotice(t *transfer.PendingTransfer, candidate *driver.Driver) string {
	return fmt.Sprintf("%s (%s) accepted your transfer of order %s. It is no longer yours.",
		candidate.Name(), candidate.Phone(), shortID(t.OrderID()))
}

// TransferRejectedNotice is sent to the proposer; the order stays with them.
func TransferRejectedNotice(t *transfer.PendingTransfer, candidate *driver.Driver) string {
	return fmt.Sprintf("%s declined your transfer of order %s. You still hold it.",
		candidate.Name(), shortID(t.OrderID()))
}
