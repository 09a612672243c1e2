package purchase

import "errors"

// Validation and precondition failures surfaced by the purchase operations.
// Batch-level failures inside a run are accumulated per unit instead.
var (
	// ErrMissingIntegrationLink marks a candidate line item without a
	// resolvable seller identity, offer id or spec id.
	ErrMissingIntegrationLink = errors.New("line item is missing its 1688 integration link")

	// ErrNoValidOrders marks a payment-link request whose order numbers
	// match no known purchase.
	ErrNoValidOrders = errors.New("no valid purchase order numbers")

	// ErrNoLinkedShipments marks a deposit confirmation on an estimate
	// with no resolvable shipment references.
	ErrNoLinkedShipments = errors.New("estimate has no linked shipments")

	// ErrAlreadyIssued blocks re-issuing a carrier tracking number for a
	// box that already carries one.
	ErrAlreadyIssued = errors.New("tracking number already issued for box")

	// ErrAlreadyConfirmed blocks re-confirming a deposit.
	ErrAlreadyConfirmed = errors.New("deposit already confirmed")

	// ErrNotFound marks a missing or soft-deleted entity.
	ErrNotFound = errors.New("not found")

	ErrEmptyInput = errors.New("empty input")
)
