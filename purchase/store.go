package purchase

import "context"

// Store is the relational access layer for the purchase pipeline. Methods
// that touch several tables run their writes in one transaction.
type Store interface {
	// ListOrderCandidates returns the non-deleted line items for the
	// given dtl numbers.
	ListOrderCandidates(ctx context.Context, dtlNos []int) ([]OrderCandidate, error)
	// StampOrderNumber writes the external order number onto every
	// shipment line item in the set and onto every non-failed estimate
	// product row referencing them, in one transaction.
	StampOrderNumber(ctx context.Context, orderNumber string, dtlNos []int) error

	// CreateEstimate inserts the estimate with its product and box lines,
	// flips estimated_yn on the referenced shipments, and returns the new
	// estimate number.
	CreateEstimate(ctx context.Context, est *Estimate, products []EstimateProduct, boxes []EstimateBox, shipmentMstNos []int) (int, error)
	GetEstimate(ctx context.Context, estimateNo int) (*Estimate, error)
	ListEstimateProducts(ctx context.Context, estimateNo int) ([]EstimateProduct, error)
	ListEstimateBoxes(ctx context.Context, estimateNo int) ([]EstimateBox, error)
	// ListEstimateShipmentNos returns the distinct shipment masters
	// referenced by the estimate's product lines.
	ListEstimateShipmentNos(ctx context.Context, estimateNo int) ([]int, error)
	// ConfirmDeposit flips deposit_yn (only when still 0) and moves every
	// listed shipment to PAYMENT_COMPLETED in one transaction. Returns
	// ErrAlreadyConfirmed when the flag was already set.
	ConfirmDeposit(ctx context.Context, estimateNo int, shipmentMstNos []int) error

	// ListOutstandingOrderNumbers returns the distinct non-empty purchase
	// order numbers on non-deleted line items.
	ListOutstandingOrderNumbers(ctx context.Context) ([]string, error)
	OrderNumberExists(ctx context.Context, orderNumber string) (bool, error)
	// EstimateAccountForOrder resolves the 1688 account linked to the
	// order number's estimate; 0 when unresolvable.
	EstimateAccountForOrder(ctx context.Context, orderNumber string) (int, error)
	// ApplyTrackingUpdates fans every update out to all line items sharing
	// its order number, committing the whole batch in one transaction.
	ApplyTrackingUpdates(ctx context.Context, updates []TrackingUpdate) error

	GetPackingBox(ctx context.Context, boxNo int) (*PackingMst, error)
	// StampBoxTracking writes the tracking number onto the box and onto
	// its packing lines whose estimate product has fail_yn=0, in one
	// transaction.
	StampBoxTracking(ctx context.Context, boxNo int, trackingNumber string) error

	// FilterKnownOrderNumbers intersects the input with order numbers
	// present on non-deleted estimate product rows.
	FilterKnownOrderNumbers(ctx context.Context, orderNumbers []string) ([]string, error)
	// StampPayURL writes the consolidated payment URL onto every estimate
	// product row holding one of the order numbers.
	StampPayURL(ctx context.Context, orderNumbers []string, payURL string) (int64, error)
}
