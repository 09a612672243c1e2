package purchase

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// PayLinkResult is the outcome of a payment-link aggregation.
type PayLinkResult struct {
	PayURL       string   `json:"pay_url"`
	OrderNumbers []string `json:"purchase_order_numbers"`
	UpdatedCount int64    `json:"updated_count,omitempty"`
}

// PaymentLinkAggregator builds one consolidated 1688 payment URL for a
// batch of purchase order numbers.
type PaymentLinkAggregator struct {
	Store  Store
	Market MarketplaceAPI
}

// Aggregate intersects the requested order numbers with known ones and
// issues a single group-pay call for the whole batch. Unknown order
// numbers are dropped silently; an empty intersection fails.
func (a *PaymentLinkAggregator) Aggregate(ctx context.Context, orderNumbers []string, accountNo int) (*PayLinkResult, error) {
	valid, err := a.validOrderNumbers(ctx, orderNumbers)
	if err != nil {
		return nil, err
	}

	res, err := a.Market.GroupPayURL(ctx, valid, accountNo)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("payment link generation failed: [%s] %s", res.ErrorCode, res.ErrorMessage)
	}

	log.Infof("Payment link generated for %d orders", len(valid))
	return &PayLinkResult{PayURL: res.PayURL, OrderNumbers: valid}, nil
}

// AggregateAndStamp additionally writes the generated URL onto every
// estimate product row holding one of the order numbers. Re-running with
// the same set simply regenerates and overwrites the link.
func (a *PaymentLinkAggregator) AggregateAndStamp(ctx context.Context, orderNumbers []string, accountNo int) (*PayLinkResult, error) {
	result, err := a.Aggregate(ctx, orderNumbers, accountNo)
	if err != nil {
		return nil, err
	}

	updated, err := a.Store.StampPayURL(ctx, result.OrderNumbers, result.PayURL)
	if err != nil {
		return nil, fmt.Errorf("payment link generated but not recorded locally: %w", err)
	}
	result.UpdatedCount = updated
	log.Infof("Payment link stamped on %d rows", updated)
	return result, nil
}

func (a *PaymentLinkAggregator) validOrderNumbers(ctx context.Context, orderNumbers []string) ([]string, error) {
	if len(orderNumbers) == 0 {
		return nil, fmt.Errorf("%w: no order numbers", ErrEmptyInput)
	}

	valid, err := a.Store.FilterKnownOrderNumbers(ctx, orderNumbers)
	if err != nil {
		return nil, err
	}
	if len(valid) == 0 {
		return nil, ErrNoValidOrders
	}
	return valid, nil
}
