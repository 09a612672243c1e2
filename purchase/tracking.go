package purchase

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// SyncError is one failed order number inside a sync run.
type SyncError struct {
	OrderNumber string `json:"purchase_order_number"`
	ErrorCode   string `json:"error_code,omitempty"`
	Error       string `json:"error"`
}

// SyncResult summarizes one tracking sync run.
type SyncResult struct {
	SuccessCount    int         `json:"success_count"`
	NotShippedCount int         `json:"not_shipped_count"`
	FailCount       int         `json:"fail_count"`
	Errors          []SyncError `json:"errors,omitempty"`
}

// Message is the operator-facing one-line summary of the run.
func (r *SyncResult) Message() string {
	return fmt.Sprintf("tracking sync finished: %d updated, %d not shipped, %d failed",
		r.SuccessCount, r.NotShippedCount, r.FailCount)
}

// TrackingReconciler pulls 1688 logistics status for outstanding purchase
// order numbers and fans the result out to every line item sharing them.
type TrackingReconciler struct {
	Store  Store
	Market MarketplaceAPI
}

// SyncAll syncs every distinct outstanding order number. Order numbers are
// processed independently; all resulting updates are committed together at
// the end of the run.
func (t *TrackingReconciler) SyncAll(ctx context.Context) (*SyncResult, error) {
	orderNumbers, err := t.Store.ListOutstandingOrderNumbers(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("Tracking sync: %d outstanding order numbers", len(orderNumbers))

	result := &SyncResult{}
	var updates []TrackingUpdate

	for _, orderNumber := range orderNumbers {
		update, outcome := t.fetch(ctx, orderNumber, result)
		if outcome != nil {
			result.Errors = append(result.Errors, *outcome)
			continue
		}
		if update != nil {
			updates = append(updates, *update)
		}
	}

	// one commit for the whole run
	if err := t.Store.ApplyTrackingUpdates(ctx, updates); err != nil {
		return nil, err
	}
	log.Info(result.Message())
	return result, nil
}

// SyncOne syncs a single order number and applies its update immediately.
func (t *TrackingReconciler) SyncOne(ctx context.Context, orderNumber string) (*SyncResult, error) {
	exists, err := t.Store.OrderNumberExists(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: purchase order %s", ErrNotFound, orderNumber)
	}

	result := &SyncResult{}
	update, outcome := t.fetch(ctx, orderNumber, result)
	if outcome != nil {
		result.Errors = append(result.Errors, *outcome)
		return result, nil
	}
	if update != nil {
		if err := t.Store.ApplyTrackingUpdates(ctx, []TrackingUpdate{*update}); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// fetch calls the logistics endpoint for one order number and classifies
// the response, bumping the run counters. A non-nil SyncError is a real
// failure; a nil update with no error means nothing to record yet.
func (t *TrackingReconciler) fetch(ctx context.Context, orderNumber string, result *SyncResult) (*TrackingUpdate, *SyncError) {
	// prefer the account the order's estimate was created with
	accountNo, err := t.Store.EstimateAccountForOrder(ctx, orderNumber)
	if err != nil {
		log.Warnf("Resolve account for order %s failed, using random account: %v", orderNumber, err)
		accountNo = 0
	}

	info, err := t.Market.LogisticsInfo(ctx, orderNumber, accountNo)
	if err != nil {
		log.Errorf("Logistics info for order %s failed: %v", orderNumber, err)
		result.FailCount++
		return nil, &SyncError{OrderNumber: orderNumber, Error: err.Error()}
	}

	switch {
	case info.Success:
		if len(info.Items) == 0 || info.Items[0].LogisticsID == "" {
			log.Infof("Order %s: no logistics info yet", orderNumber)
			return nil, nil
		}
		item := info.Items[0]
		result.SuccessCount++
		log.Infof("Order %s: tracking %s, status %s, carrier %s",
			orderNumber, item.LogisticsID, item.Status, item.LogisticsCompanyID)
		return &TrackingUpdate{
			OrderNumber:        orderNumber,
			TrackingNumber:     item.LogisticsID,
			DeliveryStatus:     item.Status,
			LogisticsCompanyID: item.LogisticsCompanyID,
		}, nil

	case info.NotShipped:
		// expected transient state, not an error
		result.NotShippedCount++
		return nil, nil

	default:
		log.Errorf("Order %s sync failed: [%s] %s", orderNumber, info.ErrorCode, info.ErrorMessage)
		result.FailCount++
		return nil, &SyncError{OrderNumber: orderNumber, ErrorCode: info.ErrorCode, Error: info.ErrorMessage}
	}
}
