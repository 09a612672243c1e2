package purchase

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"sellerhub.kr/fulfillment/procure/alibaba"
)

// MarketplaceAPI is the slice of the 1688 client the purchase pipeline uses.
type MarketplaceAPI interface {
	CreateOrder(ctx context.Context, req alibaba.CreateOrderRequest) (*alibaba.CreateOrderResult, error)
	LogisticsInfo(ctx context.Context, orderNumber string, accountNo int) (*alibaba.LogisticsResult, error)
	GroupPayURL(ctx context.Context, orderNumbers []string, accountNo int) (*alibaba.GroupPayResult, error)
}

// GroupOrderResult is the per-seller-group outcome of a placement run.
type GroupOrderResult struct {
	OpenUID     string `json:"open_uid"`
	DtlNos      []int  `json:"order_shipment_dtl_nos"`
	OrderNumber string `json:"purchase_order_number,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
	Error       string `json:"error,omitempty"`
	// StampFailed marks the reconciliation gap: the external order was
	// placed but the local stamp did not stick. Never re-place the order;
	// re-run the stamp with the returned order number.
	StampFailed bool `json:"stamp_failed,omitempty"`
}

// PlaceOrdersResult summarizes one placement run across all seller groups.
type PlaceOrdersResult struct {
	SuccessCount int                `json:"success_count"`
	FailCount    int                `json:"fail_count"`
	Groups       []GroupOrderResult `json:"groups"`
}

// OrderPlacer splits selected line items into per-seller groups and places
// one external purchase order per group.
type OrderPlacer struct {
	Store  Store
	Market MarketplaceAPI
}

// PlaceOrders groups the given line items by seller and issues one
// marketplace order per group. Groups fail independently; a validation
// failure on the batch input aborts before any external call.
func (p *OrderPlacer) PlaceOrders(ctx context.Context, dtlNos []int, message string) (*PlaceOrdersResult, error) {
	if len(dtlNos) == 0 {
		return nil, fmt.Errorf("%w: no line items selected", ErrEmptyInput)
	}

	candidates, err := p.Store.ListOrderCandidates(ctx, dtlNos)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no matching line items", ErrNotFound)
	}

	groups, err := GroupBySeller(candidates)
	if err != nil {
		return nil, err
	}

	result := &PlaceOrdersResult{}
	for _, g := range groups {
		result.Groups = append(result.Groups, p.placeGroup(ctx, g, message))
		gr := result.Groups[len(result.Groups)-1]
		if gr.OrderNumber != "" && !gr.StampFailed {
			result.SuccessCount++
		} else {
			result.FailCount++
		}
	}
	return result, nil
}

func (p *OrderPlacer) placeGroup(ctx context.Context, g SellerGroup, message string) GroupOrderResult {
	gr := GroupOrderResult{OpenUID: g.OpenUID, DtlNos: g.DtlNos}

	cargo := make([]alibaba.CargoItem, 0, len(g.Cargo))
	for _, c := range g.Cargo {
		cargo = append(cargo, alibaba.CargoItem{
			OfferID:  c.OfferID,
			SpecID:   c.SpecID,
			Quantity: strconv.Itoa(c.Quantity),
		})
	}

	res, err := p.Market.CreateOrder(ctx, alibaba.CreateOrderRequest{
		CargoList:  cargo,
		Message:    message,
		OutOrderID: g.OutOrderID(),
	})
	if err != nil {
		log.Errorf("Place order for seller %s failed: %v", g.OpenUID, err)
		gr.Error = err.Error()
		return gr
	}
	if !res.Success {
		log.Errorf("Place order for seller %s rejected: [%s] %s", g.OpenUID, res.ErrorCode, res.ErrorMessage)
		gr.ErrorCode = res.ErrorCode
		gr.Error = res.ErrorMessage
		return gr
	}

	gr.OrderNumber = res.OrderID
	if err := p.Store.StampOrderNumber(ctx, res.OrderID, g.DtlNos); err != nil {
		// The external order exists and must not be re-placed.
		log.Errorf("RECONCILE REQUIRED: order %s placed for seller %s but local stamp failed: %v",
			res.OrderID, g.OpenUID, err)
		gr.StampFailed = true
		gr.Error = fmt.Sprintf("order %s placed but not recorded locally: %v", res.OrderID, err)
	}
	return gr
}
