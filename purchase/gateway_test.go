package purchase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub.kr/fulfillment/procure/alibaba"
)

func placerFixture() (*OrderPlacer, *fakeStore, *fakeMarket) {
	store := newFakeStore()
	store.candidates = []OrderCandidate{
		cand(1, "sellerA", "https://detail.1688.com/offer/111.html", "s1", 2),
		cand(2, "sellerA", "https://detail.1688.com/offer/111.html", "s2", 3),
		cand(3, "sellerB", "https://detail.1688.com/offer/222.html", "s1", 4),
	}
	market := &fakeMarket{}
	return &OrderPlacer{Store: store, Market: market}, store, market
}

func TestPlaceOrdersOneOrderPerSeller(t *testing.T) {
	placer, store, market := placerFixture()

	result, err := placer.PlaceOrders(context.Background(), []int{1, 2, 3}, "hurry please")
	require.NoError(t, err)

	assert.Equal(t, 2, market.createCalls)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailCount)
	require.Len(t, result.Groups, 2)

	// stamped onto the right line items
	assert.ElementsMatch(t, []int{1, 2}, store.stampedOrders[result.Groups[0].OrderNumber])
	assert.ElementsMatch(t, []int{3}, store.stampedOrders[result.Groups[1].OrderNumber])
}

func TestPlaceOrdersGroupsFailIndependently(t *testing.T) {
	placer, store, market := placerFixture()
	market.createFn = func(req alibaba.CreateOrderRequest) (*alibaba.CreateOrderResult, error) {
		if strings.HasPrefix(req.OutOrderID, "sellerA") {
			return &alibaba.CreateOrderResult{Success: false, ErrorCode: "500_1", ErrorMessage: "out of stock"}, nil
		}
		return &alibaba.CreateOrderResult{Success: true, OrderID: "PO-B"}, nil
	}

	result, err := placer.PlaceOrders(context.Background(), []int{1, 2, 3}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)

	assert.Equal(t, "500_1", result.Groups[0].ErrorCode)
	assert.Empty(t, result.Groups[0].OrderNumber)
	assert.Equal(t, "PO-B", result.Groups[1].OrderNumber)
	assert.Empty(t, store.stampedOrders[""], "failed group must not stamp anything")
}

func TestPlaceOrdersStampFailureIsNotSuccess(t *testing.T) {
	placer, store, market := placerFixture()
	store.stampOrderErr = errors.New("connection lost")

	result, err := placer.PlaceOrders(context.Background(), []int{3}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, market.createCalls)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)

	g := result.Groups[0]
	assert.True(t, g.StampFailed)
	assert.NotEmpty(t, g.OrderNumber, "external order number must be surfaced for reconciliation")
}

func TestPlaceOrdersValidatesBeforeAnyExternalCall(t *testing.T) {
	placer, store, market := placerFixture()
	// one candidate without a seller identity poisons the whole batch
	store.candidates = append(store.candidates,
		OrderCandidate{ShipmentDtlNo: 4, SkuID: "SKU-X", Quantity: 1})

	_, err := placer.PlaceOrders(context.Background(), []int{1, 2, 3, 4}, "")
	assert.ErrorIs(t, err, ErrMissingIntegrationLink)
	assert.Equal(t, 0, market.createCalls)
}

func TestPlaceOrdersEmptyAndUnknownSelections(t *testing.T) {
	placer, _, _ := placerFixture()

	_, err := placer.PlaceOrders(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = placer.PlaceOrders(context.Background(), []int{999}, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrdersCargoCarriesSummedQuantities(t *testing.T) {
	placer, store, market := placerFixture()
	store.candidates = []OrderCandidate{
		cand(1, "sellerA", "https://detail.1688.com/offer/111.html", "s1", 2),
		cand(2, "sellerA", "https://detail.1688.com/offer/111.html", "s1", 5),
	}

	_, err := placer.PlaceOrders(context.Background(), []int{1, 2}, "")
	require.NoError(t, err)

	require.Len(t, market.createRequests, 1)
	req := market.createRequests[0]
	require.Len(t, req.CargoList, 1)
	assert.Equal(t, "111", req.CargoList[0].OfferID)
	assert.Equal(t, "7", req.CargoList[0].Quantity)
	assert.Equal(t, "sellerA-1", req.OutOrderID)
}
