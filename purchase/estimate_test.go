package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productLine(mstNo, dtlNo int, qty int, unitPrice, vinyl float64) ProductEstimateLine {
	product := unitPrice * float64(qty)
	return ProductEstimateLine{
		ShipmentMstNo: mstNo,
		ShipmentDtlNo: dtlNo,
		CenterNo:      "100003",
		SkuID:         "SKU-1",
		SkuName:       "test sku",
		Quantity:      qty,
		UnitPrice:     unitPrice,
		ProductAmount: product,
		VinylAmount:   vinyl,
		TotalAmount:   product + vinyl,
	}
}

func estimateFixture() (CreateEstimateRequest, *fakeStore, *EstimateLedger) {
	p1 := productLine(10, 1, 2, 5.0, 0.5)
	p2 := productLine(11, 2, 3, 2.0, 0.3)
	box := BoxEstimateLine{CenterNo: "100003", BoxSpecCd: "BOX60", Quantity: 2, UnitPrice: 1.5, Amount: 3.0}

	req := CreateEstimateRequest{
		OrderMstNo:         7,
		CompanyNo:          3,
		AccountNo1688:      2,
		Products:           []ProductEstimateLine{p1, p2},
		Boxes:              []BoxEstimateLine{box},
		ProductTotalAmount: p1.ProductAmount + p2.ProductAmount,
		VinylTotalAmount:   p1.VinylAmount + p2.VinylAmount,
		BoxTotalAmount:     box.Amount,
	}
	req.GrandTotalAmount = req.ProductTotalAmount + req.VinylTotalAmount + req.BoxTotalAmount

	store := newFakeStore()
	return req, store, &EstimateLedger{Store: store}
}

func TestCreateEstimateStoresLinesAndShipmentSet(t *testing.T) {
	req, store, ledger := estimateFixture()

	estimateNo, err := ledger.CreateEstimate(context.Background(), req)
	require.NoError(t, err)
	assert.Greater(t, estimateNo, 0)

	require.Len(t, store.createdEstimates, 1)
	est := store.createdEstimates[0]
	assert.Equal(t, 7, est.OrderMstNo)
	assert.Contains(t, est.EstimateID, "EST")
	assert.InDelta(t, req.GrandTotalAmount, est.EstimateTotal, 0.001)

	assert.Len(t, store.createdProducts[0], 2)
	assert.Len(t, store.createdBoxes[0], 1)
	assert.ElementsMatch(t, []int{10, 11}, store.estimateShipNos[estimateNo])
}

func TestCreateEstimateKeepsFailedLinesWithFailFlag(t *testing.T) {
	req, store, ledger := estimateFixture()
	failed := ProductEstimateLine{
		ShipmentMstNo: 12,
		ShipmentDtlNo: 5,
		SkuID:         "SKU-MISSING",
		Quantity:      1,
		ErrorMessage:  "no supplier price",
	}
	req.FailedProducts = []ProductEstimateLine{failed}

	estimateNo, err := ledger.CreateEstimate(context.Background(), req)
	require.NoError(t, err)

	products := store.createdProducts[0]
	require.Len(t, products, 3)
	last := products[2]
	assert.Equal(t, 1, last.FailYn)
	assert.Equal(t, "no supplier price", last.Remark)
	// failed rows still pull their shipment into the estimate scope
	assert.Contains(t, store.estimateShipNos[estimateNo], 12)
}

func TestCreateEstimateRejectsBrokenRollups(t *testing.T) {
	t.Run("line total mismatch", func(t *testing.T) {
		req, _, ledger := estimateFixture()
		req.Products[0].TotalAmount += 1.0
		_, err := ledger.CreateEstimate(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("product rollup mismatch", func(t *testing.T) {
		req, _, ledger := estimateFixture()
		req.ProductTotalAmount += 2.0
		_, err := ledger.CreateEstimate(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("grand total mismatch", func(t *testing.T) {
		req, _, ledger := estimateFixture()
		req.GrandTotalAmount -= 0.5
		_, err := ledger.CreateEstimate(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("no product lines", func(t *testing.T) {
		req, _, ledger := estimateFixture()
		req.Products = nil
		_, err := ledger.CreateEstimate(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}

func TestCreateEstimateToleratesFloatNoise(t *testing.T) {
	req, _, ledger := estimateFixture()
	req.GrandTotalAmount += 0.004

	_, err := ledger.CreateEstimate(context.Background(), req)
	assert.NoError(t, err)
}

func TestConfirmDeposit(t *testing.T) {
	req, store, ledger := estimateFixture()
	estimateNo, err := ledger.CreateEstimate(context.Background(), req)
	require.NoError(t, err)

	require.NoError(t, ledger.ConfirmDeposit(context.Background(), estimateNo))
	assert.Equal(t, []int{estimateNo}, store.confirmDeposited)

	// second confirmation is rejected, not repeated
	err = ledger.ConfirmDeposit(context.Background(), estimateNo)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Len(t, store.confirmDeposited, 1)
}

func TestConfirmDepositRequiresLinkedShipments(t *testing.T) {
	store := newFakeStore()
	ledger := &EstimateLedger{Store: store}
	store.estimates[500] = &Estimate{EstimateNo: 500}

	err := ledger.ConfirmDeposit(context.Background(), 500)
	assert.ErrorIs(t, err, ErrNoLinkedShipments)
	assert.Empty(t, store.confirmDeposited)
}

func TestConfirmDepositUnknownEstimate(t *testing.T) {
	_, _, ledger := estimateFixture()
	err := ledger.ConfirmDeposit(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
