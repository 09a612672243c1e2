package purchase

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
)

// amountTolerance absorbs float rounding when checking rollup totals.
const amountTolerance = 0.005

// ProductEstimateLine is one priced (or failed) product row of a new estimate.
type ProductEstimateLine struct {
	ShipmentMstNo  int     `json:"order_shipment_mst_no"`
	ShipmentDtlNo  int     `json:"order_shipment_dtl_no"`
	CenterNo       string  `json:"center_no"`
	SkuID          string  `json:"sku_id"`
	SkuName        string  `json:"sku_name"`
	Bundle         string  `json:"bundle"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	ProductAmount  float64 `json:"product_amount"`
	VinylSpecCd    string  `json:"package_vinyl_spec_cd"`
	VinylUnitPrice float64 `json:"package_vinyl_unit_price"`
	VinylAmount    float64 `json:"package_amount"`
	TotalAmount    float64 `json:"total_amount"`
	// ErrorMessage is set on rows that could not be priced; they are
	// stored with fail_yn=1 and excluded from ordering and tracking.
	ErrorMessage string `json:"error_message,omitempty"`
}

// BoxEstimateLine is one per-center box-count row of a new estimate.
type BoxEstimateLine struct {
	CenterNo  string  `json:"center_no"`
	BoxSpecCd string  `json:"package_box_spec_cd"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

// CreateEstimateRequest carries one full estimate submission.
type CreateEstimateRequest struct {
	OrderMstNo         int                   `json:"order_mst_no"`
	CompanyNo          int                   `json:"company_no"`
	AccountNo1688      int                   `json:"account_info_no_1688"`
	Products           []ProductEstimateLine `json:"product_estimates"`
	FailedProducts     []ProductEstimateLine `json:"product_estimates_fail"`
	Boxes              []BoxEstimateLine     `json:"box_estimates"`
	ProductTotalAmount float64               `json:"product_total_amount"`
	VinylTotalAmount   float64               `json:"vinyl_total_amount"`
	BoxTotalAmount     float64               `json:"box_total_amount"`
	GrandTotalAmount   float64               `json:"grand_total_amount"`
	CreatedBy          int                   `json:"created_by"`
}

// EstimateLedger owns the estimate lifecycle: creation with validated
// rollups and deposit confirmation.
type EstimateLedger struct {
	Store Store
}

// CreateEstimate stores a new estimate with its product and box lines and
// flips estimated_yn on every referenced shipment. The submitted rollup
// totals must equal the sums of their constituent lines.
func (l *EstimateLedger) CreateEstimate(ctx context.Context, req CreateEstimateRequest) (int, error) {
	if len(req.Products) == 0 && len(req.FailedProducts) == 0 {
		return 0, fmt.Errorf("%w: estimate has no product lines", ErrEmptyInput)
	}

	var productSum, vinylSum, boxSum float64
	shipmentNos := make(map[int]bool)
	products := make([]EstimateProduct, 0, len(req.Products)+len(req.FailedProducts))

	for _, line := range req.Products {
		if diff := line.ProductAmount + line.VinylAmount - line.TotalAmount; math.Abs(diff) > amountTolerance {
			return 0, fmt.Errorf("sku %s: total %.2f does not equal product %.2f + vinyl %.2f",
				line.SkuID, line.TotalAmount, line.ProductAmount, line.VinylAmount)
		}
		productSum += line.ProductAmount
		vinylSum += line.VinylAmount
		shipmentNos[line.ShipmentMstNo] = true
		products = append(products, newEstimateProduct(line, req.CompanyNo, 0, ""))
	}
	for _, line := range req.FailedProducts {
		shipmentNos[line.ShipmentMstNo] = true
		products = append(products, newEstimateProduct(line, req.CompanyNo, 1, line.ErrorMessage))
	}

	boxes := make([]EstimateBox, 0, len(req.Boxes))
	for _, line := range req.Boxes {
		boxSum += line.Amount
		boxes = append(boxes, EstimateBox{
			CompanyNo:       req.CompanyNo,
			CenterNo:        line.CenterNo,
			BoxSpecCd:       line.BoxSpecCd,
			BoxSpecUnitCost: line.UnitPrice,
			BoxQuantity:     line.Quantity,
			TotalAmount:     line.Amount,
		})
	}

	if math.Abs(productSum-req.ProductTotalAmount) > amountTolerance ||
		math.Abs(vinylSum-req.VinylTotalAmount) > amountTolerance ||
		math.Abs(boxSum-req.BoxTotalAmount) > amountTolerance ||
		math.Abs(productSum+vinylSum+boxSum-req.GrandTotalAmount) > amountTolerance {
		return 0, fmt.Errorf("rollup totals do not match line sums (product %.2f vinyl %.2f box %.2f)",
			productSum, vinylSum, boxSum)
	}

	now := time.Now()
	est := &Estimate{
		OrderMstNo:         req.OrderMstNo,
		CompanyNo:          req.CompanyNo,
		EstimateID:         fmt.Sprintf("EST%s-%d", now.Format("20060102150405"), req.OrderMstNo),
		EstimateDate:       now.Format("2006-01-02"),
		ProductTotalAmount: req.ProductTotalAmount,
		VinylTotalAmount:   req.VinylTotalAmount,
		BoxTotalAmount:     req.BoxTotalAmount,
		EstimateTotal:      req.GrandTotalAmount,
		AccountNo1688:      req.AccountNo1688,
		CreatedBy:          req.CreatedBy,
	}

	mstNos := make([]int, 0, len(shipmentNos))
	for no := range shipmentNos {
		mstNos = append(mstNos, no)
	}

	estimateNo, err := l.Store.CreateEstimate(ctx, est, products, boxes, mstNos)
	if err != nil {
		return 0, err
	}
	log.Infof("Estimate %d (%s) created: %d product lines, %d box lines, total %.2f",
		estimateNo, est.EstimateID, len(products), len(boxes), est.EstimateTotal)
	return estimateNo, nil
}

// ConfirmDeposit marks the estimate's deposit as received and moves every
// shipment referenced by its product lines to PAYMENT_COMPLETED, in one
// transaction. The deposit flag is monotonic.
func (l *EstimateLedger) ConfirmDeposit(ctx context.Context, estimateNo int) error {
	est, err := l.Store.GetEstimate(ctx, estimateNo)
	if err != nil {
		return err
	}
	if est.DepositYn == 1 {
		return ErrAlreadyConfirmed
	}

	shipmentNos, err := l.Store.ListEstimateShipmentNos(ctx, estimateNo)
	if err != nil {
		return err
	}
	if len(shipmentNos) == 0 {
		// data integrity problem upstream, not a no-op
		return fmt.Errorf("%w: estimate %d", ErrNoLinkedShipments, estimateNo)
	}

	if err := l.Store.ConfirmDeposit(ctx, estimateNo, shipmentNos); err != nil {
		return err
	}
	log.Infof("Estimate %d deposit confirmed, %d shipments moved to %s",
		estimateNo, len(shipmentNos), StatusPaymentCompleted)
	return nil
}

func newEstimateProduct(line ProductEstimateLine, companyNo, failYn int, remark string) EstimateProduct {
	return EstimateProduct{
		ShipmentMstNo:      sql.NullInt64{Int64: int64(line.ShipmentMstNo), Valid: line.ShipmentMstNo > 0},
		ShipmentDtlNo:      sql.NullInt64{Int64: int64(line.ShipmentDtlNo), Valid: line.ShipmentDtlNo > 0},
		CompanyNo:          companyNo,
		CenterNo:           line.CenterNo,
		SkuID:              line.SkuID,
		SkuName:            line.SkuName,
		Bundle:             line.Bundle,
		PurchaseQuantity:   line.Quantity,
		ProductUnitPrice:   line.UnitPrice,
		ProductTotalAmount: line.ProductAmount,
		VinylSpecCd:        line.VinylSpecCd,
		VinylUnitPrice:     line.VinylUnitPrice,
		VinylTotalAmount:   line.VinylAmount,
		FailYn:             failYn,
		TotalAmount:        line.TotalAmount,
		Remark:             remark,
	}
}
