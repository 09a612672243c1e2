package purchase

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"sellerhub.kr/fulfillment/procure/cjlogistics"
)

// CarrierAPI is the slice of the CJ logistics client the issuer uses.
type CarrierAPI interface {
	IssueTracking(ctx context.Context, box cjlogistics.BoxMeta) (*cjlogistics.IssueResult, error)
}

// IssuedBox is one successfully issued box.
type IssuedBox struct {
	BoxNo          int    `json:"order_shipment_packing_mst_no"`
	BoxName        string `json:"box_name"`
	TrackingNumber string `json:"tracking_number"`
}

// BoxError is one failed box inside an issuance batch.
type BoxError struct {
	BoxNo   int    `json:"order_shipment_packing_mst_no"`
	BoxName string `json:"box_name,omitempty"`
	Error   string `json:"error"`
}

// IssueResult summarizes one issuance batch.
type IssueResult struct {
	SuccessCount int         `json:"success_count"`
	ErrorCount   int         `json:"error_count"`
	Issued       []IssuedBox `json:"issued,omitempty"`
	Errors       []BoxError  `json:"errors,omitempty"`
}

// Message is the operator-facing one-line summary of the batch.
func (r *IssueResult) Message() string {
	return fmt.Sprintf("tracking issuance finished: %d issued, %d failed", r.SuccessCount, r.ErrorCount)
}

// PackingIssuer issues carrier tracking numbers per packing box and fans
// each number out to the box's non-failed packing lines.
type PackingIssuer struct {
	Store   Store
	Carrier CarrierAPI
}

// Issue processes each box independently; successful boxes persist even
// when siblings in the batch fail. Issuance is blocked locally for boxes
// that already carry a tracking number, since the carrier does not dedupe.
func (p *PackingIssuer) Issue(ctx context.Context, boxNos []int) (*IssueResult, error) {
	if len(boxNos) == 0 {
		return nil, fmt.Errorf("%w: no packing boxes selected", ErrEmptyInput)
	}

	result := &IssueResult{}
	for _, boxNo := range boxNos {
		issued, err := p.issueOne(ctx, boxNo)
		if err != nil {
			result.ErrorCount++
			boxErr := BoxError{BoxNo: boxNo, Error: err.Error()}
			if issued != nil {
				boxErr.BoxName = issued.BoxName
			}
			result.Errors = append(result.Errors, boxErr)
			continue
		}
		result.SuccessCount++
		result.Issued = append(result.Issued, *issued)
	}
	log.Info(result.Message())
	return result, nil
}

func (p *PackingIssuer) issueOne(ctx context.Context, boxNo int) (*IssuedBox, error) {
	box, err := p.Store.GetPackingBox(ctx, boxNo)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: packing box %d", ErrNotFound, boxNo)
	}
	if err != nil {
		return nil, err
	}

	// re-issuance must be blocked before any carrier call
	if box.TrackingNumber.Valid && box.TrackingNumber.String != "" {
		return &IssuedBox{BoxNo: boxNo, BoxName: box.BoxName},
			fmt.Errorf("%w: box %s already has tracking number %s", ErrAlreadyIssued, box.BoxName, box.TrackingNumber.String)
	}

	res, err := p.Carrier.IssueTracking(ctx, cjlogistics.BoxMeta{
		BoxNo:       box.PackingMstNo,
		BoxName:     box.BoxName,
		CenterNo:    box.CenterNo,
		CenterName:  box.CenterName,
		BoxSpecCode: box.BoxSpecCd,
	})
	if err != nil {
		log.Errorf("Issue tracking for box %d (%s) failed: %v", boxNo, box.BoxName, err)
		return &IssuedBox{BoxNo: boxNo, BoxName: box.BoxName}, err
	}
	if !res.Success {
		log.Errorf("Issue tracking for box %d (%s) rejected: [%s] %s",
			boxNo, box.BoxName, res.ResultCode, res.ResultDetail)
		return &IssuedBox{BoxNo: boxNo, BoxName: box.BoxName},
			fmt.Errorf("carrier rejected issuance: [%s] %s", res.ResultCode, res.ResultDetail)
	}

	if err := p.Store.StampBoxTracking(ctx, boxNo, res.TrackingNumber); err != nil {
		log.Errorf("RECONCILE REQUIRED: tracking %s issued for box %d but local stamp failed: %v",
			res.TrackingNumber, boxNo, err)
		return &IssuedBox{BoxNo: boxNo, BoxName: box.BoxName},
			fmt.Errorf("tracking %s issued but not recorded locally: %v", res.TrackingNumber, err)
	}

	log.Infof("Box %d (%s) issued tracking number %s", boxNo, box.BoxName, res.TrackingNumber)
	return &IssuedBox{BoxNo: boxNo, BoxName: box.BoxName, TrackingNumber: res.TrackingNumber}, nil
}
