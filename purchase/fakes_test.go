package purchase

import (
	"context"
	"fmt"

	"sellerhub.kr/fulfillment/procure/alibaba"
	"sellerhub.kr/fulfillment/procure/cjlogistics"
)

// fakeStore is an in-memory Store with per-method call counters and
// overridable failure hooks.
type fakeStore struct {
	candidates []OrderCandidate

	estimates        map[int]*Estimate
	estimateShipNos  map[int][]int
	nextEstimateNo   int
	createdEstimates []*Estimate
	createdProducts  [][]EstimateProduct
	createdBoxes     [][]EstimateBox

	outstandingOrders []string
	knownOrders       map[string]bool
	orderAccounts     map[string]int
	appliedUpdates    [][]TrackingUpdate

	boxes          map[int]*PackingMst
	stampedBoxes   map[int]string
	stampedOrders  map[string][]int
	stampedPayURLs map[string]string

	stampOrderErr    error
	stampBoxErr      error
	confirmErr       error
	applyErr         error
	stampPayErr      error
	confirmDeposited []int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		estimates:       map[int]*Estimate{},
		estimateShipNos: map[int][]int{},
		nextEstimateNo:  100,
		knownOrders:     map[string]bool{},
		orderAccounts:   map[string]int{},
		boxes:           map[int]*PackingMst{},
		stampedBoxes:    map[int]string{},
		stampedOrders:   map[string][]int{},
		stampedPayURLs:  map[string]string{},
	}
}

func (s *fakeStore) ListOrderCandidates(_ context.Context, dtlNos []int) ([]OrderCandidate, error) {
	want := make(map[int]bool, len(dtlNos))
	for _, no := range dtlNos {
		want[no] = true
	}
	var out []OrderCandidate
	for _, c := range s.candidates {
		if want[c.ShipmentDtlNo] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) StampOrderNumber(_ context.Context, orderNumber string, dtlNos []int) error {
	if s.stampOrderErr != nil {
		return s.stampOrderErr
	}
	s.stampedOrders[orderNumber] = append(s.stampedOrders[orderNumber], dtlNos...)
	return nil
}

func (s *fakeStore) CreateEstimate(_ context.Context, est *Estimate, products []EstimateProduct, boxes []EstimateBox, shipmentMstNos []int) (int, error) {
	s.nextEstimateNo++
	est.EstimateNo = s.nextEstimateNo
	s.estimates[est.EstimateNo] = est
	s.estimateShipNos[est.EstimateNo] = shipmentMstNos
	s.createdEstimates = append(s.createdEstimates, est)
	s.createdProducts = append(s.createdProducts, products)
	s.createdBoxes = append(s.createdBoxes, boxes)
	return est.EstimateNo, nil
}

func (s *fakeStore) GetEstimate(_ context.Context, estimateNo int) (*Estimate, error) {
	est, ok := s.estimates[estimateNo]
	if !ok {
		return nil, fmt.Errorf("%w: estimate %d", ErrNotFound, estimateNo)
	}
	return est, nil
}

func (s *fakeStore) ListEstimateProducts(_ context.Context, estimateNo int) ([]EstimateProduct, error) {
	for i, est := range s.createdEstimates {
		if est.EstimateNo == estimateNo {
			return s.createdProducts[i], nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListEstimateBoxes(_ context.Context, estimateNo int) ([]EstimateBox, error) {
	for i, est := range s.createdEstimates {
		if est.EstimateNo == estimateNo {
			return s.createdBoxes[i], nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListEstimateShipmentNos(_ context.Context, estimateNo int) ([]int, error) {
	return s.estimateShipNos[estimateNo], nil
}

func (s *fakeStore) ConfirmDeposit(_ context.Context, estimateNo int, _ []int) error {
	if s.confirmErr != nil {
		return s.confirmErr
	}
	est, ok := s.estimates[estimateNo]
	if !ok {
		return fmt.Errorf("%w: estimate %d", ErrNotFound, estimateNo)
	}
	if est.DepositYn == 1 {
		return ErrAlreadyConfirmed
	}
	est.DepositYn = 1
	s.confirmDeposited = append(s.confirmDeposited, estimateNo)
	return nil
}

func (s *fakeStore) ListOutstandingOrderNumbers(_ context.Context) ([]string, error) {
	return s.outstandingOrders, nil
}

func (s *fakeStore) OrderNumberExists(_ context.Context, orderNumber string) (bool, error) {
	return s.knownOrders[orderNumber], nil
}

func (s *fakeStore) EstimateAccountForOrder(_ context.Context, orderNumber string) (int, error) {
	return s.orderAccounts[orderNumber], nil
}

func (s *fakeStore) ApplyTrackingUpdates(_ context.Context, updates []TrackingUpdate) error {
	if s.applyErr != nil {
		return s.applyErr
	}
	s.appliedUpdates = append(s.appliedUpdates, updates)
	return nil
}

func (s *fakeStore) GetPackingBox(_ context.Context, boxNo int) (*PackingMst, error) {
	box, ok := s.boxes[boxNo]
	if !ok {
		return nil, ErrNotFound
	}
	return box, nil
}

func (s *fakeStore) StampBoxTracking(_ context.Context, boxNo int, trackingNumber string) error {
	if s.stampBoxErr != nil {
		return s.stampBoxErr
	}
	s.stampedBoxes[boxNo] = trackingNumber
	if box, ok := s.boxes[boxNo]; ok {
		box.TrackingNumber.String = trackingNumber
		box.TrackingNumber.Valid = true
	}
	return nil
}

func (s *fakeStore) FilterKnownOrderNumbers(_ context.Context, orderNumbers []string) ([]string, error) {
	var out []string
	for _, no := range orderNumbers {
		if s.knownOrders[no] {
			out = append(out, no)
		}
	}
	return out, nil
}

func (s *fakeStore) StampPayURL(_ context.Context, orderNumbers []string, payURL string) (int64, error) {
	if s.stampPayErr != nil {
		return 0, s.stampPayErr
	}
	for _, no := range orderNumbers {
		s.stampedPayURLs[no] = payURL
	}
	return int64(len(orderNumbers)), nil
}

// fakeMarket counts calls and answers from canned responses keyed by
// out-order id or order number.
type fakeMarket struct {
	createCalls    int
	createRequests []alibaba.CreateOrderRequest
	createFn       func(req alibaba.CreateOrderRequest) (*alibaba.CreateOrderResult, error)

	logisticsCalls int
	logisticsFn    func(orderNumber string, accountNo int) (*alibaba.LogisticsResult, error)

	payCalls   int
	payBatches [][]string
	payFn      func(orderNumbers []string, accountNo int) (*alibaba.GroupPayResult, error)
}

func (m *fakeMarket) CreateOrder(_ context.Context, req alibaba.CreateOrderRequest) (*alibaba.CreateOrderResult, error) {
	m.createCalls++
	m.createRequests = append(m.createRequests, req)
	if m.createFn != nil {
		return m.createFn(req)
	}
	return &alibaba.CreateOrderResult{Success: true, OrderID: "PO-" + req.OutOrderID}, nil
}

func (m *fakeMarket) LogisticsInfo(_ context.Context, orderNumber string, accountNo int) (*alibaba.LogisticsResult, error) {
	m.logisticsCalls++
	if m.logisticsFn != nil {
		return m.logisticsFn(orderNumber, accountNo)
	}
	return &alibaba.LogisticsResult{Success: true}, nil
}

func (m *fakeMarket) GroupPayURL(_ context.Context, orderNumbers []string, accountNo int) (*alibaba.GroupPayResult, error) {
	m.payCalls++
	m.payBatches = append(m.payBatches, orderNumbers)
	if m.payFn != nil {
		return m.payFn(orderNumbers, accountNo)
	}
	return &alibaba.GroupPayResult{Success: true, PayURL: "https://pay.example/batch"}, nil
}

// fakeCarrier hands out sequential tracking numbers.
type fakeCarrier struct {
	issueCalls int
	issueFn    func(box cjlogistics.BoxMeta) (*cjlogistics.IssueResult, error)
}

func (c *fakeCarrier) IssueTracking(_ context.Context, box cjlogistics.BoxMeta) (*cjlogistics.IssueResult, error) {
	c.issueCalls++
	if c.issueFn != nil {
		return c.issueFn(box)
	}
	return &cjlogistics.IssueResult{
		Success:        true,
		TrackingNumber: fmt.Sprintf("CJ%08d", c.issueCalls),
		ResultCode:     cjlogistics.ResultSuccess,
	}, nil
}
