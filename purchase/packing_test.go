package purchase

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub.kr/fulfillment/procure/cjlogistics"
)

func issuerFixture() (*PackingIssuer, *fakeStore, *fakeCarrier) {
	store := newFakeStore()
	store.boxes[1] = &PackingMst{PackingMstNo: 1, BoxName: "1-1", CenterNo: "100003", CenterName: "Incheon 3", BoxSpecCd: "BOX60"}
	store.boxes[2] = &PackingMst{PackingMstNo: 2, BoxName: "1-2", CenterNo: "100003", CenterName: "Incheon 3", BoxSpecCd: "BOX80"}
	carrier := &fakeCarrier{}
	return &PackingIssuer{Store: store, Carrier: carrier}, store, carrier
}

func TestIssueStampsEachBox(t *testing.T) {
	issuer, store, carrier := issuerFixture()

	result, err := issuer.Issue(context.Background(), []int{1, 2})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 2, carrier.issueCalls)
	assert.NotEmpty(t, store.stampedBoxes[1])
	assert.NotEmpty(t, store.stampedBoxes[2])
	assert.NotEqual(t, store.stampedBoxes[1], store.stampedBoxes[2])
}

func TestIssueBlocksReIssuanceLocally(t *testing.T) {
	issuer, store, carrier := issuerFixture()
	store.boxes[1].TrackingNumber = sql.NullString{String: "CJ00000042", Valid: true}

	result, err := issuer.Issue(context.Background(), []int{1})
	require.NoError(t, err)

	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	// the guard fires before any carrier call
	assert.Equal(t, 0, carrier.issueCalls)
	assert.Contains(t, result.Errors[0].Error, "CJ00000042")
}

func TestIssueSecondRunIssuesNothing(t *testing.T) {
	issuer, _, carrier := issuerFixture()

	first, err := issuer.Issue(context.Background(), []int{1, 2})
	require.NoError(t, err)
	require.Equal(t, 2, first.SuccessCount)

	second, err := issuer.Issue(context.Background(), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, second.SuccessCount)
	assert.Equal(t, 2, second.ErrorCount)
	assert.Equal(t, 2, carrier.issueCalls, "carrier must not be called again for issued boxes")
}

func TestIssueBoxesFailIndependently(t *testing.T) {
	issuer, store, carrier := issuerFixture()
	carrier.issueFn = func(box cjlogistics.BoxMeta) (*cjlogistics.IssueResult, error) {
		if box.BoxNo == 1 {
			return &cjlogistics.IssueResult{Success: false, ResultCode: "E", ResultDetail: "invalid center"}, nil
		}
		return &cjlogistics.IssueResult{Success: true, TrackingNumber: "CJ00000077"}, nil
	}

	result, err := issuer.Issue(context.Background(), []int{1, 2})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Empty(t, store.stampedBoxes[1])
	assert.Equal(t, "CJ00000077", store.stampedBoxes[2])
	assert.Equal(t, 1, result.Errors[0].BoxNo)
	assert.Contains(t, result.Errors[0].Error, "invalid center")
}

func TestIssueUnknownBox(t *testing.T) {
	issuer, _, carrier := issuerFixture()

	result, err := issuer.Issue(context.Background(), []int{99})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 0, carrier.issueCalls)
}

func TestIssueStampFailureSurfacesTrackingNumber(t *testing.T) {
	issuer, store, _ := issuerFixture()
	store.stampBoxErr = errors.New("deadlock")

	result, err := issuer.Issue(context.Background(), []int{1})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Contains(t, result.Errors[0].Error, "not recorded locally")
}

func TestIssueEmptySelection(t *testing.T) {
	issuer, _, _ := issuerFixture()
	_, err := issuer.Issue(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
