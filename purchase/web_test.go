package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateFilePath(t *testing.T) {
	path, err := estimateFilePath("/tmp/estimates", "ESTIMATE_EST20220909153131-12_20220909153131.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/estimates/2022/9/ESTIMATE_EST20220909153131-12_20220909153131.xlsx", path)
}

func TestEstimateFilePathRejectsBadTimestamp(t *testing.T) {
	_, err := estimateFilePath("/tmp/estimates", "ESTIMATE_notadate.xlsx")
	assert.Error(t, err)

	_, err = estimateFilePath("/tmp/estimates", "plainname.xlsx")
	assert.Error(t, err)
}

func TestStatusForMapsServiceErrors(t *testing.T) {
	assert.Equal(t, 404, statusFor(ErrNotFound))
	assert.Equal(t, 409, statusFor(ErrAlreadyConfirmed))
	assert.Equal(t, 409, statusFor(ErrAlreadyIssued))
	assert.Equal(t, 400, statusFor(ErrMissingIntegrationLink))
	assert.Equal(t, 400, statusFor(ErrEmptyInput))
	assert.Equal(t, 500, statusFor(assert.AnError))
}
