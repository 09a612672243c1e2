package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub.kr/fulfillment/procure/alibaba"
)

func aggregatorFixture(known ...string) (*PaymentLinkAggregator, *fakeStore, *fakeMarket) {
	store := newFakeStore()
	for _, no := range known {
		store.knownOrders[no] = true
	}
	market := &fakeMarket{}
	return &PaymentLinkAggregator{Store: store, Market: market}, store, market
}

func TestAggregateSingleCallForBatch(t *testing.T) {
	agg, _, market := aggregatorFixture("PO1", "PO2", "PO3", "PO4", "PO5")

	result, err := agg.Aggregate(context.Background(), []string{"PO1", "PO2", "PO3", "PO4", "PO5"}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, market.payCalls)
	assert.Len(t, market.payBatches[0], 5)
	assert.Equal(t, "https://pay.example/batch", result.PayURL)
	assert.Len(t, result.OrderNumbers, 5)
}

func TestAggregateDropsUnknownOrderNumbers(t *testing.T) {
	agg, _, market := aggregatorFixture("PO1", "PO3")

	result, err := agg.Aggregate(context.Background(), []string{"PO1", "PO2", "PO3"}, 1)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"PO1", "PO3"}, result.OrderNumbers)
	assert.ElementsMatch(t, []string{"PO1", "PO3"}, market.payBatches[0])
}

func TestAggregateNoValidOrders(t *testing.T) {
	agg, _, market := aggregatorFixture()

	_, err := agg.Aggregate(context.Background(), []string{"PO1", "PO2"}, 1)
	assert.ErrorIs(t, err, ErrNoValidOrders)
	assert.Equal(t, 0, market.payCalls)

	_, err = agg.Aggregate(context.Background(), nil, 1)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAggregateUpstreamRejection(t *testing.T) {
	agg, _, market := aggregatorFixture("PO1")
	market.payFn = func([]string, int) (*alibaba.GroupPayResult, error) {
		return &alibaba.GroupPayResult{Success: false, ErrorCode: "403", ErrorMessage: "orders span sellers"}, nil
	}

	_, err := agg.Aggregate(context.Background(), []string{"PO1"}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders span sellers")
}

func TestAggregateAndStamp(t *testing.T) {
	agg, store, _ := aggregatorFixture("PO1", "PO2")

	result, err := agg.AggregateAndStamp(context.Background(), []string{"PO1", "PO2"}, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.UpdatedCount)
	assert.Equal(t, result.PayURL, store.stampedPayURLs["PO1"])
	assert.Equal(t, result.PayURL, store.stampedPayURLs["PO2"])
}

func TestAggregateAndStampIsRepeatable(t *testing.T) {
	agg, store, market := aggregatorFixture("PO1")

	_, err := agg.AggregateAndStamp(context.Background(), []string{"PO1"}, 1)
	require.NoError(t, err)
	result, err := agg.AggregateAndStamp(context.Background(), []string{"PO1"}, 1)
	require.NoError(t, err)

	// re-running regenerates the link and overwrites the stamp
	assert.Equal(t, 2, market.payCalls)
	assert.Equal(t, result.PayURL, store.stampedPayURLs["PO1"])
}
