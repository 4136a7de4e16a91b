package metrics_test

import (
	"strings"
	"testing"

	"tokoshop/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New("storefront")

	m.ObserveRequest("GET", "/shop/products", 200, 0.01)
	m.ObserveRequest("GET", "/shop/products", 200, 0.02)
	m.ObserveRequest("POST", "/shop/contact", 400, 0.01)
	m.FetchFailed()
	m.StaleLoad()
	m.StaleLoad()
	m.ContactMessage("stored")

	series, err := testutil.GatherAndCount(m.Registry(), "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)

	series, err = testutil.GatherAndCount(m.Registry(), "http_status_category_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)

	expected := `
# HELP storefront_stale_loads_total Listing loads discarded because the same shopper started a newer load
# TYPE storefront_stale_loads_total counter
storefront_stale_loads_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "storefront_stale_loads_total"))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New("a")
		metrics.New("b")
	})
}
