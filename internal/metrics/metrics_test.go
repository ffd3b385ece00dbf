// internal/metrics/metrics_test.go
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOrderCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(OrdersCreatedTotal)
	OrdersCreatedTotal.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(OrdersCreatedTotal))

	before = testutil.ToFloat64(OrdersPaidTotal)
	OrdersPaidTotal.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(OrdersPaidTotal))

	before = testutil.ToFloat64(OrdersDeliveredTotal)
	OrdersDeliveredTotal.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(OrdersDeliveredTotal))
}

func TestHTTPCollectorsAcceptLabels(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "/api/products", "200").Inc()
	HTTPRequestDuration.WithLabelValues("GET", "/api/products").Observe(0.01)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/products", "200"))
	assert.GreaterOrEqual(t, count, 1.0)
}
