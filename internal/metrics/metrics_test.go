package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.UsersCreatedTotal.Inc()
	m.RequestsTotal.WithLabelValues("GET", "/api/users", "200").Inc()
	m.UserCacheLookupsTotal.WithLabelValues("hit").Add(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.UsersCreatedTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.UserCacheLookupsTotal.WithLabelValues("hit")))

	count, err := testutil.GatherAndCount(reg, "http_requests_total", "users_created_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNew_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
