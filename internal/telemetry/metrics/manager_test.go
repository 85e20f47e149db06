package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	require.NotNil(t, m)

	m.CounterContactSubmissions.WithLabelValues(ContactResultAccepted).Inc()
	m.CounterContactSubmissions.WithLabelValues(ContactResultRejected).Add(2)
	m.CounterContentCacheHits.Inc()
	m.CounterRequests.WithLabelValues("GET", "200").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterContactSubmissions.WithLabelValues(ContactResultAccepted)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterContactSubmissions.WithLabelValues(ContactResultRejected)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CounterContactSubmissions.WithLabelValues(ContactResultFailed)))

	count, err := testutil.GatherAndCount(reg,
		"backend_test_server_contact_submissions",
		"backend_test_server_content_cache_hits",
		"backend_test_server_request",
	)
	require.NoError(t, err)
	// 3 contact series (failed touched above) + 1 cache hits + 1 request
	assert.Equal(t, 5, count)
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	require.NotNil(t, reg)

	m := NewManager("backend", "main", reg)
	m.GaugeLifeSignal.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["backend_main_life_signal"])
	assert.True(t, names["go_goroutines"])
}
