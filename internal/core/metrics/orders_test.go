package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMetrics_ExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.ObserveCreated(3)
	m.ObserveCreated(1)
	m.IncTransition("pending", "preparing")
	m.IncDeleted()
	m.IncFailure("create", "VALIDATION_ERROR")
	m.IncFailure("", "")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	created, err := fetchCounter(mfs, "orders_created_total", nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, created)

	transitions, err := fetchCounter(mfs, "order_status_transitions_total", map[string]string{"from": "pending", "to": "preparing"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, transitions)

	deleted, err := fetchCounter(mfs, "orders_deleted_total", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, deleted)

	failures, err := fetchCounter(mfs, "order_operation_failures_total", map[string]string{"operation": "create", "code": "VALIDATION_ERROR"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, failures)

	unknown, err := fetchCounter(mfs, "order_operation_failures_total", map[string]string{"operation": "unknown", "code": "unknown"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, unknown)

	mf := findMetricFamily(mfs, "order_items_per_order")
	require.NotNil(t, mf)
	hist := mf.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(2), hist.GetSampleCount())
	assert.Equal(t, 4.0, hist.GetSampleSum())
}

func TestOrderMetrics_NilSafe(t *testing.T) {
	var m *OrderMetrics
	assert.NotPanics(t, func() {
		m.ObserveCreated(1)
		m.IncTransition("a", "b")
		m.IncDeleted()
		m.IncFailure("x", "y")
	})

	noop := NewOrderMetrics(nil)
	assert.NotPanics(t, func() {
		noop.ObserveCreated(1)
		noop.IncDeleted()
	})
}

func fetchCounter(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
