package prometheus

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fde"
)

// counterValue returns the value of the counter sample of family name whose
// labels include all of want.
func counterValue(t *testing.T, reg *prom.Registry, name string, want map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestCollectorWithEncoder(t *testing.T) {
	reg := prom.NewRegistry()
	mc, err := NewCollector(reg, WithConstLabels(prom.Labels{"space": "test"}))
	require.NoError(t, err)

	cfg := fde.DefaultConfig(2)
	cfg.NumSimHashProjections = 1

	enc, err := fde.New(cfg, fde.WithMetricsCollector(mc))
	require.NoError(t, err)

	ctx := t.Context()
	_, err = enc.EncodeQuery(ctx, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	_, err = enc.EncodeDocument(ctx, []float32{1, 2})
	require.NoError(t, err)
	_, err = enc.EncodeQuery(ctx, []float32{1})
	require.Error(t, err)
	_, err = enc.EncodeBatch(ctx, fde.EncodingAverage, [][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, reg, "fde_encodes_total", map[string]string{"kind": "sum", "status": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "fde_encodes_total", map[string]string{"kind": "sum", "status": "error"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "fde_encodes_total", map[string]string{"kind": "average", "status": "success"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "fde_points_encoded_total", map[string]string{"kind": "sum", "space": "test"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "fde_batches_total", map[string]string{"kind": "average", "status": "success"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "fde_batch_clouds_total", map[string]string{"kind": "average"}))
}

func TestCollectorReusesRegisteredMetrics(t *testing.T) {
	reg := prom.NewRegistry()

	a, err := NewCollector(reg, WithNamespace("muvera"))
	require.NoError(t, err)
	b, err := NewCollector(reg, WithNamespace("muvera"))
	require.NoError(t, err)

	a.RecordBatch(fde.EncodingSum, 3, 0, nil)
	b.RecordBatch(fde.EncodingSum, 4, 0, nil)

	assert.Equal(t, 7.0, counterValue(t, reg, "muvera_batch_clouds_total", map[string]string{"kind": "sum"}))
}
