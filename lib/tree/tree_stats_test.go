package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectScope(t *testing.T, reader metric.Reader, scope string) map[string]metricdata.Aggregation {
	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	res := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != scope {
			continue
		}
		for _, m := range sm.Metrics {
			res[m.Name] = m.Data
		}
	}
	return res
}

func sumByAttr(t *testing.T, data metricdata.Aggregation, key, val string) int64 {
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok)
	total := int64(0)
	for _, dp := range sum.DataPoints {
		if key == "" {
			total += dp.Value
			continue
		}
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == val {
			total += dp.Value
		}
	}
	return total
}

func TestTreeStats(t *testing.T) {
	reader := metric.NewManualReader()
	mp := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(mp)
	defer func() {
		require.NoError(t, mp.Shutdown(context.Background()))
	}()

	tree := NewAVLTree[int, int](WithTreeStats("stats"))
	for _, key := range []int{1, 2, 3} {
		require.NoError(t, tree.Insert(key, key))
	}
	// Overwrite is not counted.
	require.NoError(t, tree.Insert(3, 30))
	_, ok := tree.Remove(1)
	require.True(t, ok)

	data := collectScope(t, reader, "xtree/avltree/stats")
	require.Equal(t, int64(2), sumByAttr(t, data["xtree.avltree.node.count"], "", ""))
	require.Equal(t, int64(1), sumByAttr(t, data["xtree.avltree.rotation.count"], "xtree.rotate.direction", Left.String()))
	require.Equal(t, int64(0), sumByAttr(t, data["xtree.avltree.rotation.count"], "xtree.rotate.direction", Right.String()))

	hist, ok := data["xtree.avltree.rebalance.walk"].(metricdata.Histogram[int64])
	require.True(t, ok)
	walks := map[string]metricdata.HistogramDataPoint[int64]{}
	for _, dp := range hist.DataPoints {
		v, ok := dp.Attributes.Value("xtree.op")
		require.True(t, ok)
		walks[v.AsString()] = dp
	}
	// 1 is the root, 2 walks one step, 3 walks two steps and rotates.
	require.Equal(t, uint64(3), walks[opInsert].Count)
	require.Equal(t, int64(3), walks[opInsert].Sum)
	require.Equal(t, uint64(1), walks[opRemove].Count)
	require.Equal(t, int64(1), walks[opRemove].Sum)

	tree.Clear()
	data = collectScope(t, reader, "xtree/avltree/stats")
	require.Equal(t, int64(0), sumByAttr(t, data["xtree.avltree.node.count"], "", ""))

	bst := NewBSTree[int, int](WithTreeStats(""))
	for i := 0; i < 5; i++ {
		require.NoError(t, bst.Insert(i, i))
	}
	data = collectScope(t, reader, "xtree/bstree/default")
	require.Equal(t, int64(5), sumByAttr(t, data["xtree.bstree.node.count"], "", ""))
}

func TestTreeStats_Nil(t *testing.T) {
	var stats *treeStats
	require.NotPanics(t, func() {
		stats.RecordNodeCount(1)
		stats.IncreaseRotationCount(Left)
		stats.RecordRebalanceWalk(opInsert, 1)
	})
}
