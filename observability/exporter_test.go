package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/tree"
)

func TestInitMetricsExporter_Unknown(t *testing.T) {
	shutdown, err := InitMetricsExporter(MetricsExporterType(100))
	require.ErrorIs(t, err, ErrUnknownMetricsExporter)
	require.Nil(t, shutdown)
}

func TestInitMetricsExporter(t *testing.T) {
	t.Run("console", func(tt *testing.T) {
		buf := &bytes.Buffer{}
		shutdown, err := InitMetricsExporter(
			ConsoleMetricsExporter,
			WithExporterWriter(buf),
			WithExporterInterval(time.Hour),
			WithExporterTimeout(time.Second),
		)
		require.NoError(tt, err)

		avl := tree.NewAVLTree[int, int](tree.WithTreeStats("console"))
		for i := 0; i < 16; i++ {
			require.NoError(tt, avl.Insert(i, i))
		}
		// Shutdown exports the last collection.
		require.NoError(tt, shutdown(context.Background()))
		require.Contains(tt, buf.String(), "xtree/avltree/console")
		require.Contains(tt, buf.String(), "xtree.avltree.node.count")
		require.Contains(tt, buf.String(), "xtree.avltree.rotation.count")
	})
	t.Run("prometheus", func(tt *testing.T) {
		reg := promclient.NewRegistry()
		shutdown, err := InitMetricsExporter(
			PrometheusMetricsExporter,
			WithExporterRegisterer(reg),
			WithExporterRuntimeStats(),
		)
		require.NoError(tt, err)
		defer func() {
			require.NoError(tt, shutdown(context.Background()))
		}()

		bst := tree.NewBSTree[int, int](tree.WithTreeStats("prometheus"))
		for i := 0; i < 8; i++ {
			require.NoError(tt, bst.Insert(i, i))
		}
		_, ok := bst.Remove(3)
		require.True(tt, ok)

		families, err := reg.Gather()
		require.NoError(tt, err)
		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}
		found := false
		for _, name := range names {
			if strings.HasPrefix(name, "xtree_bstree_node_count") {
				found = true
				break
			}
		}
		require.Truef(tt, found, "metric families: %v", names)
	})
}
