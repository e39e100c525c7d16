package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "xtree"

	opInsert = "insert"
	opRemove = "remove"
)

type treeStats struct {
	nodeCount     metric.Int64UpDownCounter
	rotationCount metric.Int64Counter
	rebalanceWalk metric.Int64Histogram
	leftAttrs     metric.MeasurementOption
	rightAttrs    metric.MeasurementOption
	insertAttrs   metric.MeasurementOption
	removeAttrs   metric.MeasurementOption
}

func (stats *treeStats) RecordNodeCount(delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.nodeCount.Add(context.Background(), delta)
}

func (stats *treeStats) IncreaseRotationCount(dir Direction) {
	if stats == nil {
		return
	}
	switch dir {
	case Left:
		stats.rotationCount.Add(context.Background(), 1, stats.leftAttrs)
	case Right:
		stats.rotationCount.Add(context.Background(), 1, stats.rightAttrs)
	default:
	}
}

// RecordRebalanceWalk records the number of ancestors visited by a
// rebalancing walk.
func (stats *treeStats) RecordRebalanceWalk(op string, steps int64) {
	if stats == nil {
		return
	}
	switch op {
	case opInsert:
		stats.rebalanceWalk.Record(context.Background(), steps, stats.insertAttrs)
	case opRemove:
		stats.rebalanceWalk.Record(context.Background(), steps, stats.removeAttrs)
	default:
	}
}

func newTreeStats(component, name string) *treeStats {
	builder := &strings.Builder{}
	builder.WriteString(TreeStatsName)
	builder.WriteString("/")
	builder.WriteString(component)
	builder.WriteString("/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	meterName := builder.String()
	prefix := fmt.Sprintf("%s.%s", TreeStatsName, component)

	return &treeStats{
		nodeCount: lo.Must[metric.Int64UpDownCounter](otel.Meter(meterName).
			Int64UpDownCounter(
				prefix+".node.count",
				metric.WithDescription("The number of nodes in the tree."),
			),
		),
		rotationCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				prefix+".rotation.count",
				metric.WithDescription("The number of single rotations performed by the tree."),
			),
		),
		rebalanceWalk: lo.Must[metric.Int64Histogram](otel.Meter(meterName).
			Int64Histogram(
				prefix+".rebalance.walk",
				metric.WithDescription("The number of ancestors visited by a rebalancing walk."),
			),
		),
		leftAttrs:   metric.WithAttributeSet(attribute.NewSet(attribute.String("xtree.rotate.direction", Left.String()))),
		rightAttrs:  metric.WithAttributeSet(attribute.NewSet(attribute.String("xtree.rotate.direction", Right.String()))),
		insertAttrs: metric.WithAttributeSet(attribute.NewSet(attribute.String("xtree.op", opInsert))),
		removeAttrs: metric.WithAttributeSet(attribute.NewSet(attribute.String("xtree.op", opRemove))),
	}
}
