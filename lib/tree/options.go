package tree

import (
	"github.com/benz9527/xtree/lib/xlog"
)

type treeCfg struct {
	isDesc         bool
	isRmBorrowSucc bool
	capacity       int
	logger         xlog.XLogger
	statsName      *string
}

type TreeOption func(cfg *treeCfg)

func newTreeCfg(opts ...TreeOption) *treeCfg {
	cfg := &treeCfg{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(cfg)
	}
	return cfg
}

// WithTreeDesc orders the keys descending.
func WithTreeDesc() TreeOption {
	return func(cfg *treeCfg) {
		cfg.isDesc = true
	}
}

// WithTreeRemoveBorrowSucc removes a node with two children by
// borrowing its successor position instead of its predecessor.
func WithTreeRemoveBorrowSucc() TreeOption {
	return func(cfg *treeCfg) {
		cfg.isRmBorrowSucc = true
	}
}

// WithTreeCapacity preallocates the node arena.
func WithTreeCapacity(capacity int) TreeOption {
	return func(cfg *treeCfg) {
		cfg.capacity = capacity
	}
}

func WithTreeLogger(logger xlog.XLogger) TreeOption {
	return func(cfg *treeCfg) {
		cfg.logger = logger
	}
}

// WithTreeStats records the tree metrics on the global otel meter provider.
func WithTreeStats(name string) TreeOption {
	return func(cfg *treeCfg) {
		cfg.statsName = &name
	}
}
