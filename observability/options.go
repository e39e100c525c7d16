package observability

import (
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
)

type exporterCfg struct {
	interval    time.Duration
	timeout     time.Duration
	writer      io.Writer
	prettyPrint bool
	registerer  promclient.Registerer
	withRuntime bool
}

type ExporterOption func(cfg *exporterCfg)

// WithExporterInterval sets the console push interval.
func WithExporterInterval(interval time.Duration) ExporterOption {
	return func(cfg *exporterCfg) {
		if interval > 0 {
			cfg.interval = interval
		}
	}
}

func WithExporterTimeout(timeout time.Duration) ExporterOption {
	return func(cfg *exporterCfg) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithExporterWriter redirects the console exporter, stdout by default.
func WithExporterWriter(w io.Writer) ExporterOption {
	return func(cfg *exporterCfg) {
		cfg.writer = w
	}
}

func WithExporterPrettyPrint() ExporterOption {
	return func(cfg *exporterCfg) {
		cfg.prettyPrint = true
	}
}

// WithExporterRegisterer registers the prometheus collector on reg
// instead of the prometheus default registerer.
func WithExporterRegisterer(reg promclient.Registerer) ExporterOption {
	return func(cfg *exporterCfg) {
		cfg.registerer = reg
	}
}

// WithExporterRuntimeStats also reports the go runtime metrics
// (goroutines, memory, gc) through the same provider.
func WithExporterRuntimeStats() ExporterOption {
	return func(cfg *exporterCfg) {
		cfg.withRuntime = true
	}
}
