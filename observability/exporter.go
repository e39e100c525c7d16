package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"errors"
	"time"

	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type MetricsExporterType uint8

const (
	ConsoleMetricsExporter MetricsExporterType = iota
	PrometheusMetricsExporter
)

var ErrUnknownMetricsExporter = errors.New("[observability] unknown metrics exporter type")

// InitMetricsExporter installs a global meter provider backed by the
// exporter. The trees created with stats afterwards report to it.
// The returned callback flushes and shuts the provider down.
func InitMetricsExporter(typ MetricsExporterType, opts ...ExporterOption) (func(ctx context.Context) error, error) {
	cfg := &exporterCfg{
		interval: 10 * time.Second,
		timeout:  5 * time.Second,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(cfg)
	}

	var (
		mp  *metric.MeterProvider
		err error
	)
	switch typ {
	case ConsoleMetricsExporter:
		mp, err = newConsoleMeterProvider(cfg)
	case PrometheusMetricsExporter:
		mp, err = newPrometheusMeterProvider(cfg)
	default:
		return nil, ErrUnknownMetricsExporter
	}
	if err != nil {
		return nil, err
	}
	if cfg.withRuntime {
		if err = otelruntime.Start(otelruntime.WithMeterProvider(mp)); err != nil {
			_ = mp.Shutdown(context.Background())
			return nil, err
		}
	}
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// Serves for test/dev environment.
func newConsoleMeterProvider(cfg *exporterCfg) (*metric.MeterProvider, error) {
	stdOpts := make([]stdoutmetric.Option, 0, 2)
	if cfg.writer != nil {
		stdOpts = append(stdOpts, stdoutmetric.WithWriter(cfg.writer))
	}
	if cfg.prettyPrint {
		stdOpts = append(stdOpts, stdoutmetric.WithPrettyPrint())
	}
	exporter, err := stdoutmetric.New(stdOpts...)
	if err != nil {
		return nil, err
	}
	return metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(cfg.interval),
		metric.WithTimeout(cfg.timeout),
	))), nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
func newPrometheusMeterProvider(cfg *exporterCfg) (*metric.MeterProvider, error) {
	promOpts := make([]prometheus.Option, 0, 1)
	if cfg.registerer != nil {
		promOpts = append(promOpts, prometheus.WithRegisterer(cfg.registerer))
	}
	exporter, err := prometheus.New(promOpts...)
	if err != nil {
		return nil, err
	}
	return metric.NewMeterProvider(metric.WithReader(exporter)), nil
}
