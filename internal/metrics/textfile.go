// Package metrics exports the outcome of a split in the Prometheus text
// exposition format, for pickup by the node_exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/lacquerai/jsonl-split/internal/engine"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the gauges describing one split run.
type Recorder struct {
	registry *prometheus.Registry

	subsetRecords *prometheus.GaugeVec
	inputRecords  prometheus.Gauge
	ratio         *prometheus.GaugeVec
	duration      prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

// NewRecorder creates a recorder backed by its own registry, so nothing leaks
// into prometheus.DefaultRegisterer.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		subsetRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "jsonl_split_records",
			Help: "Number of records written to each subset",
		}, []string{"subset"}),
		inputRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jsonl_split_input_records",
			Help: "Number of records read from the input file",
		}),
		ratio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "jsonl_split_ratio",
			Help: "Requested split proportion per subset",
		}, []string{"subset"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jsonl_split_duration_seconds",
			Help: "Wall-clock duration of the split",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jsonl_split_last_success_timestamp_seconds",
			Help: "Unix time at which the last successful split finished",
		}),
	}

	r.registry.MustRegister(r.subsetRecords, r.inputRecords, r.ratio, r.duration, r.lastSuccess)
	return r
}

// Observe records the outcome of result.
func (r *Recorder) Observe(result *engine.Result) {
	for _, s := range result.Subsets {
		r.subsetRecords.WithLabelValues(string(s.Subset)).Set(float64(s.Records))
	}
	r.inputRecords.Set(float64(result.TotalRecords))
	r.ratio.WithLabelValues("train").Set(result.Ratios.Train)
	r.ratio.WithLabelValues("valid").Set(result.Ratios.Valid)
	r.ratio.WithLabelValues("test").Set(result.Ratios.Test())
	r.duration.Set(result.Duration.Seconds())
	if !result.EndTime.IsZero() {
		r.lastSuccess.Set(float64(result.EndTime.Unix()))
	}
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all gauges to path. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
