package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/gdiff/pkg/buildinfo"
	"github.com/matzehuels/gdiff/pkg/observability"
)

// promHooks records pipeline events on a private registry. The registry is
// written once at exit in the node_exporter textfile format.
type promHooks struct {
	registry *prometheus.Registry

	loads         *prometheus.CounterVec
	loadDuration  prometheus.Histogram
	nodesLoaded   prometheus.Counter
	runs          *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	nodes         *prometheus.CounterVec
	edges         *prometheus.CounterVec
	warnings      prometheus.Counter
	writes        *prometheus.CounterVec
	writeDuration prometheus.Histogram
}

var _ observability.PipelineHooks = (*promHooks)(nil)

var durationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

func newPromHooks() *promHooks {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	f.NewGauge(prometheus.GaugeOpts{
		Name:        "gdiff_build_info",
		Help:        "Build information of the gdiff binary.",
		ConstLabels: prometheus.Labels{"version": buildinfo.Version, "commit": buildinfo.ShortCommit()},
	}).Set(1)

	return &promHooks{
		registry: reg,
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdiff_documents_loaded_total",
			Help: "Documents read, labelled by status.",
		}, []string{"status"}),
		loadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gdiff_load_duration_seconds",
			Help:    "Time to read and validate one document.",
			Buckets: durationBuckets,
		}),
		nodesLoaded: f.NewCounter(prometheus.CounterOpts{
			Name: "gdiff_nodes_loaded_total",
			Help: "Nodes in all documents read.",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdiff_runs_total",
			Help: "Engine runs, labelled by mode and status.",
		}, []string{"mode", "status"}),
		runDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gdiff_run_duration_seconds",
			Help:    "Engine run latency by mode.",
			Buckets: durationBuckets,
		}, []string{"mode"}),
		nodes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdiff_nodes_painted_total",
			Help: "Nodes painted by the engine, labelled by provenance.",
		}, []string{"provenance"}),
		edges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdiff_edges_merged_total",
			Help: "Edges of the other document, labelled added or deduplicated.",
		}, []string{"outcome"}),
		warnings: f.NewCounter(prometheus.CounterOpts{
			Name: "gdiff_ambiguity_warnings_total",
			Help: "Ambiguous label paths resolved to their first match.",
		}),
		writes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gdiff_outputs_written_total",
			Help: "Output files, labelled by status.",
		}, []string{"status"}),
		writeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gdiff_write_duration_seconds",
			Help:    "Time to write one output file.",
			Buckets: durationBuckets,
		}),
	}
}

func (h *promHooks) OnLoadStart(context.Context, string) {}

func (h *promHooks) OnLoadComplete(_ context.Context, _ string, nodeCount int, d time.Duration, err error) {
	h.loads.WithLabelValues(status(err)).Inc()
	h.loadDuration.Observe(d.Seconds())
	h.nodesLoaded.Add(float64(nodeCount))
}

func (h *promHooks) OnRunStart(context.Context, string) {}

func (h *promHooks) OnRunComplete(_ context.Context, mode string, c observability.RunCounts, d time.Duration, err error) {
	h.runs.WithLabelValues(mode, status(err)).Inc()
	h.runDuration.WithLabelValues(mode).Observe(d.Seconds())
	h.nodes.WithLabelValues("source-only").Add(float64(c.SourceOnly))
	h.nodes.WithLabelValues("other-only").Add(float64(c.OtherOnly))
	h.nodes.WithLabelValues("intersect").Add(float64(c.Intersect))
	h.edges.WithLabelValues("added").Add(float64(c.EdgesAdded))
	h.edges.WithLabelValues("deduplicated").Add(float64(c.EdgesDeduplicated))
	h.warnings.Add(float64(c.Warnings))
}

func (h *promHooks) OnWrite(_ context.Context, _ string, d time.Duration, err error) {
	h.writes.WithLabelValues(status(err)).Inc()
	h.writeDuration.Observe(d.Seconds())
}

// WriteTextfile writes every metric to path.
func (h *promHooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
