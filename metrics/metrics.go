// Package metrics exports run results in the Prometheus textfile format,
// for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"rulesets/domainlist"
	"rulesets/keyword"
)

const namespace = "rulesets"

// Recorder collects the results of one process run.
type Recorder struct {
	registry        *prometheus.Registry
	categoryDomains *prometheus.GaugeVec
	sourceFailures  *prometheus.GaugeVec
	keywordLines    *prometheus.GaugeVec
	lastRun         *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		categoryDomains: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_domains",
			Help:      "Number of canonical domains written per category.",
		}, []string{"category"}),
		sourceFailures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_failures",
			Help:      "Number of source urls that failed to fetch in the last run.",
		}, []string{"category"}),
		keywordLines: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keyword_lines",
			Help:      "Number of geosite lines written per keyword category.",
		}, []string{"category"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Generation timestamp of the last completed run.",
		}, []string{"pipeline"}),
	}

	r.registry.MustRegister(r.categoryDomains, r.sourceFailures, r.keywordLines, r.lastRun)
	return r
}

func (r *Recorder) ObserveBuild(s *domainlist.Summary) {
	for _, c := range s.Categories {
		r.categoryDomains.WithLabelValues(c.Name).Set(float64(c.Domains))
		r.sourceFailures.WithLabelValues(c.Name).Set(float64(len(c.FailedSources)))
	}
	r.lastRun.WithLabelValues("build").Set(float64(s.GeneratedAt.Unix()))
}

func (r *Recorder) ObserveKeyword(s *keyword.Summary) {
	for _, c := range s.Categories {
		r.keywordLines.WithLabelValues(c.Name).Set(float64(c.Lines))
	}
	r.lastRun.WithLabelValues("geosite").Set(float64(s.GeneratedAt.Unix()))
}

// WriteFile writes all collected metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
