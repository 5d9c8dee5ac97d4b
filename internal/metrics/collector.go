// ABOUTME: Prometheus collector exposing roster statistics as gauges.
// ABOUTME: Values are computed from the roster on every scrape.
package metrics

import (
	"io"
	"sort"
	"strconv"

	"github.com/harperreed/swim/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "swim"

// Source supplies the swimmers to report on. *roster.Roster satisfies it.
type Source interface {
	Swimmers() []*models.Swimmer
}

// Collector implements prometheus.Collector over a Source.
type Collector struct {
	source Source

	swimmers         *prometheus.Desc
	swimmersLevel    *prometheus.Desc
	swimmersCategory *prometheus.Desc
	races            *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for source.
func NewCollector(source Source) *Collector {
	return &Collector{
		source: source,
		swimmers: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "swimmers"),
			"Number of swimmers by status.",
			[]string{"status"}, nil,
		),
		swimmersLevel: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "swimmers", "by_level"),
			"Number of swimmers at each level.",
			[]string{"level"}, nil,
		),
		swimmersCategory: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "swimmers", "by_category"),
			"Number of swimmers in each category.",
			[]string{"category"}, nil,
		),
		races: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "races"),
			"Number of races by grading state.",
			[]string{"graded"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.swimmers
	ch <- c.swimmersLevel
	ch <- c.swimmersCategory
	ch <- c.races
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var active, archived, graded, ungraded float64
	levels := make(map[int]float64)
	categories := make(map[string]float64)

	for _, s := range c.source.Swimmers() {
		if s.Archived {
			archived++
		} else {
			active++
		}
		levels[s.Level]++
		categories[s.Category]++
		for _, r := range s.Races {
			if r.Graded {
				graded++
			} else {
				ungraded++
			}
		}
	}

	ch <- prometheus.MustNewConstMetric(c.swimmers, prometheus.GaugeValue, active, "active")
	ch <- prometheus.MustNewConstMetric(c.swimmers, prometheus.GaugeValue, archived, "archived")
	ch <- prometheus.MustNewConstMetric(c.races, prometheus.GaugeValue, graded, "true")
	ch <- prometheus.MustNewConstMetric(c.races, prometheus.GaugeValue, ungraded, "false")

	for level, n := range levels {
		ch <- prometheus.MustNewConstMetric(c.swimmersLevel, prometheus.GaugeValue, n, strconv.Itoa(level))
	}
	for category, n := range categories {
		ch <- prometheus.MustNewConstMetric(c.swimmersCategory, prometheus.GaugeValue, n, category)
	}
}

// WriteText gathers the roster metrics into a private registry and writes
// them in the Prometheus text exposition format.
func WriteText(w io.Writer, source Source) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(NewCollector(source)); err != nil {
		return err
	}

	families, err := registry.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
