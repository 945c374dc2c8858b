// Package metrics exports handle allocator state as Prometheus metrics.
//
// The collector reads a Stats snapshot on every scrape, so it adds no cost to
// Next or Release. Scrapes run on the registry's goroutine: pass a
// *handle.Locked (or anything else that serializes access) as the source
// when the allocator is used concurrently.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/handlekit/pkg/types"
)

// StatsSource is anything that can report allocator stats.
// *handle.Manager and *handle.Locked both satisfy it.
type StatsSource interface {
	Stats() types.Stats
}

// Collector implements prometheus.Collector for one allocator.
type Collector struct {
	src StatsSource

	next       *prometheus.Desc
	highest    *prometheus.Desc
	freed      *prometheus.Desc
	live       *prometheus.Desc
	locked     *prometheus.Desc
	remaining  *prometheus.Desc
	policyInfo *prometheus.Desc
}

// NewCollector builds a collector whose metric names are prefixed with
// namespace and subsystem, e.g. ("tunnel", "conn_ids") produces
// tunnel_conn_ids_live_handles. constLabels are attached to every series and
// may be nil.
func NewCollector(namespace, subsystem string, src StatsSource, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string, variableLabels ...string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, name),
			help,
			variableLabels,
			constLabels,
		)
	}

	return &Collector{
		src:        src,
		next:       desc("next_handle", "The value the counter will mint next."),
		highest:    desc("highest_dispensed", "The highest handle ever dispensed, or -1 before the first dispense."),
		freed:      desc("freed_handles", "Number of released handles held for reuse."),
		live:       desc("live_handles", "Number of handles currently considered in use."),
		locked:     desc("config_locked", "1 once a handle has been dispensed and the policies are fixed."),
		remaining:  desc("remaining_fresh_handles", "Number of values the counter can still mint before running out."),
		policyInfo: desc("policy_info", "Configured allocation and release policies.", "alloc_policy", "release_policy"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.next
	ch <- c.highest
	ch <- c.freed
	ch <- c.live
	ch <- c.locked
	ch <- c.remaining
	ch <- c.policyInfo
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	highest := -1.0
	if s.Dispensing {
		highest = float64(s.HighestEver)
	}
	locked := 0.0
	if s.Dispensing {
		locked = 1
	}

	ch <- prometheus.MustNewConstMetric(c.next, prometheus.GaugeValue, float64(s.Next))
	ch <- prometheus.MustNewConstMetric(c.highest, prometheus.GaugeValue, highest)
	ch <- prometheus.MustNewConstMetric(c.freed, prometheus.GaugeValue, float64(s.Freed))
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(s.Live))
	ch <- prometheus.MustNewConstMetric(c.locked, prometheus.GaugeValue, locked)
	ch <- prometheus.MustNewConstMetric(c.remaining, prometheus.GaugeValue, float64(s.Limit-s.Next))
	ch <- prometheus.MustNewConstMetric(c.policyInfo, prometheus.GaugeValue, 1,
		s.AllocPolicy.String(), s.ReleasePolicy.String())
}

// Compile-time interface check
var _ prometheus.Collector = (*Collector)(nil)
