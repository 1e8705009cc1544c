package analysis

import (
	"sort"
	"time"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// Metric selects which per-run scalar daily loads aggregate.
type Metric int

const (
	MetricDistance Metric = iota
	MetricTRIMP
)

func (m Metric) String() string {
	switch m {
	case MetricTRIMP:
		return "trimp"
	default:
		return "distance"
	}
}

// DailyLoad is one local calendar day's aggregate load.
type DailyLoad struct {
	Date  time.Time // midnight, local calendar date of the runs
	Value float64
}

// metricValue extracts the chosen metric from a run. Values <= 0 mean
// the run cannot contribute for this metric.
func metricValue(run store.Run, metric Metric, phys Physiology) float64 {
	switch metric {
	case MetricTRIMP:
		return CalculateTRIMP(run, phys).Value
	default:
		if run.Distance <= 0 || run.MovingTime <= 0 {
			return 0
		}
		return run.Distance
	}
}

// AggregateDailyLoad groups runs by local calendar date and sums the
// chosen metric, most recent date first. Runs that cannot produce a
// positive metric value are skipped; a day with only such runs does not
// appear in the output at all.
func AggregateDailyLoad(runs []store.Run, metric Metric, phys Physiology) []DailyLoad {
	byDay := make(map[string]float64)

	for _, run := range runs {
		v := metricValue(run, metric, phys)
		if v <= 0 {
			continue
		}
		byDay[run.LocalDay()] += v
	}

	loads := make([]DailyLoad, 0, len(byDay))
	for day, value := range byDay {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		loads = append(loads, DailyLoad{Date: date, Value: value})
	}

	sort.Slice(loads, func(i, j int) bool {
		return loads[i].Date.After(loads[j].Date)
	})

	return loads
}
