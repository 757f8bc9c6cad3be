// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics exports the outcome of an allocation run as Prometheus
// gauges, written to a node_exporter textfile.
package metrics

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/someonegg/clubmatch"
)

// Recorder holds the run gauges on its own registry.
type Recorder struct {
	reg *prometheus.Registry

	students *prometheus.GaugeVec
	seats    *prometheus.GaugeVec
	assigned *prometheus.GaugeVec
	capacity *prometheus.GaugeVec
	issues   prometheus.Gauge
}

// NewRecorder registers the run gauges on a fresh registry. A nil registry
// creates one.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{
		reg: reg,
		students: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clubsort_students",
			Help: "Students by the choice rank that placed them; rank 0 is the remainder",
		}, []string{"rank"}),
		seats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clubsort_seats",
			Help: "Club seats by state",
		}, []string{"state"}),
		assigned: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clubsort_club_assigned",
			Help: "Students assigned per club",
		}, []string{"club"}),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clubsort_club_capacity",
			Help: "Seat capacity per club",
		}, []string{"club"}),
		issues: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clubsort_input_issues",
			Help: "Input rows dropped or adjusted while loading",
		}),
	}

	for _, c := range []prometheus.Collector{r.students, r.seats, r.assigned, r.capacity, r.issues} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register run metrics")
		}
	}
	return r, nil
}

// Registry exposes the underlying registry, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// Record sets every gauge from one run.
func (r *Recorder) Record(clubs []clubmatch.Club, summ clubmatch.Summary, a clubmatch.Assignment, issues int) {
	for rank, n := range summ.ByRank {
		r.students.WithLabelValues(strconv.Itoa(rank)).Set(float64(n))
	}
	r.seats.WithLabelValues("total").Set(float64(summ.Seats))
	r.seats.WithLabelValues("left").Set(float64(summ.SeatsLeft))

	for _, c := range clubs {
		if _, ok := a[c.Name]; !ok || c.Name == clubmatch.Remainder {
			continue
		}
		r.assigned.WithLabelValues(c.Name).Set(float64(len(a[c.Name])))
		r.capacity.WithLabelValues(c.Name).Set(float64(c.Capacity))
	}
	r.issues.Set(float64(issues))
}

// WriteTextfile writes the gauges atomically in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
