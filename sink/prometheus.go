// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package sink

import (
	"errors"
	"strings"

	"github.com/geoffholden/dhtwx/data"
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus exports the fields of the latest record as gauges. Fields
// absent from the latest record are not exported.
type Prometheus struct {
	readings *prometheus.GaugeVec
	missing  *prometheus.CounterVec
	polls    prometheus.Counter
	last     prometheus.Gauge
}

func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		readings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dhtwx_reading",
			Help: "Latest metric value read for a field.",
		}, []string{"field"}),
		missing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dhtwx_missing_total",
			Help: "Polls in which a field could not be read as a number.",
		}, []string{"field"}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dhtwx_polls_total",
			Help: "Loop records produced.",
		}),
		last: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dhtwx_last_record_timestamp_seconds",
			Help: "Capture time of the latest loop record.",
		}),
	}
	for _, c := range []prometheus.Collector{p.readings, p.missing, p.polls, p.last} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) Emit(record data.Record) error {
	p.polls.Inc()
	p.last.Set(float64(record.DateTime))
	p.readings.Reset()

	var errs []error
	for _, f := range record.Fields {
		// Label values must be valid UTF-8; field names come from the file.
		name := strings.ToValidUTF8(f.Name, "\uFFFD")
		if v, ok := f.Value.Float(); ok {
			g, err := p.readings.GetMetricWithLabelValues(name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			g.Set(v)
			continue
		}
		c, err := p.missing.GetMetricWithLabelValues(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.Inc()
	}
	return errors.Join(errs...)
}
