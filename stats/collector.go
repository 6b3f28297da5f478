// Copyright (c) 2023, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package stats

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vanetsim/ocb-ns/mac"
	"github.com/vanetsim/ocb-ns/phy"
	. "github.com/vanetsim/ocb-ns/types"
)

// Collector exposes PHY and MAC observer streams as Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	StateTransitions *prometheus.CounterVec
	StateTime        *prometheus.CounterVec
	RxOutcomes       *prometheus.CounterVec
	RxSinr           prometheus.Histogram
	MacEvents        *prometheus.CounterVec
	QueueLength      *prometheus.GaugeVec
}

// NewCollector registers the metrics against the provided registerer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	transitions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "phy_state_transitions_total",
		Help: "Number of PHY state entries per radio and state.",
	}, []string{"node", "state"}), "phy_state_transitions_total")
	if err != nil {
		return nil, err
	}

	stateTime, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "phy_state_time_microseconds_total",
		Help: "Simulated time spent per radio and PHY state, accounted when the state is left.",
	}, []string{"node", "state"}), "phy_state_time_microseconds_total")
	if err != nil {
		return nil, err
	}

	outcomes, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "phy_rx_outcomes_total",
		Help: "Reception outcomes per radio, kind and drop reason.",
	}, []string{"node", "kind", "reason"}), "phy_rx_outcomes_total")
	if err != nil {
		return nil, err
	}

	sinr, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "phy_rx_sinr_db",
		Help:    "Minimum SINR of completed receptions.",
		Buckets: []float64{-5, 0, 3, 6, 10, 15, 20, 25, 30, 40},
	}), "phy_rx_sinr_db")
	if err != nil {
		return nil, err
	}

	macEvents, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mac_events_total",
		Help: "MAC coordinator queue events per radio, kind and access category.",
	}, []string{"node", "kind", "ac"}), "mac_events_total")
	if err != nil {
		return nil, err
	}

	queueLen, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mac_queue_length",
		Help: "Current transmit queue length per radio and access category.",
	}, []string{"node", "ac"}), "mac_queue_length")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		StateTransitions: transitions,
		StateTime:        stateTime,
		RxOutcomes:       outcomes,
		RxSinr:           sinr,
		MacEvents:        macEvents,
		QueueLength:      queueLen,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// AttachPhy subscribes the collector to the state and outcome streams of p.
func (c *Collector) AttachPhy(p *phy.Phy) {
	if c == nil {
		return
	}
	node := strconv.Itoa(p.Id())
	p.AddStateListener(func(ch phy.StateChange) {
		c.StateTransitions.WithLabelValues(node, ch.NewState.String()).Inc()
		c.StateTime.WithLabelValues(node, ch.PriorState.String()).Add(float64(ch.PriorDuration))
	})
	p.AddOutcomeListener(func(o phy.Outcome) {
		c.RxOutcomes.WithLabelValues(node, o.Kind.String(), o.Reason.String()).Inc()
		if o.Kind != OutcomeDropped {
			c.RxSinr.Observe(o.Info.SinrDb)
		}
	})
}

// AttachMac subscribes the collector to the event stream of the coordinator of radio id.
func (c *Collector) AttachMac(id NodeId, m *mac.Coordinator) {
	if c == nil {
		return
	}
	node := strconv.Itoa(id)
	m.AddListener(func(ev mac.Event) {
		ac := ev.Category.String()
		c.MacEvents.WithLabelValues(node, ev.Kind.String(), ac).Inc()
		c.QueueLength.WithLabelValues(node, ac).Set(float64(ev.QueueLen))
	})
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, errors.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, errors.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, errors.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
