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

package simulation

import (
	"github.com/vanetsim/ocb-ns/energy"
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/mac"
	"github.com/vanetsim/ocb-ns/phy"
	"github.com/vanetsim/ocb-ns/stats"
	. "github.com/vanetsim/ocb-ns/types"
)

// Radio is one simulated radio interface: a PHY, its MAC coordinator and the optional channel
// schedule, plus the application sink receiving decoded frames.
type Radio struct {
	Id       NodeId
	Addr     Address
	Phy      *phy.Phy
	Mac      *mac.Coordinator
	Schedule *mac.ChannelSchedule
	Energy   *energy.NodeEnergy

	log      *logger.RadioLogger
	counters stats.RadioCounters
	received []*Frame
	keepRx   int
}

func newRadio(id NodeId, p *phy.Phy, m *mac.Coordinator, log *logger.RadioLogger) *Radio {
	r := &Radio{
		Id:       id,
		Addr:     m.Address(),
		Phy:      p,
		Mac:      m,
		log:      log,
		counters: stats.RadioCounters{},
		keepRx:   100,
	}
	p.AddOutcomeListener(r.onOutcome)
	m.AddListener(r.onMacEvent)
	m.SetUpperLayer(r)
	return r
}

func (r *Radio) onOutcome(o phy.Outcome) {
	r.counters["phy.rx."+o.Kind.String()]++
	if o.Reason != DropNone {
		r.counters["phy.drop."+o.Reason.String()]++
	}
}

func (r *Radio) onMacEvent(ev mac.Event) {
	r.counters["mac."+ev.Kind.String()]++
}

// Receive implements mac.UpperLayer.
func (r *Radio) Receive(f *Frame, info phy.RxSignalInfo) {
	r.counters["app.rx"]++
	r.counters["app.rx.bytes"] += uint64(f.PayloadBytes)
	r.log.Infof("received %s rssi %.1f dBm sinr %.1f dB", f, info.RssiDbm, info.SinrDb)
	r.received = append(r.received, f)
	if len(r.received) > r.keepRx {
		r.received = r.received[len(r.received)-r.keepRx:]
	}
}

// Received returns the most recently received frames, oldest first.
func (r *Radio) Received() []*Frame {
	return append([]*Frame(nil), r.received...)
}

// Counters returns a snapshot of the radio counters, including the PHY time per state.
func (r *Radio) Counters() stats.RadioCounters {
	ret := make(stats.RadioCounters, len(r.counters)+2*NumPhyStates+4)
	for k, v := range r.counters {
		ret[k] = v
	}
	for s := PhyState(0); int(s) < NumPhyStates; s++ {
		ret["phy.time."+s.String()] = r.Phy.TimeInState(s)
		ret["phy.entries."+s.String()] = r.Phy.EntryCount(s)
	}
	diag := r.Phy.Diagnostics()
	ret["phy.diag.below-sensitivity"] = diag.BelowSensitivity
	ret["phy.diag.off-channel"] = diag.OffChannel
	ret["phy.diag.foreign-below-cca"] = diag.ForeignBelowCca
	ret["phy.diag.foreign-above-cca"] = diag.ForeignAboveCca
	return ret
}

// Status is a YAML-friendly summary of the radio.
type Status struct {
	Id          NodeId           `yaml:"id"`
	Address     string           `yaml:"address"`
	State       string           `yaml:"state"`
	StateSince  SimTime          `yaml:"since"`
	Channel     ChannelId        `yaml:"channel"`
	Access      mac.ChannelState `yaml:"access"`
	Association string           `yaml:"association"`
	Queues      map[string]int   `yaml:"queues"`
	Diagnostics phy.Diagnostics  `yaml:"diagnostics"`
}

func (r *Radio) Status() Status {
	queues := map[string]int{}
	for ac := AccessCategory(0); ac < NumAccessCategories; ac++ {
		queues[ac.String()] = r.Mac.QueueLen(ac)
	}
	return Status{
		Id:          r.Id,
		Address:     r.Addr.String(),
		State:       r.Phy.State().String(),
		StateSince:  r.Phy.StateSince(),
		Channel:     r.Phy.Channel(),
		Access:      r.Mac.ChannelState(),
		Association: r.Mac.Association().Status.String(),
		Queues:      queues,
		Diagnostics: r.Phy.Diagnostics(),
	}
}
