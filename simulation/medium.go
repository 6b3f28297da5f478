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
	"sort"

	"github.com/vanetsim/ocb-ns/event"
	"github.com/vanetsim/ocb-ns/interference"
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/pcap"
	"github.com/vanetsim/ocb-ns/phy"
	"github.com/vanetsim/ocb-ns/stats"
	. "github.com/vanetsim/ocb-ns/types"
)

type linkKey struct {
	from, to NodeId
}

type delivery struct {
	dst *phy.Phy
	sig *interference.Signal
}

// Medium delivers every transmission, as a signal attenuated by a static link loss, to all other
// radios at the moment the transmission starts.
type Medium struct {
	sched       event.Scheduler
	radios      map[NodeId]*phy.Phy
	loss        map[linkKey]DbValue
	defaultLoss DbValue
	channels    map[ChannelId]stats.ChannelStats
	capture     pcap.File
}

func NewMedium(sched event.Scheduler, defaultLoss DbValue) *Medium {
	return &Medium{
		sched:       sched,
		radios:      map[NodeId]*phy.Phy{},
		loss:        map[linkKey]DbValue{},
		defaultLoss: defaultLoss,
		channels:    map[ChannelId]stats.ChannelStats{},
	}
}

// SetCapture makes the medium append every transmitted frame to f. A nil f stops the capture.
func (m *Medium) SetCapture(f pcap.File) {
	m.capture = f
}

func (m *Medium) captureFrame(f *Frame, txPowerDbm DbValue, channel ChannelId) {
	err := m.capture.AppendFrame(pcap.Frame{
		Timestamp: m.sched.Now(),
		Data:      pcap.EncodeFrame(f),
		Channel:   channel,
		RateKbps:  f.Mode.DataRateKbps,
		PowerDbm:  txPowerDbm,
	})
	if err != nil {
		logger.Errorf("pcap capture stopped: %v", err)
		m.capture = nil
	}
}

func (m *Medium) AddRadio(p *phy.Phy) {
	logger.AssertNil(m.radios[p.Id()])
	m.radios[p.Id()] = p
	p.SetMedium(m)
}

func (m *Medium) RemoveRadio(id NodeId) {
	if p := m.radios[id]; p != nil {
		p.SetMedium(nil)
		delete(m.radios, id)
	}
}

// SetLinkLoss sets the loss from radio `from` to radio `to`.
func (m *Medium) SetLinkLoss(from, to NodeId, lossDb DbValue) {
	m.loss[linkKey{from, to}] = lossDb
}

func (m *Medium) LinkLoss(from, to NodeId) DbValue {
	if l, ok := m.loss[linkKey{from, to}]; ok {
		return l
	}
	return m.defaultLoss
}

func (m *Medium) sortedIds() []NodeId {
	ids := make([]NodeId, 0, len(m.radios))
	for id := range m.radios {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Transmit implements phy.Medium. Each receiver gets its own copy of the frame.
func (m *Medium) Transmit(src *phy.Phy, f *Frame, txPowerDbm DbValue, channel ChannelId,
	duration SimTime) func() {
	now := m.sched.Now()
	cs := m.channels[channel]
	cs.TxTimeUs += duration
	cs.NumFrames++
	m.channels[channel] = cs
	if m.capture != nil {
		m.captureFrame(f, txPowerDbm, channel)
	}

	var deliveries []delivery
	for _, id := range m.sortedIds() {
		if id == src.Id() {
			continue
		}
		loss := m.LinkLoss(src.Id(), id)
		if loss == NoLinkLossDb {
			continue
		}
		fc := *f
		sig := &interference.Signal{
			Start:    now,
			Duration: duration,
			PowerDbm: txPowerDbm - loss,
			Tech:     TechNative,
			Channel:  channel,
			Src:      src.Id(),
			Frame:    &fc,
		}
		dst := m.radios[id]
		dst.StartRx(sig)
		if sig.Id != interference.InvalidSignalId {
			deliveries = append(deliveries, delivery{dst, sig})
		}
	}

	end := now + duration
	return func() {
		if t := m.sched.Now(); t < end {
			cs := m.channels[channel]
			cs.TxTimeUs -= end - t
			m.channels[channel] = cs
		}
		for _, d := range deliveries {
			d.dst.StopRx(d.sig.Id)
		}
	}
}

// InjectSignal places a signal of the given technology on the antenna of radio dst now.
func (m *Medium) InjectSignal(dst NodeId, tech Technology, powerDbm DbValue, duration SimTime,
	f *Frame) *interference.Signal {
	p := m.radios[dst]
	if p == nil {
		return nil
	}
	sig := &interference.Signal{
		Start:    m.sched.Now(),
		Duration: duration,
		PowerDbm: powerDbm,
		Tech:     tech,
		Channel:  p.Channel(),
		Src:      InvalidNodeId,
		Frame:    f,
	}
	p.StartRx(sig)
	return sig
}

// ChannelStats returns a copy of the accumulated per-channel medium usage.
func (m *Medium) ChannelStats() map[ChannelId]stats.ChannelStats {
	ret := make(map[ChannelId]stats.ChannelStats, len(m.channels))
	for ch, cs := range m.channels {
		ret[ch] = cs
	}
	return ret
}
