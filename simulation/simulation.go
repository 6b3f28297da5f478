// Copyright (c) 2020-2023, The OTNS Authors.
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
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vanetsim/ocb-ns/energy"
	"github.com/vanetsim/ocb-ns/errormodel"
	"github.com/vanetsim/ocb-ns/event"
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/mac"
	"github.com/vanetsim/ocb-ns/pcap"
	"github.com/vanetsim/ocb-ns/phy"
	"github.com/vanetsim/ocb-ns/prng"
	"github.com/vanetsim/ocb-ns/stats"
	. "github.com/vanetsim/ocb-ns/types"
)

const (
	PcapFileName = "current.pcap"
)

var (
	ErrRadioNotFound = errors.New("radio not found")
)

type Simulation struct {
	cfg            *Config
	loop           *event.Loop
	medium         *Medium
	model          errormodel.Model
	radios         map[NodeId]*Radio
	energyAnalyser *energy.EnergyAnalyser
	kpiMgr         *stats.KpiManager
	registry       *prometheus.Registry
	collector      *stats.Collector
	energyEvt      event.Handle
	pcap           pcap.File
}

func NewSimulation(cfg *Config) (*Simulation, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := errormodel.Create(cfg.ErrorModel)
	if err != nil {
		return nil, err
	}
	prng.Init(cfg.Seed)
	logger.SetLevel(cfg.LogLevel)

	loop := event.NewLoop()
	s := &Simulation{
		cfg:            cfg,
		loop:           loop,
		medium:         NewMedium(loop, cfg.DefaultLossDb),
		model:          model,
		radios:         map[NodeId]*Radio{},
		energyAnalyser: energy.NewEnergyAnalyser(),
		kpiMgr:         stats.NewKpiManager(),
		registry:       prometheus.NewRegistry(),
	}
	if s.collector, err = stats.NewCollector(s.registry); err != nil {
		return nil, err
	}
	if ft := pcap.ParseFrameTypeStr(cfg.Pcap); ft != pcap.FrameTypeOff {
		if err = os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return nil, errors.Wrapf(err, "cannot create output dir %s", cfg.OutputDir)
		}
		if s.pcap, err = pcap.NewFile(filepath.Join(cfg.OutputDir, PcapFileName), ft); err != nil {
			return nil, err
		}
		s.medium.SetCapture(s.pcap)
	}

	for _, rc := range cfg.Radios {
		if _, err = s.AddRadio(rc); err != nil {
			return nil, err
		}
	}
	for _, lc := range cfg.Links {
		s.medium.SetLinkLoss(lc.From, lc.To, lc.LossDb)
		if !lc.OneWay {
			s.medium.SetLinkLoss(lc.To, lc.From, lc.LossDb)
		}
	}

	s.kpiMgr.Init(s)
	s.energyEvt = s.loop.ScheduleAt(energy.ComputePeriod, s.storeEnergy)
	return s, nil
}

// Close stops the frame capture and closes its file.
func (s *Simulation) Close() error {
	if s.pcap == nil {
		return nil
	}
	s.medium.SetCapture(nil)
	err := s.pcap.Close()
	s.pcap = nil
	return err
}

func (s *Simulation) storeEnergy() {
	s.energyAnalyser.StoreNetworkEnergy(s.loop.Now())
	s.energyEvt = s.loop.ScheduleIn(energy.ComputePeriod, s.storeEnergy)
}

// AddRadio creates a radio with the network-wide PHY and MAC configuration, overridden by rc.
func (s *Simulation) AddRadio(rc RadioConfig) (*Radio, error) {
	id := rc.Id
	if id <= 0 {
		id = s.genRadioId()
	}
	if s.radios[id] != nil {
		return nil, errors.Errorf("radio %d already exists", id)
	}

	phyCfg := s.cfg.Phy
	if rc.Channel != 0 {
		phyCfg.Channel = rc.Channel
	}
	if rc.TxPowerDbm != nil {
		phyCfg.TxPowerDbm = *rc.TxPowerDbm
	}
	macCfg := s.cfg.Mac

	p := phy.NewPhy(id, phyCfg, s.loop, s.model, prng.NewRadioRand())
	contention := mac.NewEdcaContention(macCfg.SlotUs, macCfg.SifsUs,
		mac.DefaultEdcaParams(macCfg.CwMin, macCfg.CwMax), prng.NewRadioRand())
	m := mac.NewCoordinator(id, NodeAddress(id), macCfg, s.loop, p, contention, phyCfg.Channel)
	p.AddStateListener(m.OnPhyStateChange)
	p.SetUpperLayer(m)
	s.medium.AddRadio(p)

	r := newRadio(id, p, m, logger.GetRadioLogger(id, s.loop.Now))
	r.Energy = s.energyAnalyser.AddNode(id, s.loop.Now())
	p.AddStateListener(r.Energy.OnPhyStateChange)
	s.collector.AttachPhy(p)
	s.collector.AttachMac(id, m)

	schedCfg := s.cfg.Schedule
	if rc.Schedule != nil {
		schedCfg.Enabled = *rc.Schedule
	}
	r.Schedule = mac.NewChannelSchedule(m, s.loop, schedCfg)
	if schedCfg.Enabled {
		r.Schedule.Start()
	}

	s.radios[id] = r
	logger.Debugf("simulation: added radio %d on channel %d", id, phyCfg.Channel)
	return r, nil
}

func (s *Simulation) genRadioId() NodeId {
	id := 1
	for s.radios[id] != nil {
		id += 1
	}
	return id
}

// DeleteRadio flushes the radio's queues and detaches it from the medium.
func (s *Simulation) DeleteRadio(id NodeId) error {
	r := s.radios[id]
	if r == nil {
		return errors.Wrapf(ErrRadioNotFound, "%d", id)
	}
	r.Schedule.Stop()
	r.Mac.Reset()
	r.Phy.Reset()
	s.medium.RemoveRadio(id)
	s.energyAnalyser.DeleteNode(id)
	logger.ForgetRadioLogger(id)
	delete(s.radios, id)
	return nil
}

func (s *Simulation) Radio(id NodeId) (*Radio, error) {
	r := s.radios[id]
	if r == nil {
		return nil, errors.Wrapf(ErrRadioNotFound, "%d", id)
	}
	return r, nil
}

// Radios returns the sorted radio ids.
func (s *Simulation) Radios() []NodeId {
	keys := make([]NodeId, 0, len(s.radios))
	for key := range s.radios {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

func (s *Simulation) VisitRadiosInOrder(cb func(r *Radio)) {
	for _, id := range s.Radios() {
		cb(s.radios[id])
	}
}

func (s *Simulation) Now() SimTime {
	return s.loop.Now()
}

// Go runs the simulation for duration of simulated time.
func (s *Simulation) Go(duration SimTime) {
	s.loop.RunUntil(s.loop.Now() + duration)
}

// Send queues a frame of payloadBytes from radio src to dst.
func (s *Simulation) Send(src NodeId, dst Address, payloadBytes int, ac AccessCategory) (*Frame, error) {
	r, err := s.Radio(src)
	if err != nil {
		return nil, err
	}
	f := NewFrame(r.Addr, dst, payloadBytes, ac)
	if err = r.Mac.Enqueue(f, ac); err != nil {
		return nil, err
	}
	return f, nil
}

// InjectSignal places a signal on the antenna of radio dst. Native signals carry a broadcast frame
// of payloadBytes whose duration follows from the radio's transmit mode, unless duration is non-zero.
func (s *Simulation) InjectSignal(dst NodeId, tech Technology, powerDbm DbValue, duration SimTime,
	payloadBytes int) error {
	r, err := s.Radio(dst)
	if err != nil {
		return err
	}
	var f *Frame
	if tech == TechNative {
		f = NewFrame(InvalidAddress, BroadcastAddress, payloadBytes, AcBE)
		if duration == 0 {
			duration = r.Phy.TxDuration(f)
		}
	}
	if duration == 0 {
		return errors.Errorf("signal duration must be positive")
	}
	s.medium.InjectSignal(dst, tech, powerDbm, duration, f)
	return nil
}

func (s *Simulation) SetLinkLoss(from, to NodeId, lossDb DbValue) {
	s.medium.SetLinkLoss(from, to, lossDb)
}

func (s *Simulation) RadioCounters(id NodeId) stats.RadioCounters {
	r := s.radios[id]
	if r == nil {
		return nil
	}
	return r.Counters()
}

func (s *Simulation) ChannelStats() map[ChannelId]stats.ChannelStats {
	return s.medium.ChannelStats()
}

func (s *Simulation) Medium() *Medium {
	return s.medium
}

func (s *Simulation) Kpi() *stats.KpiManager {
	return s.kpiMgr
}

func (s *Simulation) Collector() *stats.Collector {
	return s.collector
}

func (s *Simulation) Gatherer() prometheus.Gatherer {
	return s.registry
}

func (s *Simulation) GetEnergyAnalyser() *energy.EnergyAnalyser {
	return s.energyAnalyser
}

func (s *Simulation) GetConfig() *Config {
	return s.cfg
}

func (s *Simulation) GetLogLevel() logger.Level {
	return logger.GetLevel()
}

func (s *Simulation) SetLogLevel(level logger.Level) {
	logger.SetLevel(level)
}
