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

// Package phy implements the reception state machine of a radio interface. The state is a function
// of the ongoing transmission, the ongoing reception and the aggregate energy on the channel, and is
// re-evaluated at every energy change point.
package phy

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/vanetsim/ocb-ns/errormodel"
	"github.com/vanetsim/ocb-ns/event"
	"github.com/vanetsim/ocb-ns/interference"
	"github.com/vanetsim/ocb-ns/logger"
	. "github.com/vanetsim/ocb-ns/types"
)

var (
	ErrTxInProgress = errors.New("transmission in progress")
)

type reception struct {
	sig        *interference.Signal
	payload    bool
	payloadEvt event.Handle
	endEvt     event.Handle
}

type transmission struct {
	frame  *Frame
	end    SimTime
	endEvt event.Handle
	abort  func()
}

// Phy is the PHY of one radio interface.
type Phy struct {
	id      NodeId
	cfg     Config
	sched   event.Scheduler
	agg     *interference.Aggregator
	model   errormodel.Model
	rnd     *rand.Rand
	medium  Medium
	upper   UpperLayer
	log     *logger.RadioLogger
	channel ChannelId

	state stateHelper
	rx    *reception
	tx    *transmission

	stateListeners   []StateListener
	outcomeListeners []OutcomeListener
	dispatching      int
	diag             Diagnostics
}

// NewPhy creates a PHY in state IDLE on the configured channel.
func NewPhy(id NodeId, cfg Config, sched event.Scheduler, model errormodel.Model, rnd *rand.Rand) *Phy {
	p := &Phy{
		id:      id,
		cfg:     cfg,
		sched:   sched,
		agg:     interference.NewAggregator(sched, cfg.NoiseFloorDbm()),
		model:   model,
		rnd:     rnd,
		log:     logger.GetRadioLogger(id, sched.Now),
		channel: cfg.Channel,
		state:   newStateHelper(sched.Now()),
	}
	p.agg.AddListener(p.onEnergyChange)
	return p
}

func (p *Phy) Id() NodeId {
	return p.id
}

func (p *Phy) Config() Config {
	return p.cfg
}

func (p *Phy) SetMedium(m Medium) {
	p.medium = m
}

func (p *Phy) SetUpperLayer(u UpperLayer) {
	p.upper = u
}

// SetErrorModel replaces the error model used for subsequent receptions.
func (p *Phy) SetErrorModel(m errormodel.Model) {
	p.model = m
}

// AddStateListener registers a listener for state transitions. Listeners are called synchronously in
// registration order and must not call back into the PHY.
func (p *Phy) AddStateListener(l StateListener) {
	p.stateListeners = append(p.stateListeners, l)
}

// AddOutcomeListener registers a listener for reception outcomes, with the same rules as state listeners.
func (p *Phy) AddOutcomeListener(l OutcomeListener) {
	p.outcomeListeners = append(p.outcomeListeners, l)
}

func (p *Phy) Aggregator() *interference.Aggregator {
	return p.agg
}

func (p *Phy) State() PhyState {
	return p.state.state
}

// StateSince returns the time the current state was entered.
func (p *Phy) StateSince() SimTime {
	return p.state.since
}

// TimeInState returns the cumulative time spent in state s until now.
func (p *Phy) TimeInState(s PhyState) SimTime {
	return p.state.timeInState(s, p.sched.Now())
}

// EntryCount returns how often state s was entered.
func (p *Phy) EntryCount(s PhyState) uint64 {
	return p.state.entries[s]
}

func (p *Phy) Channel() ChannelId {
	return p.channel
}

func (p *Phy) Diagnostics() Diagnostics {
	return p.diag
}

// IsReceiving returns true while a reception is in progress, including its preamble.
func (p *Phy) IsReceiving() bool {
	return p.rx != nil
}

func (p *Phy) IsTransmitting() bool {
	return p.tx != nil
}

// TxDuration returns the on-air time of frame f.
func (p *Phy) TxDuration(f *Frame) SimTime {
	return f.Mode.TxDuration(f.SizeBytes())
}

func (p *Phy) assertNotDispatching() {
	logger.AssertTruef(p.dispatching == 0, "%s: PHY called from its own listener", GetNodeName(p.id))
}

// StartRx handles a signal arriving now on the antenna.
func (p *Phy) StartRx(sig *interference.Signal) {
	p.assertNotDispatching()

	if sig.Channel != p.channel {
		p.diag.OffChannel++
		return
	}
	if sig.Tech == TechForeign {
		if sig.PowerDbm < p.cfg.CcaEdThresholdDbm {
			p.diag.ForeignBelowCca++
		} else {
			p.diag.ForeignAboveCca++
		}
		p.agg.AddSignal(sig)
		return
	}
	if sig.PowerDbm < p.cfg.RxSensitivityDbm {
		p.diag.BelowSensitivity++
		p.log.Tracef("signal from %d below sensitivity (%.1f dBm)", sig.Src, sig.PowerDbm)
		return
	}
	logger.AssertNotNil(sig.Frame, "native signal without frame")

	switch {
	case p.tx != nil:
		p.agg.AddSignal(sig)
		p.dropFrame(sig, DropTransmitting)
	case p.rx != nil:
		p.agg.AddSignal(sig)
		p.dropFrame(sig, DropCollision)
	default:
		p.beginRx(sig)
	}
}

// StopRx removes a signal before its declared end, e.g. when its transmitter aborted.
func (p *Phy) StopRx(id interference.SignalId) {
	p.assertNotDispatching()
	p.agg.RemoveSignal(id)
}

func (p *Phy) beginRx(sig *interference.Signal) {
	rx := &reception{sig: sig}
	p.rx = rx
	id := p.agg.AddSignal(sig)
	p.agg.Track(id)

	now := p.sched.Now()
	rx.payloadEvt = p.sched.ScheduleAt(now+p.cfg.PreambleDetectionUs, func() {
		p.startPayload(rx)
	})
	rx.endEvt = p.sched.ScheduleAtPriority(sig.End(), event.PriorityExpire, func() {
		p.endRx(rx)
	})
	p.log.Debugf("rx start %s from %d at %.1f dBm", sig.Frame, sig.Src, sig.PowerDbm)
}

func (p *Phy) startPayload(rx *reception) {
	if p.rx != rx || rx.payload {
		return
	}
	rx.payload = true
	p.reevaluate()
}

func (p *Phy) endRx(rx *reception) {
	if p.rx != rx {
		return
	}
	sig := rx.sig
	if !rx.payload {
		// the signal ended before its preamble was detected: there is no payload to decode.
		p.sched.Cancel(rx.payloadEvt)
		p.rx = nil
		p.agg.Release(sig.Id)
		p.reevaluate()
		p.dropFrame(sig, DropPreambleNotDetected)
		return
	}
	f := sig.Frame
	trace := p.agg.SinrTrace(sig.Id)
	psuc := p.model.Decode(f.Mode, f.SizeBits(), trace)
	success := p.rnd.Float64() < psuc

	p.rx = nil
	p.agg.Release(sig.Id)
	p.reevaluate()

	info := p.signalInfo(sig)
	info.SinrDb = RatioToDb(trace.MinSinr())
	info.PSuccess = psuc
	if success {
		p.log.Debugf("rx success %s sinr=%.1f dB", f, info.SinrDb)
		p.emitOutcome(Outcome{Time: p.sched.Now(), Kind: OutcomeSuccess, Frame: f, Info: info})
	} else {
		p.log.Debugf("rx failure %s sinr=%.1f dB psuc=%.3f", f, info.SinrDb, psuc)
		p.emitOutcome(Outcome{Time: p.sched.Now(), Kind: OutcomeFailure, Reason: DropDecodeError, Frame: f, Info: info})
	}
}

// abortRx ends the ongoing reception without decoding it. The caller re-evaluates the state.
func (p *Phy) abortRx(reason DropReason) {
	rx := p.rx
	if rx == nil {
		return
	}
	p.sched.Cancel(rx.payloadEvt)
	p.sched.Cancel(rx.endEvt)
	p.rx = nil
	p.dropFrame(rx.sig, reason)
	p.agg.Release(rx.sig.Id)
}

func (p *Phy) dropFrame(sig *interference.Signal, reason DropReason) {
	p.log.Debugf("rx drop %s: %s", sig.Frame, reason)
	p.emitOutcome(Outcome{
		Time:   p.sched.Now(),
		Kind:   OutcomeDropped,
		Reason: reason,
		Frame:  sig.Frame,
		Info:   p.signalInfo(sig),
	})
}

func (p *Phy) signalInfo(sig *interference.Signal) RxSignalInfo {
	return RxSignalInfo{
		RssiDbm:     sig.PowerDbm,
		SinrDb:      RatioToDb(p.agg.SinrAt(sig.Id, sig.Start)),
		Mode:        sig.Frame.Mode,
		Channel:     sig.Channel,
		Transmitter: sig.Src,
	}
}

// StartTx starts transmitting f now. An ongoing reception is dropped.
func (p *Phy) StartTx(f *Frame) error {
	p.assertNotDispatching()
	if p.tx != nil {
		return errors.Wrapf(ErrTxInProgress, "%s: cannot send %s", GetNodeName(p.id), f)
	}
	p.abortRx(DropRxAbortedByTx)

	now := p.sched.Now()
	dur := p.TxDuration(f)
	tx := &transmission{
		frame: f,
		end:   now + dur,
	}
	p.tx = tx
	tx.endEvt = p.sched.ScheduleAtPriority(tx.end, event.PriorityExpire, func() {
		p.endTx(tx)
	})
	if p.medium != nil {
		tx.abort = p.medium.Transmit(p, f, p.cfg.TxPowerDbm, p.channel, dur)
	}
	p.log.Debugf("tx start %s duration %d us", f, dur)
	p.reevaluate()
	return nil
}

func (p *Phy) endTx(tx *transmission) {
	if p.tx != tx {
		return
	}
	p.tx = nil
	p.log.Debugf("tx end %s", tx.frame)
	p.reevaluate()
}

// AbortTx stops the ongoing transmission, if any. Receivers see the signal end now.
func (p *Phy) AbortTx() {
	p.assertNotDispatching()
	if p.stopTx() {
		p.reevaluate()
	}
}

func (p *Phy) stopTx() bool {
	tx := p.tx
	if tx == nil {
		return false
	}
	p.sched.Cancel(tx.endEvt)
	p.tx = nil
	if tx.abort != nil {
		tx.abort()
	}
	p.log.Debugf("tx aborted %s", tx.frame)
	return true
}

// Reset aborts the ongoing reception and transmission and forgets all energy on the antenna, leaving
// no scheduled events behind. The PHY ends up IDLE.
func (p *Phy) Reset() {
	p.assertNotDispatching()
	p.abortRx(DropReset)
	p.stopTx()
	p.agg.Clear()
	p.reevaluate()
}

// SetChannel switches to channel ch. The ongoing reception and transmission are aborted and all
// energy of the old channel is forgotten.
func (p *Phy) SetChannel(ch ChannelId) {
	p.assertNotDispatching()
	if ch == p.channel {
		return
	}
	p.abortRx(DropChannelSwitching)
	p.stopTx()
	p.log.Debugf("channel %d -> %d", p.channel, ch)
	p.channel = ch
	p.agg.Clear()
	p.reevaluate()
}

func (p *Phy) onEnergyChange(ch interference.EnergyChange) {
	if ch.Reason == interference.ChangeRemoval && p.rx != nil && ch.Signal == p.rx.sig {
		p.abortRx(DropSignalTruncated)
	}
	p.reevaluate()
}

// IsCcaBusy returns true if the aggregate energy is at or above the CCA threshold.
func (p *Phy) IsCcaBusy() bool {
	return p.agg.PowerDbmAt(p.sched.Now()) >= p.cfg.CcaEdThresholdDbm
}

// reevaluate derives the state from the ongoing transmission, reception and energy.
func (p *Phy) reevaluate() {
	var s PhyState
	switch {
	case p.tx != nil:
		s = PhyTx
	case p.rx != nil && p.rx.payload:
		s = PhyRx
	case p.rx != nil || p.IsCcaBusy():
		s = PhyCcaBusy
	default:
		s = PhyIdle
	}
	if ch, ok := p.state.switchTo(p.sched.Now(), s); ok {
		p.log.Tracef("state %s -> %s after %d us", ch.PriorState, ch.NewState, ch.PriorDuration)
		p.dispatching++
		for _, l := range p.stateListeners {
			l(ch)
		}
		p.dispatching--
	}
}

func (p *Phy) emitOutcome(o Outcome) {
	p.dispatching++
	defer func() { p.dispatching-- }()

	for _, l := range p.outcomeListeners {
		l(o)
	}
	if p.upper == nil {
		return
	}
	if o.Kind == OutcomeSuccess {
		p.upper.FrameDelivered(o.Frame, o.Info)
	} else {
		p.upper.FrameLost(o.Frame, o.Reason)
	}
}
