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

// Package interference tracks the signals concurrently present at one receiver and derives aggregate
// power and per-signal SINR from them.
package interference

import (
	"sort"

	"github.com/vanetsim/ocb-ns/event"
	"github.com/vanetsim/ocb-ns/logger"
	. "github.com/vanetsim/ocb-ns/types"
)

// ChangeReason identifies the kind of energy change point.
type ChangeReason byte

const (
	ChangeArrival ChangeReason = iota
	ChangePower
	ChangeExpiry
	ChangeRemoval
	ChangeClear
)

func (r ChangeReason) String() string {
	switch r {
	case ChangeArrival:
		return "arrival"
	case ChangePower:
		return "power"
	case ChangeExpiry:
		return "expiry"
	case ChangeRemoval:
		return "removal"
	case ChangeClear:
		return "clear"
	default:
		return "invalid"
	}
}

// EnergyChange is passed to listeners at every energy change point.
type EnergyChange struct {
	Time   SimTime
	Reason ChangeReason
	// Signal is the signal causing the change; nil for ChangeClear.
	Signal *Signal
}

type EnergyListener func(ch EnergyChange)

// Aggregator sums the power of concurrent signals in the linear domain. Signals occupy the half-open
// interval [Start, End), so a signal ending at t and one starting at t never overlap.
type Aggregator struct {
	sched     event.Scheduler
	noiseW    float64
	signals   map[SignalId]*Signal
	nextId    SignalId
	listeners []EnergyListener
}

// NewAggregator creates an Aggregator with the given receiver noise floor.
func NewAggregator(sched event.Scheduler, noiseFloorDbm DbValue) *Aggregator {
	return &Aggregator{
		sched:   sched,
		noiseW:  DbmToW(noiseFloorDbm),
		signals: make(map[SignalId]*Signal),
	}
}

// AddListener registers a listener for energy change points. Listeners are called in registration order.
func (a *Aggregator) AddListener(l EnergyListener) {
	a.listeners = append(a.listeners, l)
}

func (a *Aggregator) NoiseW() float64 {
	return a.noiseW
}

func (a *Aggregator) SetNoiseFloor(noiseFloorDbm DbValue) {
	a.noiseW = DbmToW(noiseFloorDbm)
}

// AddSignal adds a signal arriving now. Its removal is scheduled automatically at its end time.
func (a *Aggregator) AddSignal(sig *Signal) SignalId {
	now := a.sched.Now()
	logger.AssertTruef(sig.Start == now, "signal must start now: %d != %d", sig.Start, now)
	logger.AssertTrue(sig.Id == InvalidSignalId, "signal added twice")

	a.nextId++
	sig.Id = a.nextId
	a.signals[sig.Id] = sig

	id := sig.Id
	sig.expireEvt = a.sched.ScheduleAtPriority(sig.End(), event.PriorityExpire, func() {
		a.expire(id)
	})
	for _, seg := range sig.Segments {
		if seg.Offset == 0 || seg.Offset >= sig.Duration {
			continue
		}
		sig.segEvts = append(sig.segEvts, a.sched.ScheduleAt(sig.Start+seg.Offset, func() {
			a.notify(ChangePower, sig)
		}))
	}
	a.notify(ChangeArrival, sig)
	return id
}

// RemoveSignal removes a signal before its declared end. It returns false if the signal already ended.
func (a *Aggregator) RemoveSignal(id SignalId) bool {
	sig := a.signals[id]
	if sig == nil || sig.expired {
		return false
	}
	sig.end = a.sched.Now()
	sig.truncated = true
	a.cancelEvents(sig)
	sig.expired = true
	a.notify(ChangeRemoval, sig)
	a.prune()
	return true
}

func (a *Aggregator) expire(id SignalId) {
	sig := a.signals[id]
	if sig == nil || sig.expired {
		return
	}
	sig.expired = true
	a.notify(ChangeExpiry, sig)
	a.prune()
}

func (a *Aggregator) cancelEvents(sig *Signal) {
	a.sched.Cancel(sig.expireEvt)
	for _, h := range sig.segEvts {
		a.sched.Cancel(h)
	}
	sig.segEvts = nil
}

// Clear removes all signals, e.g. on a channel switch. Tracked signals end now but are retained.
func (a *Aggregator) Clear() {
	now := a.sched.Now()
	for _, sig := range a.signals {
		if !sig.expired {
			a.cancelEvents(sig)
			sig.end = now
			sig.truncated = true
			sig.expired = true
		}
	}
	a.prune()
	a.notify(ChangeClear, nil)
}

// Get returns the signal with the given id, or nil if it is no longer retained.
func (a *Aggregator) Get(id SignalId) *Signal {
	return a.signals[id]
}

// Len returns the number of retained signals, including ended ones still needed for SINR computation.
func (a *Aggregator) Len() int {
	return len(a.signals)
}

// Track retains the signal after it ends, until Release is called, so its SINR trace stays available.
func (a *Aggregator) Track(id SignalId) {
	if sig := a.signals[id]; sig != nil {
		sig.tracked = true
	}
}

func (a *Aggregator) Release(id SignalId) {
	if sig := a.signals[id]; sig != nil {
		sig.tracked = false
		a.prune()
	}
}

// prune deletes ended signals that no tracked signal overlaps.
func (a *Aggregator) prune() {
	horizon := a.sched.Now()
	for _, sig := range a.signals {
		if sig.tracked && sig.Start < horizon {
			horizon = sig.Start
		}
	}
	for id, sig := range a.signals {
		if sig.expired && !sig.tracked && sig.End() <= horizon {
			delete(a.signals, id)
		}
	}
}

func (a *Aggregator) notify(reason ChangeReason, sig *Signal) {
	ch := EnergyChange{
		Time:   a.sched.Now(),
		Reason: reason,
		Signal: sig,
	}
	for _, l := range a.listeners {
		l(ch)
	}
}

// sumPowers adds powers in ascending order, which makes the result independent of the order
// signals were added in.
func sumPowers(powers []float64) float64 {
	sort.Float64s(powers)
	sum := 0.0
	for _, p := range powers {
		sum += p
	}
	return sum
}

// PowerAt returns the aggregate signal power in watts at time t, excluding noise.
func (a *Aggregator) PowerAt(t SimTime) float64 {
	return a.powerAtExcluding(t, InvalidSignalId)
}

// PowerDbmAt returns the aggregate signal power in dBm at time t, excluding noise.
func (a *Aggregator) PowerDbmAt(t SimTime) DbValue {
	return WToDbm(a.PowerAt(t))
}

func (a *Aggregator) powerAtExcluding(t SimTime, exclude SignalId) float64 {
	powers := make([]float64, 0, len(a.signals))
	for id, sig := range a.signals {
		if id == exclude {
			continue
		}
		if p := sig.PowerW(t); p > 0 {
			powers = append(powers, p)
		}
	}
	return sumPowers(powers)
}

// Window returns the signals present at time t, in order of arrival.
func (a *Aggregator) Window(t SimTime) []*Signal {
	var w []*Signal
	for _, sig := range a.signals {
		if sig.Start <= t && t < sig.End() {
			w = append(w, sig)
		}
	}
	sort.Slice(w, func(i, j int) bool {
		return w[i].Id < w[j].Id
	})
	return w
}

// SinrAt returns the linear SINR of signal id at time t. It returns 0 if the signal is unknown or absent at t.
func (a *Aggregator) SinrAt(id SignalId, t SimTime) float64 {
	sig := a.signals[id]
	if sig == nil {
		return 0
	}
	s := sig.PowerW(t)
	if s == 0 {
		return 0
	}
	return s / (a.noiseW + a.powerAtExcluding(t, id))
}

// SinrFor returns the linear SINR at time t of the signal carrying frame f.
func (a *Aggregator) SinrFor(f *Frame, t SimTime) (float64, bool) {
	for id, sig := range a.signals {
		if sig.Frame == f {
			return a.SinrAt(id, t), true
		}
	}
	return 0, false
}

// SinrTrace returns the SINR of signal id over its whole duration, split into chunks of constant SINR.
func (a *Aggregator) SinrTrace(id SignalId) SinrTrace {
	sig := a.signals[id]
	if sig == nil {
		return nil
	}
	from, to := sig.Start, sig.End()
	points := map[SimTime]struct{}{from: {}, to: {}}
	addPoint := func(t SimTime) {
		if t > from && t < to {
			points[t] = struct{}{}
		}
	}
	for _, s := range a.signals {
		if s != sig && !s.overlaps(from, to) {
			continue
		}
		addPoint(s.Start)
		addPoint(s.End())
		for _, seg := range s.Segments {
			addPoint(s.Start + seg.Offset)
		}
	}
	sorted := make([]SimTime, 0, len(points))
	for t := range points {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	trace := make(SinrTrace, 0, len(sorted))
	for i := 0; i+1 < len(sorted); i++ {
		t := sorted[i]
		trace = append(trace, SinrChunk{
			Start:    t,
			Duration: sorted[i+1] - t,
			Sinr:     a.SinrAt(id, t),
		})
	}
	return trace
}
