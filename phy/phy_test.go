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

package phy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanetsim/ocb-ns/errormodel"
	"github.com/vanetsim/ocb-ns/event"
	"github.com/vanetsim/ocb-ns/interference"
	. "github.com/vanetsim/ocb-ns/types"
)

type recorder struct {
	changes   []StateChange
	outcomes  []Outcome
	delivered []*Frame
	lost      []DropReason
}

func (r *recorder) FrameDelivered(f *Frame, info RxSignalInfo) {
	r.delivered = append(r.delivered, f)
}

func (r *recorder) FrameLost(f *Frame, reason DropReason) {
	r.lost = append(r.lost, reason)
}

func (r *recorder) path() []PhyState {
	var p []PhyState
	for _, ch := range r.changes {
		p = append(p, ch.NewState)
	}
	return p
}

func newTestPhy(model errormodel.Model) (*event.Loop, *Phy, *recorder) {
	l := event.NewLoop()
	p := NewPhy(1, DefaultConfig(), l, model, rand.New(rand.NewSource(1)))
	r := &recorder{}
	p.AddStateListener(func(ch StateChange) {
		r.changes = append(r.changes, ch)
	})
	p.AddOutcomeListener(func(o Outcome) {
		r.outcomes = append(r.outcomes, o)
	})
	p.SetUpperLayer(r)
	return l, p, r
}

func testFrame(payload int) *Frame {
	return NewFrame(NodeAddress(2), BroadcastAddress, payload, AcBE)
}

// rxAt schedules the arrival of a signal at time ts.
func rxAt(l *event.Loop, p *Phy, ts SimTime, tech Technology, dbm DbValue, dur SimTime, f *Frame) {
	l.ScheduleAt(ts, func() {
		p.StartRx(&interference.Signal{
			Start:    l.Now(),
			Duration: dur,
			PowerDbm: dbm,
			Tech:     tech,
			Channel:  p.Channel(),
			Src:      2,
			Frame:    f,
		})
	})
}

func TestPhy_NativeBelowSensitivity(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	f := testFrame(100)
	rxAt(l, p, 10, TechNative, -110, p.TxDuration(f), f)
	l.Run()

	assert.Empty(t, r.changes)
	assert.Empty(t, r.outcomes)
	assert.Equal(t, uint64(1), p.Diagnostics().BelowSensitivity)
	assert.Equal(t, 0, p.Aggregator().Len())
}

func TestPhy_ForeignBelowCca(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	rxAt(l, p, 10, TechForeign, -90, 500, nil)
	l.Run()

	assert.Empty(t, r.changes)
	assert.Empty(t, r.outcomes)
	assert.Equal(t, uint64(1), p.Diagnostics().ForeignBelowCca)
	assert.Equal(t, PhyIdle, p.State())
}

func TestPhy_StrongNativeSignal(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	f := testFrame(100)
	dur := p.TxDuration(f)
	rxAt(l, p, 10, TechNative, -60, dur, f)
	l.Run()

	assert.Equal(t, []PhyState{PhyCcaBusy, PhyRx, PhyIdle}, r.path())
	assert.Len(t, r.outcomes, 1)
	assert.Equal(t, OutcomeSuccess, r.outcomes[0].Kind)
	assert.Equal(t, []*Frame{f}, r.delivered)
	assert.InDelta(t, 37.0, r.outcomes[0].Info.SinrDb, 1e-6)

	assert.Equal(t, uint64(1), p.EntryCount(PhyCcaBusy))
	assert.Equal(t, uint64(1), p.EntryCount(PhyRx))
	assert.Equal(t, uint64(1), p.EntryCount(PhyIdle))

	assert.Equal(t, SimTime(10), r.changes[0].Start)
	assert.Equal(t, SimTime(10), r.changes[0].PriorDuration)
	assert.Equal(t, PhyIdle, r.changes[0].PriorState)
	assert.Equal(t, SimTime(4), r.changes[1].PriorDuration)
	assert.Equal(t, dur-4, r.changes[2].PriorDuration)
	assert.Equal(t, SimTime(10+dur), r.changes[2].Start)

	assert.Equal(t, SimTime(4), p.TimeInState(PhyCcaBusy))
	assert.Equal(t, dur-4, p.TimeInState(PhyRx))
	assert.Equal(t, 0, p.Aggregator().Len())
}

func TestPhy_SignalShorterThanPreamble(t *testing.T) {
	l, p, r := newTestPhy(errormodel.FixedModel{P: 1})
	short, f := testFrame(10), testFrame(100)
	rxAt(l, p, 10, TechNative, -50, p.Config().PreambleDetectionUs-1, short)
	rxAt(l, p, 100, TechNative, -50, p.TxDuration(f), f)
	l.Run()

	assert.Equal(t, []PhyState{PhyCcaBusy, PhyIdle, PhyCcaBusy, PhyRx, PhyIdle}, r.path())
	assert.Len(t, r.outcomes, 2)
	assert.Equal(t, OutcomeDropped, r.outcomes[0].Kind)
	assert.Equal(t, DropPreambleNotDetected, r.outcomes[0].Reason)
	assert.Same(t, short, r.outcomes[0].Frame)
	assert.Equal(t, SimTime(13), r.outcomes[0].Time)
	assert.Equal(t, []DropReason{DropPreambleNotDetected}, r.lost)
	assert.Equal(t, []*Frame{f}, r.delivered)
	assert.Equal(t, uint64(1), p.EntryCount(PhyRx))
	assert.Equal(t, 0, p.Aggregator().Len())
	assert.Equal(t, "preamble-not-detected", DropPreambleNotDetected.String())
}

func TestPhy_StrongForeignSignal(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	rxAt(l, p, 10, TechForeign, -60, 500, nil)
	l.Run()

	assert.Equal(t, []PhyState{PhyCcaBusy, PhyIdle}, r.path())
	assert.Equal(t, uint64(1), p.EntryCount(PhyIdle))
	assert.Empty(t, r.outcomes)
	assert.Equal(t, SimTime(500), p.TimeInState(PhyCcaBusy))
}

func TestPhy_DecodeFailure(t *testing.T) {
	l, p, r := newTestPhy(errormodel.FixedModel{P: 0})
	f := testFrame(100)
	rxAt(l, p, 0, TechNative, -60, p.TxDuration(f), f)
	l.Run()

	assert.Equal(t, []PhyState{PhyCcaBusy, PhyRx, PhyIdle}, r.path())
	assert.Len(t, r.outcomes, 1)
	assert.Equal(t, OutcomeFailure, r.outcomes[0].Kind)
	assert.Equal(t, DropDecodeError, r.outcomes[0].Reason)
	assert.Equal(t, []DropReason{DropDecodeError}, r.lost)
	assert.Empty(t, r.delivered)
}

func TestPhy_Collision(t *testing.T) {
	l, p, r := newTestPhy(errormodel.ThresholdModel{MinSinrDb: 4})
	f1, f2 := testFrame(100), testFrame(100)
	dur := p.TxDuration(f1)
	rxAt(l, p, 0, TechNative, -60, dur, f1)
	rxAt(l, p, 50, TechNative, -60, dur, f2)
	l.Run()

	assert.Len(t, r.outcomes, 2)
	assert.Equal(t, OutcomeDropped, r.outcomes[0].Kind)
	assert.Equal(t, DropCollision, r.outcomes[0].Reason)
	assert.Same(t, f2, r.outcomes[0].Frame)
	assert.Equal(t, SimTime(50), r.outcomes[0].Time)
	// the ongoing reception was not aborted, but its SINR was degraded below the threshold
	assert.Equal(t, OutcomeFailure, r.outcomes[1].Kind)
	assert.Same(t, f1, r.outcomes[1].Frame)
	assert.Equal(t, SimTime(dur), r.outcomes[1].Time)

	// the residual energy of the second frame keeps the medium busy
	assert.Equal(t, []PhyState{PhyCcaBusy, PhyRx, PhyCcaBusy, PhyIdle}, r.path())
	assert.Equal(t, SimTime(50+dur), r.changes[3].Start)
}

func TestPhy_WeakInterfererDegradesOnly(t *testing.T) {
	l, p, r := newTestPhy(errormodel.ThresholdModel{MinSinrDb: 4})
	f := testFrame(100)
	rxAt(l, p, 0, TechNative, -60, p.TxDuration(f), f)
	rxAt(l, p, 30, TechForeign, -85, 50, nil)
	l.Run()

	assert.Equal(t, []PhyState{PhyCcaBusy, PhyRx, PhyIdle}, r.path())
	assert.Len(t, r.outcomes, 1)
	assert.Equal(t, OutcomeSuccess, r.outcomes[0].Kind)
	assert.InDelta(t, 24.73, r.outcomes[0].Info.SinrDb, 0.01)
}

func TestPhy_BackToBackFrames(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	f1, f2 := testFrame(100), testFrame(100)
	dur := p.TxDuration(f1)
	rxAt(l, p, 0, TechNative, -60, dur, f1)
	rxAt(l, p, dur, TechNative, -60, dur, f2)
	l.Run()

	assert.Len(t, r.outcomes, 2)
	assert.Equal(t, OutcomeSuccess, r.outcomes[0].Kind)
	assert.Equal(t, OutcomeSuccess, r.outcomes[1].Kind)
	assert.Equal(t, []*Frame{f1, f2}, r.delivered)
}

func TestPhy_TxAbortsRx(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	long := testFrame(1000)
	short := testFrame(100)
	rxDur := p.TxDuration(long)
	txDur := p.TxDuration(short)
	rxAt(l, p, 0, TechNative, -60, rxDur, long)
	l.ScheduleAt(100, func() {
		assert.Nil(t, p.StartTx(short))
		assert.NotNil(t, p.StartTx(short))
	})
	l.Run()

	assert.Len(t, r.outcomes, 1)
	assert.Equal(t, DropRxAbortedByTx, r.outcomes[0].Reason)
	assert.Equal(t, []PhyState{PhyCcaBusy, PhyRx, PhyTx, PhyCcaBusy, PhyIdle}, r.path())
	assert.Equal(t, SimTime(100+txDur), r.changes[3].Start)
	assert.Equal(t, rxDur, r.changes[4].Start)
}

func TestPhy_NativeDuringTx(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	own := testFrame(1000)
	f := testFrame(100)
	l.ScheduleAt(0, func() {
		assert.Nil(t, p.StartTx(own))
	})
	rxAt(l, p, 10, TechNative, -60, p.TxDuration(f), f)
	l.RunUntil(20)

	assert.Equal(t, PhyTx, p.State())
	assert.Len(t, r.outcomes, 1)
	assert.Equal(t, DropTransmitting, r.outcomes[0].Reason)
	assert.Equal(t, []DropReason{DropTransmitting}, r.lost)

	l.Run()
	assert.Equal(t, []PhyState{PhyTx, PhyIdle}, r.path())
}

func TestPhy_AbortTx(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	l.ScheduleAt(0, func() {
		assert.Nil(t, p.StartTx(testFrame(1000)))
	})
	l.ScheduleAt(50, func() {
		p.AbortTx()
		p.AbortTx()
	})
	l.Run()

	assert.Equal(t, []PhyState{PhyTx, PhyIdle}, r.path())
	assert.Equal(t, SimTime(50), p.TimeInState(PhyTx))
	assert.Equal(t, 0, l.Len())
}

func TestPhy_SetChannel(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	f := testFrame(100)
	rxAt(l, p, 0, TechNative, -60, p.TxDuration(f), f)
	rxAt(l, p, 0, TechForeign, -50, 1000, nil)
	l.ScheduleAt(20, func() {
		p.SetChannel(DefaultServiceChannel)
	})
	l.RunUntil(20)

	assert.Equal(t, DefaultServiceChannel, p.Channel())
	assert.Equal(t, PhyIdle, p.State())
	assert.Len(t, r.outcomes, 1)
	assert.Equal(t, DropChannelSwitching, r.outcomes[0].Reason)

	// a signal on the old channel is filtered
	l.ScheduleAt(30, func() {
		p.StartRx(&interference.Signal{Start: 30, Duration: 100, PowerDbm: -40, Tech: TechForeign,
			Channel: ControlChannel})
	})
	l.Run()
	assert.Equal(t, uint64(1), p.Diagnostics().OffChannel)
	assert.Equal(t, PhyIdle, p.State())
}

func TestPhy_StopRxTruncates(t *testing.T) {
	l, p, r := newTestPhy(errormodel.AwgnModel{})
	f := testFrame(100)
	rxAt(l, p, 0, TechNative, -60, p.TxDuration(f), f)
	l.ScheduleAt(40, func() {
		sig := p.Aggregator().Window(40)[0]
		p.StopRx(sig.Id)
	})
	l.Run()

	assert.Len(t, r.outcomes, 1)
	assert.Equal(t, DropSignalTruncated, r.outcomes[0].Reason)
	assert.Equal(t, []PhyState{PhyCcaBusy, PhyRx, PhyIdle}, r.path())
	assert.Equal(t, SimTime(40), r.changes[2].Start)
}

func TestPhy_ListenerMustNotReenter(t *testing.T) {
	l, p, _ := newTestPhy(errormodel.AwgnModel{})
	p.AddStateListener(func(ch StateChange) {
		_ = p.StartTx(testFrame(10))
	})
	rxAt(l, p, 0, TechForeign, -50, 100, nil)
	assert.Panics(t, func() {
		l.Run()
	})
}

func TestPhy_ListenerOrder(t *testing.T) {
	l, p, _ := newTestPhy(errormodel.AwgnModel{})
	var order []int
	p.AddStateListener(func(ch StateChange) { order = append(order, 1) })
	p.AddStateListener(func(ch StateChange) { order = append(order, 2) })
	rxAt(l, p, 0, TechForeign, -50, 100, nil)
	l.Run()
	assert.Equal(t, []int{1, 2, 1, 2}, order)
}
