// Copyright (c) 2020-2024, The OTNS Authors.
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

package event

import (
	"container/heap"

	"github.com/vanetsim/ocb-ns/logger"
	. "github.com/vanetsim/ocb-ns/types"
)

// Scheduler is the event scheduling service used by the radio components.
type Scheduler interface {
	// Now returns the current simulated time.
	Now() SimTime
	// ScheduleAt schedules callback to run at timestamp ts, which must not be in the past.
	ScheduleAt(ts SimTime, callback func()) Handle
	// ScheduleAtPriority is ScheduleAt with an explicit tie-break class.
	ScheduleAtPriority(ts SimTime, prio Priority, callback func()) Handle
	// Cancel removes a scheduled event. It returns false if the event already ran or was cancelled.
	Cancel(h Handle) bool
}

// Handle refers to a scheduled event. The zero Handle refers to no event.
type Handle struct {
	e *entry
}

// IsPending returns true if the event is still scheduled.
func (h Handle) IsPending() bool {
	return h.e != nil && h.e.index >= 0
}

// Timestamp returns the time the event is scheduled at, or Ever if it is not pending.
func (h Handle) Timestamp() SimTime {
	if !h.IsPending() {
		return Ever
	}
	return h.e.Timestamp
}

// Loop is a single-threaded discrete-event loop. Events are executed in order of
// (timestamp, priority, scheduling order).
type Loop struct {
	q       eventQueue
	now     SimTime
	seq     uint64
	handled uint64
}

func NewLoop() *Loop {
	l := &Loop{
		q: eventQueue{},
	}
	heap.Init(&l.q)
	return l
}

func (l *Loop) Now() SimTime {
	return l.now
}

func (l *Loop) ScheduleAt(ts SimTime, callback func()) Handle {
	return l.ScheduleAtPriority(ts, PriorityNormal, callback)
}

func (l *Loop) ScheduleAtPriority(ts SimTime, prio Priority, callback func()) Handle {
	logger.AssertTruef(ts >= l.now, "scheduling event in the past: %d < %d", ts, l.now)
	logger.AssertNotNil(callback)

	l.seq++
	e := &entry{
		Timestamp: ts,
		Priority:  prio,
		seq:       l.seq,
		callback:  callback,
	}
	heap.Push(&l.q, e)
	return Handle{e}
}

// ScheduleIn schedules callback to run after delay d from now.
func (l *Loop) ScheduleIn(d SimTime, callback func()) Handle {
	return l.ScheduleAt(l.now+d, callback)
}

func (l *Loop) Cancel(h Handle) bool {
	if !h.IsPending() {
		return false
	}
	heap.Remove(&l.q, h.e.index)
	return true
}

// Len returns the number of pending events.
func (l *Loop) Len() int {
	return len(l.q)
}

// NextTimestamp returns the timestamp of the next pending event, or Ever.
func (l *Loop) NextTimestamp() SimTime {
	if len(l.q) == 0 {
		return Ever
	}
	return l.q[0].Timestamp
}

// HandledCount returns the number of events executed so far.
func (l *Loop) HandledCount() uint64 {
	return l.handled
}

// Step executes the next event. It returns false if no event was pending.
func (l *Loop) Step() bool {
	if len(l.q) == 0 {
		return false
	}
	e := heap.Pop(&l.q).(*entry)
	l.now = e.Timestamp
	l.handled++
	e.callback()
	return true
}

// RunUntil executes all events with a timestamp up to and including ts, then advances
// the clock to ts.
func (l *Loop) RunUntil(ts SimTime) {
	for len(l.q) > 0 && l.q[0].Timestamp <= ts {
		l.Step()
	}
	if ts > l.now && ts != Ever {
		l.now = ts
	}
}

// Run executes events until none are pending.
func (l *Loop) Run() {
	for l.Step() {
	}
}
