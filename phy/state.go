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
	. "github.com/vanetsim/ocb-ns/types"
)

// StateChange describes one PHY state transition.
type StateChange struct {
	// Start is the time the new state was entered.
	Start         SimTime
	PriorState    PhyState
	PriorDuration SimTime
	NewState      PhyState
}

// stateHelper holds the current state and accounts the time spent in each state.
type stateHelper struct {
	state   PhyState
	since   SimTime
	timeIn  [NumPhyStates]SimTime
	entries [NumPhyStates]uint64
}

func newStateHelper(now SimTime) stateHelper {
	return stateHelper{
		state: PhyIdle,
		since: now,
	}
}

// switchTo enters state s at time now. It returns false if s is already the current state.
func (h *stateHelper) switchTo(now SimTime, s PhyState) (StateChange, bool) {
	if s == h.state {
		return StateChange{}, false
	}
	ch := StateChange{
		Start:         now,
		PriorState:    h.state,
		PriorDuration: now - h.since,
		NewState:      s,
	}
	h.timeIn[h.state] += ch.PriorDuration
	h.entries[s]++
	h.state = s
	h.since = now
	return ch, true
}

// timeInState returns the cumulative time spent in s up to now, including the ongoing period.
func (h *stateHelper) timeInState(s PhyState, now SimTime) SimTime {
	t := h.timeIn[s]
	if s == h.state {
		t += now - h.since
	}
	return t
}
