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

package interference

import (
	"fmt"

	"github.com/vanetsim/ocb-ns/event"
	. "github.com/vanetsim/ocb-ns/types"
)

type SignalId uint64

const InvalidSignalId SignalId = 0

// PowerSegment changes the received power of a signal from Offset (relative to the signal start) onwards.
type PowerSegment struct {
	Offset   SimTime
	PowerDbm DbValue
}

// Signal is radio energy present at a receiver during [Start, Start+Duration).
type Signal struct {
	Id       SignalId
	Start    SimTime
	Duration SimTime
	// PowerDbm is the received power at Start.
	PowerDbm DbValue
	// Segments optionally make the received power piecewise-constant over time, in ascending Offset order.
	Segments []PowerSegment
	Tech     Technology
	Channel  ChannelId
	Src      NodeId
	// Frame is carried by native signals only.
	Frame *Frame

	end       SimTime
	truncated bool
	expired   bool
	tracked   bool
	expireEvt event.Handle
	segEvts   []event.Handle
}

// End returns the end of the signal: its declared end, or the time it was removed early.
func (s *Signal) End() SimTime {
	if s.truncated {
		return s.end
	}
	return s.Start + s.Duration
}

// IsExpired returns true once the signal has ended or was removed.
func (s *Signal) IsExpired() bool {
	return s.expired
}

// PowerDbmAt returns the received power at time t (-Inf outside the signal).
func (s *Signal) PowerDbmAt(t SimTime) DbValue {
	return WToDbm(s.PowerW(t))
}

// PowerW returns the received power in watts at time t.
func (s *Signal) PowerW(t SimTime) float64 {
	if t < s.Start || t >= s.End() {
		return 0
	}
	p := s.PowerDbm
	for _, seg := range s.Segments {
		if s.Start+seg.Offset > t {
			break
		}
		p = seg.PowerDbm
	}
	return DbmToW(p)
}

// overlaps returns true if the signal is present somewhere in [from, to).
func (s *Signal) overlaps(from, to SimTime) bool {
	return s.Start < to && s.End() > from
}

func (s *Signal) String() string {
	return fmt.Sprintf("Signal{%d %s ch=%d src=%d %d+%dus %.1fdBm}", s.Id, s.Tech, s.Channel, s.Src,
		s.Start, s.Duration, s.PowerDbm)
}
