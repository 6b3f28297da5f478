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

package types

// PhyState is the state of a radio interface. Exactly one value holds at any instant.
type PhyState byte

const (
	PhyIdle    PhyState = 0
	PhyCcaBusy PhyState = 1
	PhyRx      PhyState = 2
	PhyTx      PhyState = 3

	NumPhyStates = 4
)

var phyStateNames = [NumPhyStates]string{"IDLE", "CCA_BUSY", "RX", "TX"}

func (s PhyState) String() string {
	if int(s) < len(phyStateNames) {
		return phyStateNames[s]
	}
	return "INVALID"
}

// ParsePhyState returns the PhyState for its name; ok is false for unknown names.
func ParsePhyState(name string) (PhyState, bool) {
	for i, n := range phyStateNames {
		if n == name {
			return PhyState(i), true
		}
	}
	return PhyIdle, false
}

// Technology tags a signal as decodable by the local radio (native) or not (foreign).
type Technology byte

const (
	TechNative  Technology = 0
	TechForeign Technology = 1
)

func (t Technology) String() string {
	switch t {
	case TechNative:
		return "native"
	case TechForeign:
		return "foreign"
	default:
		return "invalid"
	}
}

// DropReason explains why a received frame was not delivered.
type DropReason byte

const (
	DropNone DropReason = iota
	DropDecodeError
	DropCollision
	DropTransmitting
	DropRxAbortedByTx
	DropChannelSwitching
	DropSignalTruncated
	DropNotForUs
	DropReset
	DropPreambleNotDetected

	NumDropReasons
)

var dropReasonNames = [NumDropReasons]string{"none", "decode-error", "collision", "transmitting",
	"rx-aborted-by-tx", "channel-switching", "signal-truncated", "not-for-us", "reset",
	"preamble-not-detected"}

func (r DropReason) String() string {
	if int(r) < len(dropReasonNames) {
		return dropReasonNames[r]
	}
	return "invalid"
}

// OutcomeKind is the final result of a reception attempt.
type OutcomeKind byte

const (
	OutcomeSuccess OutcomeKind = 0
	OutcomeFailure OutcomeKind = 1
	OutcomeDropped OutcomeKind = 2
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeDropped:
		return "dropped"
	default:
		return "invalid"
	}
}
