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

// RxSignalInfo describes the reception conditions of a frame.
type RxSignalInfo struct {
	RssiDbm DbValue
	// SinrDb is the lowest SINR seen during the frame.
	SinrDb      DbValue
	Mode        TxMode
	PSuccess    float64
	Channel     ChannelId
	Transmitter NodeId
}

// Outcome is emitted exactly once for every native frame that reached the state machine.
type Outcome struct {
	Time   SimTime
	Kind   OutcomeKind
	Reason DropReason
	Frame  *Frame
	Info   RxSignalInfo
}

type StateListener func(ch StateChange)
type OutcomeListener func(o Outcome)

// UpperLayer receives the frames decoded by the PHY.
type UpperLayer interface {
	FrameDelivered(f *Frame, info RxSignalInfo)
	FrameLost(f *Frame, reason DropReason)
}

// Medium delivers a transmission to the other radios. The returned function, if not nil, stops an
// ongoing delivery early.
type Medium interface {
	Transmit(src *Phy, f *Frame, txPowerDbm DbValue, channel ChannelId, duration SimTime) func()
}

// Diagnostics counts signals filtered before reaching the state machine.
type Diagnostics struct {
	BelowSensitivity uint64 `yaml:"below-sensitivity"`
	OffChannel       uint64 `yaml:"off-channel"`
	ForeignBelowCca  uint64 `yaml:"foreign-below-cca"`
	ForeignAboveCca  uint64 `yaml:"foreign-above-cca"`
}
