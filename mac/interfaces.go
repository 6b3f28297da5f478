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

package mac

import (
	"github.com/vanetsim/ocb-ns/phy"
	. "github.com/vanetsim/ocb-ns/types"
)

// Transmitter is the part of the PHY used by the Coordinator to send frames.
//
//go:generate mockgen -destination=mock_transmitter_test.go -package=mac -self_package=github.com/vanetsim/ocb-ns/mac . Transmitter
type Transmitter interface {
	TxDuration(f *Frame) SimTime
	StartTx(f *Frame) error
	AbortTx()
	SetChannel(ch ChannelId)
}

// UpperLayer receives the frames accepted by the Coordinator.
type UpperLayer interface {
	Receive(f *Frame, info phy.RxSignalInfo)
}

// VendorSpecificHandler handles a received vendor-specific action frame.
type VendorSpecificHandler func(f *Frame, info phy.RxSignalInfo)

type EventKind byte

const (
	EventEnqueued EventKind = iota
	EventRejected
	EventTxStart
	EventTxDone
	EventCancelled
	EventFlushed
	EventReceived
	EventLost
	EventSuspended
	EventResumed
	EventChannelSwitch
)

var eventKindNames = []string{"enqueued", "rejected", "tx-start", "tx-done", "cancelled", "flushed",
	"received", "lost", "suspended", "resumed", "channel-switch"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "invalid"
}

// Event is emitted to observers on every queue and channel access change.
type Event struct {
	Time     SimTime
	Kind     EventKind
	Category AccessCategory
	Frame    *Frame
	Reason   DropReason
	Channel  ChannelId
	// QueueLen is the length of the category's queue after the change.
	QueueLen int
}

type Listener func(ev Event)

// ChannelState is a snapshot of the channel access state.
type ChannelState struct {
	Suspended bool      `yaml:"suspended"`
	BusyUntil SimTime   `yaml:"busy-until"`
	Channel   ChannelId `yaml:"channel"`
}
