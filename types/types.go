// Copyright (c) 2022, The OTNS Authors.
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

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type NodeId = int
type ChannelId = int

// SimTime is a point in simulated time, in microseconds since simulation start.
type SimTime = uint64

const (
	Ever        SimTime = math.MaxUint64
	Microsecond SimTime = 1
	Millisecond SimTime = 1000
	Second      SimTime = 1000000
)

const (
	InvalidNodeId NodeId = 0

	// ControlChannel is the 802.11p/1609.4 control channel (CCH).
	ControlChannel ChannelId = 178
	// DefaultServiceChannel is the service channel (SCH) used when none is configured.
	DefaultServiceChannel ChannelId = 172
)

// Address is a 48-bit IEEE 802 MAC address.
type Address uint64

const (
	BroadcastAddress Address = 0xffffffffffff
	InvalidAddress   Address = 0
)

// NodeAddress returns the locally administered unicast address used for a simulated node.
func NodeAddress(id NodeId) Address {
	return Address(0x020000000000 | uint64(id)&0xffffffff)
}

func (a Address) IsBroadcast() bool {
	return a == BroadcastAddress
}

func (a Address) String() string {
	var sb strings.Builder
	for i := 5; i >= 0; i-- {
		_, _ = fmt.Fprintf(&sb, "%02x", byte(uint64(a)>>(8*i)))
		if i > 0 {
			sb.WriteByte(':')
		}
	}
	return sb.String()
}

// ParseAddress parses an address in colon-separated hex notation ("02:00:00:00:00:01"),
// or the special value "ff" / "bcast" for the broadcast address.
func ParseAddress(s string) (Address, error) {
	if s == "bcast" || s == "ff" {
		return BroadcastAddress, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return InvalidAddress, fmt.Errorf("invalid address: %s", s)
	}
	var a uint64
	for _, p := range parts {
		b, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return InvalidAddress, fmt.Errorf("invalid address: %s", s)
		}
		a = a<<8 | b
	}
	return Address(a), nil
}

func GetNodeName(id NodeId) string {
	return fmt.Sprintf("Node<%d>", id)
}
