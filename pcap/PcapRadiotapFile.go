// Copyright (c) 2020-2023, The OTNS Authors.
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

package pcap

import (
	"encoding/binary"
	"math"

	"github.com/vanetsim/ocb-ns/types"
)

// Radiotap header, see https://www.radiotap.org. Fields are placed in the order of their present
// bits, each aligned to its own size.
const (
	radiotapHeaderSize = 15

	radiotapFlags        = 1
	radiotapRate         = 2
	radiotapChannel      = 3
	radiotapDbmAntSignal = 5

	radiotapFlagFcs = 0x10

	radiotapChan5Ghz     = 0x0100
	radiotapChanOfdm     = 0x0040
	radiotapChanHalfRate = 0x4000
)

// ChannelFrequencyMhz returns the center frequency of a 5 GHz band channel.
func ChannelFrequencyMhz(ch types.ChannelId) uint16 {
	return uint16(5000 + 5*ch)
}

func radiotapHeader(frame Frame) []byte {
	hdr := make([]byte, radiotapHeaderSize)
	hdr[0] = 0 // version
	hdr[1] = 0 // pad
	binary.LittleEndian.PutUint16(hdr[2:4], radiotapHeaderSize)
	present := uint32(1<<radiotapFlags | 1<<radiotapRate | 1<<radiotapChannel | 1<<radiotapDbmAntSignal)
	binary.LittleEndian.PutUint32(hdr[4:8], present)

	hdr[8] = radiotapFlagFcs
	// rate in units of 500 kbit/s
	hdr[9] = byte(frame.RateKbps / 500)
	binary.LittleEndian.PutUint16(hdr[10:12], ChannelFrequencyMhz(frame.Channel))
	binary.LittleEndian.PutUint16(hdr[12:14], radiotapChan5Ghz|radiotapChanOfdm|radiotapChanHalfRate)
	hdr[14] = byte(int8(math.Max(-128, math.Min(127, math.Round(frame.PowerDbm)))))
	return hdr
}
