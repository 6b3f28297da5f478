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

package pcap

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/vanetsim/ocb-ns/types"
)

const (
	fcData        = 0x08
	fcQosData     = 0x88
	fcAction      = 0xd0
	vendorSpecCat = 127
)

// wildcard BSSID used by frames sent outside the context of a BSS.
var wildcardBssid = [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

var tidForAc = [types.NumAccessCategories]byte{0, 1, 5, 6}

func putAddress(b []byte, a types.Address) {
	for i := 0; i < 6; i++ {
		b[i] = byte(uint64(a) >> (8 * (5 - i)))
	}
}

// EncodeFrame renders f as an 802.11 MPDU including FCS, f.SizeBytes() long. Payload bytes not
// carried by the frame are zero.
func EncodeFrame(f *types.Frame) []byte {
	b := make([]byte, f.SizeBytes())
	switch f.Type {
	case types.FrameData:
		b[0] = fcData
	case types.FrameQosData:
		b[0] = fcQosData
	case types.FrameAction:
		b[0] = fcAction
	}
	putAddress(b[4:10], f.Dst)
	putAddress(b[10:16], f.Src)
	copy(b[16:22], wildcardBssid[:])
	binary.LittleEndian.PutUint16(b[22:24], f.Seq<<4)

	body := b[24:]
	switch f.Type {
	case types.FrameQosData:
		body[0] = tidForAc[f.Category&0x3]
		body = body[2:]
	case types.FrameAction:
		body[0] = vendorSpecCat
		body[1] = byte(f.Oui >> 16)
		body[2] = byte(f.Oui >> 8)
		body[3] = byte(f.Oui)
		body[4] = 0
		body = body[5:]
	}
	copy(body[:len(body)-4], f.Payload)

	n := len(b) - 4
	binary.LittleEndian.PutUint32(b[n:], crc32.ChecksumIEEE(b[:n]))
	return b
}
