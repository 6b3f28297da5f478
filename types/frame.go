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

import (
	"fmt"
	"strings"

	"github.com/rs/xid"
)

// AccessCategory is an EDCA traffic category.
type AccessCategory byte

const (
	AcBE AccessCategory = 0
	AcBK AccessCategory = 1
	AcVI AccessCategory = 2
	AcVO AccessCategory = 3

	NumAccessCategories = 4
)

// AccessCategoriesByPriority lists the categories from highest to lowest priority.
var AccessCategoriesByPriority = [NumAccessCategories]AccessCategory{AcVO, AcVI, AcBE, AcBK}

var acNames = [NumAccessCategories]string{"be", "bk", "vi", "vo"}

func (ac AccessCategory) String() string {
	if int(ac) < len(acNames) {
		return acNames[ac]
	}
	return "invalid"
}

// ParseAccessCategory parses a category name, case-insensitive.
func ParseAccessCategory(s string) (AccessCategory, error) {
	s = strings.ToLower(s)
	for i, n := range acNames {
		if n == s {
			return AccessCategory(i), nil
		}
	}
	return AcBE, fmt.Errorf("invalid access category: %s", s)
}

// AccessCategoryForTid maps an 802.1D user priority (TID) to its access category.
func AccessCategoryForTid(tid uint8) AccessCategory {
	switch tid & 0x7 {
	case 1, 2:
		return AcBK
	case 4, 5:
		return AcVI
	case 6, 7:
		return AcVO
	default:
		return AcBE
	}
}

type FrameType byte

const (
	FrameData    FrameType = 0
	FrameQosData FrameType = 1
	// FrameAction is a vendor-specific action management frame.
	FrameAction FrameType = 2
)

func (t FrameType) String() string {
	switch t {
	case FrameData:
		return "data"
	case FrameQosData:
		return "qosdata"
	case FrameAction:
		return "action"
	default:
		return "invalid"
	}
}

const (
	macHeaderBytes    = 24
	qosHeaderBytes    = 2
	fcsBytes          = 4
	actionHeaderBytes = 5 // category, OUI and its length
)

// Frame is a MAC frame. While in flight it is owned by its Signal.
type Frame struct {
	Uid          string
	Type         FrameType
	Category     AccessCategory
	Src          Address
	Dst          Address
	Seq          uint16
	PayloadBytes int
	Payload      []byte
	// Oui is the organization identifier of a vendor-specific action frame.
	Oui  uint32
	Mode TxMode
}

// NewFrame creates a data frame with a fresh unique id.
func NewFrame(src, dst Address, payloadBytes int, ac AccessCategory) *Frame {
	return &Frame{
		Uid:          xid.New().String(),
		Type:         FrameQosData,
		Category:     ac,
		Src:          src,
		Dst:          dst,
		PayloadBytes: payloadBytes,
		Mode:         DefaultTxMode,
	}
}

// SizeBytes returns the PSDU size including MAC header and FCS.
func (f *Frame) SizeBytes() int {
	n := macHeaderBytes + fcsBytes + f.PayloadBytes
	switch f.Type {
	case FrameQosData:
		n += qosHeaderBytes
	case FrameAction:
		n += actionHeaderBytes
	}
	return n
}

func (f *Frame) SizeBits() int {
	return 8 * f.SizeBytes()
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame{%s %s %s->%s ac=%s len=%d}", f.Uid, f.Type, f.Src, f.Dst, f.Category,
		f.SizeBytes())
}
