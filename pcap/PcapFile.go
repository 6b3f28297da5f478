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

package pcap

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"

	"github.com/vanetsim/ocb-ns/types"
)

type FrameType int

const (
	FrameTypeOff FrameType = iota
	FrameTypeWlan
	FrameTypeWlanRadiotap
	FrameTypeUnknown
)

const (
	FrameTypeOffStr          string = "off"
	FrameTypeWlanStr         string = "wlan"
	FrameTypeWlanRadiotapStr string = "wlan-radiotap"
)

const (
	dltIeee80211        = 105
	dltIeee80211Radio   = 127
	pcapMagicNumber     = 0xA1B2C3D4
	pcapVersionMajor    = 2
	pcapVersionMinor    = 4
	pcapFileHeaderSize  = 24
	pcapFrameHeaderSize = 16
	pcapSnapLen         = 65535
)

// File represents a PCAP file
type File interface {
	AppendFrame(frame Frame) error
	Sync() error
	Close() error
}

// Frame represents a single radio frame that can be added to a PCAP file
type Frame struct {
	Timestamp types.SimTime
	Data      []byte
	Channel   types.ChannelId
	RateKbps  int
	PowerDbm  types.DbValue
}

// pcapFile writes frames with a per-frame prefix produced by prefix, which may be nil.
type pcapFile struct {
	fd     *os.File
	prefix func(frame Frame) []byte
}

// NewFile creates a new PCAP file with all frames using specified frameType
func NewFile(filename string, frameType FrameType) (File, error) {
	switch frameType {
	case FrameTypeWlan:
		return newPcapFile(filename, dltIeee80211, nil)
	case FrameTypeWlanRadiotap:
		return newPcapFile(filename, dltIeee80211Radio, radiotapHeader)
	default:
		return nil, errors.Errorf("invalid PCAP frame type: %d", frameType)
	}
}

func ParseFrameTypeStr(tp string) FrameType {
	switch tp {
	case FrameTypeOffStr, "":
		return FrameTypeOff
	case FrameTypeWlanStr:
		return FrameTypeWlan
	case FrameTypeWlanRadiotapStr:
		return FrameTypeWlanRadiotap
	default:
		return FrameTypeUnknown
	}
}

func newPcapFile(filename string, linkType uint32, prefix func(frame Frame) []byte) (File, error) {
	fd, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	pf := &pcapFile{
		fd:     fd,
		prefix: prefix,
	}

	if err = pf.writeHeader(linkType); err != nil {
		_ = pf.Close()
		return nil, err
	}

	return pf, nil
}

func (pf *pcapFile) AppendFrame(frame Frame) error {
	var prefix []byte
	if pf.prefix != nil {
		prefix = pf.prefix(frame)
	}

	var header [pcapFrameHeaderSize]byte
	sec := uint32(frame.Timestamp / types.Second)
	usec := uint32(frame.Timestamp % types.Second)
	binary.LittleEndian.PutUint32(header[:4], sec)
	binary.LittleEndian.PutUint32(header[4:8], usec)
	plen := uint32(len(prefix) + len(frame.Data))
	binary.LittleEndian.PutUint32(header[8:12], plen)
	binary.LittleEndian.PutUint32(header[12:16], plen)

	if _, err := pf.fd.Write(header[:]); err != nil {
		return err
	}
	if _, err := pf.fd.Write(prefix); err != nil {
		return err
	}
	_, err := pf.fd.Write(frame.Data)
	return err
}

func (pf *pcapFile) Sync() error {
	return pf.fd.Sync()
}

func (pf *pcapFile) Close() error {
	return pf.fd.Close()
}

func (pf *pcapFile) writeHeader(linkType uint32) error {
	var header [pcapFileHeaderSize]byte
	binary.LittleEndian.PutUint32(header[:4], pcapMagicNumber)
	binary.LittleEndian.PutUint16(header[4:6], pcapVersionMajor)
	binary.LittleEndian.PutUint16(header[6:8], pcapVersionMinor)
	binary.LittleEndian.PutUint32(header[8:12], 0)
	binary.LittleEndian.PutUint32(header[12:16], 0)
	binary.LittleEndian.PutUint32(header[16:20], pcapSnapLen)
	binary.LittleEndian.PutUint32(header[20:24], linkType)
	if _, err := pf.fd.Write(header[:]); err != nil {
		return err
	}
	return pf.fd.Sync()
}
