// Copyright (c) 2020, The OTNS Authors.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanetsim/ocb-ns/types"
)

func getFileSize(t *testing.T, fname string) int {
	stat, err := os.Stat(fname)
	require.Nil(t, err)
	return int(stat.Size())
}

func TestParseFrameTypeStr(t *testing.T) {
	assert.Equal(t, FrameTypeOff, ParseFrameTypeStr("off"))
	assert.Equal(t, FrameTypeOff, ParseFrameTypeStr(""))
	assert.Equal(t, FrameTypeWlan, ParseFrameTypeStr("wlan"))
	assert.Equal(t, FrameTypeWlanRadiotap, ParseFrameTypeStr("wlan-radiotap"))
	assert.Equal(t, FrameTypeUnknown, ParseFrameTypeStr("wpan"))

	_, err := NewFile(filepath.Join(t.TempDir(), "x.pcap"), FrameTypeOff)
	assert.NotNil(t, err)
}

func TestPcapFile(t *testing.T) {
	pcapFilename := filepath.Join(t.TempDir(), "test.pcap")
	pcap, err := NewFile(pcapFilename, FrameTypeWlan)
	require.Nil(t, err)

	defer func() {
		_ = pcap.Close()
	}()

	require.Nil(t, pcap.Sync())
	assert.Equal(t, pcapFileHeaderSize, getFileSize(t, pcapFilename))

	for i := 0; i < 10; i++ {
		frame := Frame{
			Timestamp: types.SimTime(i) * 1000,
			Data:      []byte{0x12, 0x10, 0xa6, 0x80, 0x65},
			Channel:   178,
			PowerDbm:  20,
		}
		require.Nil(t, pcap.AppendFrame(frame))
		require.Nil(t, pcap.Sync())
		assert.Equal(t, pcapFileHeaderSize+(pcapFrameHeaderSize+5)*(i+1), getFileSize(t, pcapFilename))
	}

	data, err := os.ReadFile(pcapFilename)
	require.Nil(t, err)
	assert.Equal(t, uint32(dltIeee80211), binary.LittleEndian.Uint32(data[20:24]))
	// second frame at 1 ms
	rec := data[pcapFileHeaderSize+pcapFrameHeaderSize+5:]
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(rec[0:4]))
	assert.Equal(t, uint32(1000), binary.LittleEndian.Uint32(rec[4:8]))
}

func TestPcapRadiotapFile(t *testing.T) {
	pcapFilename := filepath.Join(t.TempDir(), "test_radiotap.pcap")
	pcap, err := NewFile(pcapFilename, FrameTypeWlanRadiotap)
	require.Nil(t, err)

	require.Nil(t, pcap.AppendFrame(Frame{
		Timestamp: 2*types.Second + 5,
		Data:      []byte{1, 2, 3},
		Channel:   178,
		RateKbps:  6000,
		PowerDbm:  -71.6,
	}))
	require.Nil(t, pcap.Close())

	data, err := os.ReadFile(pcapFilename)
	require.Nil(t, err)
	require.Equal(t, pcapFileHeaderSize+pcapFrameHeaderSize+radiotapHeaderSize+3, len(data))
	assert.Equal(t, uint32(dltIeee80211Radio), binary.LittleEndian.Uint32(data[20:24]))

	rec := data[pcapFileHeaderSize:]
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(rec[0:4]))
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(rec[4:8]))
	assert.Equal(t, uint32(radiotapHeaderSize+3), binary.LittleEndian.Uint32(rec[8:12]))

	rt := rec[pcapFrameHeaderSize:]
	assert.Equal(t, uint16(radiotapHeaderSize), binary.LittleEndian.Uint16(rt[2:4]))
	assert.Equal(t, byte(12), rt[9])
	assert.Equal(t, uint16(5890), binary.LittleEndian.Uint16(rt[10:12]))
	assert.Equal(t, int8(-72), int8(rt[14]))
	assert.Equal(t, []byte{1, 2, 3}, rt[radiotapHeaderSize:])
}

func TestEncodeFrame(t *testing.T) {
	f := types.NewFrame(types.NodeAddress(1), types.BroadcastAddress, 10, types.AcVO)
	f.Seq = 3
	f.Payload = []byte("abc")
	b := EncodeFrame(f)
	require.Equal(t, f.SizeBytes(), len(b))
	assert.Equal(t, byte(fcQosData), b[0])
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, b[4:10])
	assert.Equal(t, []byte{0x02, 0, 0, 0, 0, 0x01}, b[10:16])
	assert.Equal(t, uint16(3<<4), binary.LittleEndian.Uint16(b[22:24]))
	assert.Equal(t, byte(6), b[24])
	assert.Equal(t, []byte("abc"), b[26:29])
	n := len(b) - 4
	assert.Equal(t, crc32.ChecksumIEEE(b[:n]), binary.LittleEndian.Uint32(b[n:]))

	action := &types.Frame{Type: types.FrameAction, Src: types.NodeAddress(2), Dst: types.NodeAddress(3), Oui: 0x001bc5,
		PayloadBytes: 2, Payload: []byte{9, 9}}
	b = EncodeFrame(action)
	require.Equal(t, action.SizeBytes(), len(b))
	assert.Equal(t, byte(fcAction), b[0])
	assert.Equal(t, []byte{vendorSpecCat, 0x00, 0x1b, 0xc5, 0}, b[24:29])
	assert.Equal(t, []byte{9, 9}, b[29:31])
}
