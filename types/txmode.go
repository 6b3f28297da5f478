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

// Modulation of the OFDM subcarriers.
type Modulation byte

const (
	ModBpsk  Modulation = 0
	ModQpsk  Modulation = 1
	ModQam16 Modulation = 2
	ModQam64 Modulation = 3
)

func (m Modulation) String() string {
	switch m {
	case ModBpsk:
		return "BPSK"
	case ModQpsk:
		return "QPSK"
	case ModQam16:
		return "16-QAM"
	case ModQam64:
		return "64-QAM"
	default:
		return "invalid"
	}
}

// BitsPerSubcarrier returns the coded bits carried per subcarrier.
func (m Modulation) BitsPerSubcarrier() int {
	return 1 << m
}

// TxMode holds the modulation and coding parameters of a transmission.
type TxMode struct {
	Name       string
	Modulation Modulation
	CodeRate   float64
	// DataRateKbps is the PHY data rate.
	DataRateKbps int
	// DataBitsPerSymbol is NDBPS, the data bits per OFDM symbol.
	DataBitsPerSymbol int
}

// 802.11p OFDM PHY timing for 10 MHz channels.
const (
	OfdmPreambleUs SimTime = 32
	OfdmSignalUs   SimTime = 8
	OfdmSymbolUs   SimTime = 8
	// service field (16) plus tail bits (6)
	ofdmServiceTailBits = 22
)

var (
	OfdmRate3Mbps   = TxMode{"OfdmRate3MbpsBW10MHz", ModBpsk, 1.0 / 2, 3000, 24}
	OfdmRate4_5Mbps = TxMode{"OfdmRate4_5MbpsBW10MHz", ModBpsk, 3.0 / 4, 4500, 36}
	OfdmRate6Mbps   = TxMode{"OfdmRate6MbpsBW10MHz", ModQpsk, 1.0 / 2, 6000, 48}
	OfdmRate9Mbps   = TxMode{"OfdmRate9MbpsBW10MHz", ModQpsk, 3.0 / 4, 9000, 72}
	OfdmRate12Mbps  = TxMode{"OfdmRate12MbpsBW10MHz", ModQam16, 1.0 / 2, 12000, 96}
	OfdmRate18Mbps  = TxMode{"OfdmRate18MbpsBW10MHz", ModQam16, 3.0 / 4, 18000, 144}
	OfdmRate24Mbps  = TxMode{"OfdmRate24MbpsBW10MHz", ModQam64, 2.0 / 3, 24000, 192}
	OfdmRate27Mbps  = TxMode{"OfdmRate27MbpsBW10MHz", ModQam64, 3.0 / 4, 27000, 216}

	DefaultTxMode = OfdmRate6Mbps

	txModes = []TxMode{OfdmRate3Mbps, OfdmRate4_5Mbps, OfdmRate6Mbps, OfdmRate9Mbps, OfdmRate12Mbps,
		OfdmRate18Mbps, OfdmRate24Mbps, OfdmRate27Mbps}
)

// TxModeByRate returns the predefined mode with the given data rate in kbit/s.
func TxModeByRate(kbps int) (TxMode, bool) {
	for _, m := range txModes {
		if m.DataRateKbps == kbps {
			return m, true
		}
	}
	return TxMode{}, false
}

// TxDuration returns the on-air time of a PSDU of sizeBytes sent with this mode.
func (m TxMode) TxDuration(sizeBytes int) SimTime {
	bits := ofdmServiceTailBits + 8*sizeBytes
	symbols := (bits + m.DataBitsPerSymbol - 1) / m.DataBitsPerSymbol
	return OfdmPreambleUs + OfdmSignalUs + SimTime(symbols)*OfdmSymbolUs
}

// BitsIn returns the number of data bits carried during duration us of the payload.
func (m TxMode) BitsIn(duration SimTime) float64 {
	return float64(duration) * float64(m.DataRateKbps) / 1000.0
}
