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

package errormodel

import (
	"math"

	. "github.com/vanetsim/ocb-ns/types"
)

// reference: IEEE 802.15.4-2006, E.4.1.8 Bit Error Rate (BER) calculations.
// Coefficients are (-1)^k * C(16,k) for k = 2..16.
var (
	binomialCoeff = []float64{120, -560, 1820, -4368, 8008, -11440, 12870, -11440, 8008, -4368, 1820, -560, 120, -16, 1}
)

// Ieee802154Model is the O-QPSK DSSS error model of 802.15.4 at 2.4 GHz. It ignores the
// transmit mode and can be used to model foreign-technology receivers.
type Ieee802154Model struct{}

func (m Ieee802154Model) Name() string {
	return Ieee802154Name
}

func (m Ieee802154Model) Decode(mode TxMode, sizeBits int, trace SinrTrace) float64 {
	return decodeByChunks(sizeBits, trace, oqpskBer)
}

func oqpskBer(sinr float64) float64 {
	// at a linear SINR of 4 (6 dB) or more the success probability of any regular frame is ~1.0.
	if sinr >= 4.0 {
		return 0.0
	}
	ber := 0.0
	for idx, coeff := range binomialCoeff {
		k := float64(idx + 2)
		ber += coeff * math.Exp(20.0*sinr*(1.0/k-1.0))
	}
	ber = ber * 8.0 / 15.0 / 16.0
	return math.Min(math.Max(ber, 0), 1.0)
}
