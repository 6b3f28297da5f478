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

// AwgnModel uses the uncoded bit error rate of the mode's modulation in an AWGN channel,
// treating interference as noise.
type AwgnModel struct{}

func (m AwgnModel) Name() string {
	return AwgnModelName
}

func (m AwgnModel) Decode(mode TxMode, sizeBits int, trace SinrTrace) float64 {
	return decodeByChunks(sizeBits, trace, func(sinr float64) float64 {
		return awgnBer(mode.Modulation, sinr)
	})
}

// awgnBer returns the bit error rate at linear symbol SNR snr.
func awgnBer(mod Modulation, snr float64) float64 {
	switch mod {
	case ModBpsk:
		return 0.5 * math.Erfc(math.Sqrt(snr))
	case ModQpsk:
		return 0.5 * math.Erfc(math.Sqrt(snr/2.0))
	case ModQam16:
		return qamBer(16, snr)
	case ModQam64:
		return qamBer(64, snr)
	default:
		return 1.0
	}
}

// qamBer is the Gray-coded square M-QAM approximation.
func qamBer(m float64, snr float64) float64 {
	k := math.Log2(m)
	return (2.0 / k) * (1.0 - 1.0/math.Sqrt(m)) * math.Erfc(math.Sqrt(3.0*snr/(2.0*(m-1.0))))
}

// ThresholdModel decodes a frame if and only if the SINR never drops below MinSinrDb.
type ThresholdModel struct {
	MinSinrDb DbValue
}

func (m ThresholdModel) Name() string {
	return ThresholdModelName
}

func (m ThresholdModel) Decode(mode TxMode, sizeBits int, trace SinrTrace) float64 {
	if len(trace) == 0 {
		return 0.0
	}
	if RatioToDb(trace.MinSinr()) >= m.MinSinrDb {
		return 1.0
	}
	return 0.0
}

// FixedModel returns the same success probability for every reception.
type FixedModel struct {
	P float64
}

func (m FixedModel) Name() string {
	return FixedModelName
}

func (m FixedModel) Decode(mode TxMode, sizeBits int, trace SinrTrace) float64 {
	return m.P
}
