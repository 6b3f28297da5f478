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

import "math"

// DbValue is a value in dB or dBm.
type DbValue = float64

const (
	// ThermalNoiseDbmPerHz is the thermal noise density at 290 K.
	ThermalNoiseDbmPerHz DbValue = -174.0
)

// DbmToW converts a power in dBm to watts.
func DbmToW(dbm DbValue) float64 {
	return math.Pow(10.0, (dbm-30.0)/10.0)
}

// WToDbm converts a power in watts to dBm. Zero power maps to -Inf.
func WToDbm(w float64) DbValue {
	if w <= 0 {
		return math.Inf(-1)
	}
	return 10.0*math.Log10(w) + 30.0
}

func DbToRatio(db DbValue) float64 {
	return math.Pow(10.0, db/10.0)
}

func RatioToDb(ratio float64) DbValue {
	if ratio <= 0 {
		return math.Inf(-1)
	}
	return 10.0 * math.Log10(ratio)
}

// NoiseFloorDbm returns the receiver noise floor for the given bandwidth and noise figure.
func NoiseFloorDbm(bandwidthMhz float64, noiseFigureDb DbValue) DbValue {
	return ThermalNoiseDbmPerHz + 10.0*math.Log10(bandwidthMhz*1e6) + noiseFigureDb
}
