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

package phy

import (
	. "github.com/vanetsim/ocb-ns/types"
)

// Config holds the radio parameters of one PHY.
type Config struct {
	// RxSensitivityDbm is the minimum own power of a native signal to start a reception.
	RxSensitivityDbm DbValue `yaml:"rx-sensitivity"`
	// CcaEdThresholdDbm is the aggregate power at or above which the medium is sensed busy.
	CcaEdThresholdDbm   DbValue   `yaml:"cca-ed-threshold"`
	NoiseFigureDb       DbValue   `yaml:"noise-figure"`
	ChannelWidthMhz     float64   `yaml:"channel-width"`
	PreambleDetectionUs SimTime   `yaml:"preamble-detection"`
	TxPowerDbm          DbValue   `yaml:"tx-power"`
	Channel             ChannelId `yaml:"channel"`
}

func DefaultConfig() Config {
	return Config{
		RxSensitivityDbm:    -101.0,
		CcaEdThresholdDbm:   -62.0,
		NoiseFigureDb:       7.0,
		ChannelWidthMhz:     10.0,
		PreambleDetectionUs: 4,
		TxPowerDbm:          20.0,
		Channel:             ControlChannel,
	}
}

func (c Config) NoiseFloorDbm() DbValue {
	return NoiseFloorDbm(c.ChannelWidthMhz, c.NoiseFigureDb)
}
