// Copyright (c) 2024, The OTNS Authors.
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

package stats

import . "github.com/vanetsim/ocb-ns/types"

// RadioCounters is a snapshot of named per-radio counters, e.g. "phy.rx.success".
type RadioCounters map[string]uint64

// ChannelStats is the accumulated medium usage of one channel.
type ChannelStats struct {
	TxTimeUs  SimTime
	NumFrames uint64
}

type KpiTimeUs struct {
	StartTimeUs SimTime `json:"start"`
	EndTimeUs   SimTime `json:"end"`
	PeriodUs    SimTime `json:"duration"`
}

type KpiTimeSec struct {
	StartTimeSec float64 `json:"start"`
	EndTimeSec   float64 `json:"end"`
	PeriodSec    float64 `json:"duration"`
}

type KpiChannel struct {
	TxTimeUs     SimTime `json:"tx_time_us"`
	TxPercentage float64 `json:"tx_percent"`
	NumFrames    uint64  `json:"tx_frames"`
	AvgFps       float64 `json:"tx_avg_fps"`
}

type KpiPhy struct {
	RxSuccessPercentage map[NodeId]float64 `json:"rx_success_percent"`
	TxPercentage        map[NodeId]float64 `json:"tx_time_percent"`
}

type KpiMac struct {
	CancelledPercentage map[NodeId]float64 `json:"cancelled_percent"`
}

type Kpi struct {
	FileTime string                   `json:"created"`
	Status   string                   `json:"status"`
	TimeUs   KpiTimeUs                `json:"time_us"`
	TimeSec  KpiTimeSec               `json:"time_sec"`
	Channels map[ChannelId]KpiChannel `json:"channels"`
	Phy      KpiPhy                   `json:"phy"`
	Mac      KpiMac                   `json:"mac"`
	Counters map[NodeId]RadioCounters `json:"counters"`
}
