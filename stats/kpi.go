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

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/vanetsim/ocb-ns/logger"
	. "github.com/vanetsim/ocb-ns/types"
)

// Source provides the raw counters the KPIs are computed from.
type Source interface {
	Now() SimTime
	Radios() []NodeId
	RadioCounters(id NodeId) RadioCounters
	ChannelStats() map[ChannelId]ChannelStats
}

type KpiManager struct {
	src           Source
	data          *Kpi
	startCounters map[NodeId]RadioCounters
	curCounters   map[NodeId]RadioCounters
	startChannels map[ChannelId]ChannelStats
	curChannels   map[ChannelId]ChannelStats
	isRunning     bool
}

// NewKpiManager creates a new KPI manager/bookkeeper.
func NewKpiManager() *KpiManager {
	return &KpiManager{}
}

// Init binds the KPI manager to the given counter source.
func (km *KpiManager) Init(src Source) {
	logger.AssertNil(km.src)
	logger.AssertFalse(km.isRunning)
	km.src = src
	km.data = &Kpi{Status: "ok"}
	km.startCounters = map[NodeId]RadioCounters{}
	km.curCounters = map[NodeId]RadioCounters{}
}

func (km *KpiManager) Start() {
	logger.AssertNotNil(km.src)
	km.data = &Kpi{Status: "ok"}
	km.startCounters = km.retrieveRadioCounters()
	km.startChannels = km.src.ChannelStats()
	km.data.TimeUs.StartTimeUs = km.src.Now()
	km.isRunning = true
}

func (km *KpiManager) Stop() {
	if km.isRunning {
		km.update()
		km.isRunning = false
	}
}

func (km *KpiManager) IsRunning() bool {
	return km.isRunning
}

// Data returns the KPIs, recalculated first while the KPI period is running.
func (km *KpiManager) Data() *Kpi {
	logger.AssertNotNil(km.src)
	if km.isRunning {
		km.update()
	}
	return km.data
}

func (km *KpiManager) SaveFile(fn string) error {
	data := km.Data()
	data.FileTime = time.Now().Format(time.RFC3339)
	js, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return errors.Wrap(err, "could not marshal KPI JSON data")
	}
	if err = os.WriteFile(fn, js, 0644); err != nil {
		return errors.Wrapf(err, "could not write KPI JSON file %s", fn)
	}
	return nil
}

func (km *KpiManager) update() {
	km.curCounters = km.retrieveRadioCounters()
	km.curChannels = km.src.ChannelStats()
	km.calculateKpis()
}

func (km *KpiManager) retrieveRadioCounters() map[NodeId]RadioCounters {
	radios := km.src.Radios()
	ret := make(map[NodeId]RadioCounters, len(radios))
	for _, id := range radios {
		ret[id] = km.src.RadioCounters(id)
	}
	return ret
}

func getCountersDiff(curCtr RadioCounters, startCtr RadioCounters) RadioCounters {
	ret := RadioCounters{}
	for k, v := range curCtr {
		// a radio created during the period starts from 0.
		ret[k] = v - startCtr[k]
	}
	return ret
}

func percentage(part, total uint64) float64 {
	if total == 0 {
		return 0.0
	}
	return 100.0 * float64(part) / float64(total)
}

func (km *KpiManager) calculateKpis() {
	// time
	km.data.TimeUs.EndTimeUs = km.src.Now()
	km.data.TimeUs.PeriodUs = km.data.TimeUs.EndTimeUs - km.data.TimeUs.StartTimeUs
	km.data.TimeSec.StartTimeSec = float64(km.data.TimeUs.StartTimeUs) / 1e6
	km.data.TimeSec.EndTimeSec = float64(km.data.TimeUs.EndTimeUs) / 1e6
	km.data.TimeSec.PeriodSec = float64(km.data.TimeUs.PeriodUs) / 1e6
	period := km.data.TimeUs.PeriodUs

	// channels
	km.data.Channels = make(map[ChannelId]KpiChannel)
	if period > 0 {
		for ch, cur := range km.curChannels {
			start := km.startChannels[ch]
			txTime := cur.TxTimeUs - start.TxTimeUs
			frames := cur.NumFrames - start.NumFrames
			km.data.Channels[ch] = KpiChannel{
				TxTimeUs:     txTime,
				TxPercentage: percentage(txTime, period),
				NumFrames:    frames,
				AvgFps:       1.0e6 * float64(frames) / float64(period),
			}
		}
	}

	// counters
	km.data.Phy.RxSuccessPercentage = make(map[NodeId]float64)
	km.data.Phy.TxPercentage = make(map[NodeId]float64)
	km.data.Mac.CancelledPercentage = make(map[NodeId]float64)
	km.data.Counters = make(map[NodeId]RadioCounters)
	for id, ctr := range km.curCounters {
		counters := getCountersDiff(ctr, km.startCounters[id])
		rxTotal := counters["phy.rx.success"] + counters["phy.rx.failure"] + counters["phy.rx.dropped"]
		km.data.Phy.RxSuccessPercentage[id] = percentage(counters["phy.rx.success"], rxTotal)
		km.data.Phy.TxPercentage[id] = percentage(counters["phy.time.TX"], period)
		km.data.Mac.CancelledPercentage[id] = percentage(counters["mac.cancelled"],
			counters["mac.tx-start"])
		km.data.Counters[id] = counters
	}
}
