// Copyright (c) 2022-2023, The OTNS Authors.
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

package energy

import (
	. "github.com/vanetsim/ocb-ns/types"
)

/*
 * Default supply current by PHY state of an 802.11 radio at 3.0V.
 * Consumption in kilowatts, time in microseconds, resulting energy in mJ.
 */
const (
	SupplyVoltage float64 = 3.0

	RadioIdleConsumption    float64 = SupplyVoltage * 0.273 / 1000 // kilowatts @ i = 273 mA
	RadioCcaBusyConsumption float64 = SupplyVoltage * 0.273 / 1000 // kilowatts @ i = 273 mA
	RadioRxConsumption      float64 = SupplyVoltage * 0.313 / 1000 // kilowatts @ i = 313 mA
	RadioTxConsumption      float64 = SupplyVoltage * 0.380 / 1000 // kilowatts @ i = 380 mA
)

const (
	ComputePeriod SimTime = 30 * Second
)

var stateConsumption = [NumPhyStates]float64{
	PhyIdle:    RadioIdleConsumption,
	PhyCcaBusy: RadioCcaBusyConsumption,
	PhyRx:      RadioRxConsumption,
	PhyTx:      RadioTxConsumption,
}

type RadioStatus struct {
	State     PhyState
	Spent     [NumPhyStates]SimTime
	Timestamp SimTime
}

// RadioEnergy is the energy spent by one radio, in mJ, per PHY state.
type RadioEnergy struct {
	NodeId  NodeId  `yaml:"id"`
	Idle    float64 `yaml:"idle"`
	CcaBusy float64 `yaml:"cca-busy"`
	Rx      float64 `yaml:"rx"`
	Tx      float64 `yaml:"tx"`
}

func (re RadioEnergy) Total() float64 {
	return re.Idle + re.CcaBusy + re.Rx + re.Tx
}

type NetworkConsumption struct {
	Timestamp         SimTime
	EnergyConsIdle    float64
	EnergyConsCcaBusy float64
	EnergyConsRx      float64
	EnergyConsTx      float64
}
