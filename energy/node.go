// Copyright (c) 2022, The OTNS Authors.
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
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/phy"
	. "github.com/vanetsim/ocb-ns/types"
)

type NodeEnergy struct {
	nodeId NodeId
	radio  RadioStatus
}

func (node *NodeEnergy) ComputeRadioState(timestamp SimTime) {
	logger.AssertTrue(timestamp >= node.radio.Timestamp)
	if int(node.radio.State) >= NumPhyStates {
		logger.Panicf("unknown radio state: %v", node.radio.State)
	}
	node.radio.Spent[node.radio.State] += timestamp - node.radio.Timestamp
	node.radio.Timestamp = timestamp
}

func (node *NodeEnergy) SetRadioState(state PhyState, timestamp SimTime) {
	// the time spent in the old state is accounted first.
	node.ComputeRadioState(timestamp)
	node.radio.State = state
}

// OnPhyStateChange is a phy.StateListener keeping the radio state in sync with the PHY.
func (node *NodeEnergy) OnPhyStateChange(ch phy.StateChange) {
	node.SetRadioState(ch.NewState, ch.Start)
}

func (node *NodeEnergy) Spent(state PhyState) SimTime {
	return node.radio.Spent[state]
}

func (node *NodeEnergy) Energy() RadioEnergy {
	return RadioEnergy{
		NodeId:  node.nodeId,
		Idle:    float64(node.radio.Spent[PhyIdle]) * stateConsumption[PhyIdle],
		CcaBusy: float64(node.radio.Spent[PhyCcaBusy]) * stateConsumption[PhyCcaBusy],
		Rx:      float64(node.radio.Spent[PhyRx]) * stateConsumption[PhyRx],
		Tx:      float64(node.radio.Spent[PhyTx]) * stateConsumption[PhyTx],
	}
}

func newNode(nodeID NodeId, timestamp SimTime) *NodeEnergy {
	node := &NodeEnergy{
		nodeId: nodeID,
		radio: RadioStatus{
			State:     PhyIdle,
			Timestamp: timestamp,
		},
	}
	return node
}
