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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/vanetsim/ocb-ns/logger"
	. "github.com/vanetsim/ocb-ns/types"
)

type EnergyAnalyser struct {
	nodes                map[NodeId]*NodeEnergy
	networkHistory       []NetworkConsumption
	energyHistoryByNodes [][]RadioEnergy
	title                string
}

func (e *EnergyAnalyser) AddNode(nodeID NodeId, timestamp SimTime) *NodeEnergy {
	if node, ok := e.nodes[nodeID]; ok {
		return node
	}
	node := newNode(nodeID, timestamp)
	e.nodes[nodeID] = node
	return node
}

func (e *EnergyAnalyser) DeleteNode(nodeID NodeId) {
	delete(e.nodes, nodeID)

	if len(e.nodes) == 0 {
		e.ClearEnergyData()
	}
}

func (e *EnergyAnalyser) GetNode(nodeID NodeId) *NodeEnergy {
	return e.nodes[nodeID]
}

func (e *EnergyAnalyser) GetNetworkEnergyHistory() []NetworkConsumption {
	return e.networkHistory
}

func (e *EnergyAnalyser) GetEnergyHistoryByNodes() [][]RadioEnergy {
	return e.energyHistoryByNodes
}

func (e *EnergyAnalyser) GetLatestEnergyOfNodes() []RadioEnergy {
	if len(e.energyHistoryByNodes) == 0 {
		return nil
	}
	return e.energyHistoryByNodes[len(e.energyHistoryByNodes)-1]
}

func (e *EnergyAnalyser) sortedIds() []NodeId {
	ids := make([]NodeId, 0, len(e.nodes))
	for id := range e.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (e *EnergyAnalyser) StoreNetworkEnergy(timestamp SimTime) {
	nodesEnergySnapshot := make([]RadioEnergy, 0, len(e.nodes))
	networkSnapshot := NetworkConsumption{
		Timestamp: timestamp,
	}

	netSize := float64(len(e.nodes))
	for _, id := range e.sortedIds() {
		node := e.nodes[id]
		node.ComputeRadioState(timestamp)

		re := node.Energy()
		networkSnapshot.EnergyConsIdle += re.Idle / netSize
		networkSnapshot.EnergyConsCcaBusy += re.CcaBusy / netSize
		networkSnapshot.EnergyConsRx += re.Rx / netSize
		networkSnapshot.EnergyConsTx += re.Tx / netSize
		nodesEnergySnapshot = append(nodesEnergySnapshot, re)
	}

	e.networkHistory = append(e.networkHistory, networkSnapshot)
	e.energyHistoryByNodes = append(e.energyHistoryByNodes, nodesEnergySnapshot)
}

// SaveEnergyDataToFile writes <dir>/energy_results/<name>_nodes.txt and <name>.txt.
func (e *EnergyAnalyser) SaveEnergyDataToFile(dir string, name string, timestamp SimTime) error {
	if name == "" {
		if e.title == "" {
			name = "energy"
		} else {
			name = e.title
		}
	}

	resultsDir := filepath.Join(dir, "energy_results")
	if err := os.MkdirAll(resultsDir, 0777); err != nil {
		return errors.Wrap(err, "failed to create energy_results directory")
	}

	path := filepath.Join(resultsDir, name)
	fileNodes, err := os.Create(path + "_nodes.txt")
	if err != nil {
		return errors.Wrap(err, "error creating file")
	}
	defer fileNodes.Close()

	fileNetwork, err := os.Create(path + ".txt")
	if err != nil {
		return errors.Wrap(err, "error creating file")
	}
	defer fileNetwork.Close()

	e.WriteEnergyByNodes(fileNodes, timestamp)
	e.WriteNetworkEnergy(fileNetwork, timestamp)
	logger.Debugf("energy data saved to %s", path)
	return nil
}

func (e *EnergyAnalyser) WriteEnergyByNodes(w io.Writer, timestamp SimTime) {
	fmt.Fprintf(w, "Duration of the simulated network (in milliseconds): %d\n", timestamp/Millisecond)
	fmt.Fprintf(w, "ID\tIdle (mJ)\tCCA busy (mJ)\tReceiving (mJ)\tTransmitting (mJ)\n")

	for _, id := range e.sortedIds() {
		re := e.nodes[id].Energy()
		fmt.Fprintf(w, "%d\t%f\t%f\t%f\t%f\n", id, re.Idle, re.CcaBusy, re.Rx, re.Tx)
	}
}

func (e *EnergyAnalyser) WriteNetworkEnergy(w io.Writer, timestamp SimTime) {
	fmt.Fprintf(w, "Duration of the simulated network (in milliseconds): %d\n", timestamp/Millisecond)
	fmt.Fprintf(w, "Time (ms)\tIdle (mJ)\tCCA busy (mJ)\tReceiving (mJ)\tTransmitting (mJ)\n")
	for _, snapshot := range e.networkHistory {
		fmt.Fprintf(w, "%d\t%f\t%f\t%f\t%f\n",
			snapshot.Timestamp/Millisecond,
			snapshot.EnergyConsIdle,
			snapshot.EnergyConsCcaBusy,
			snapshot.EnergyConsRx,
			snapshot.EnergyConsTx,
		)
	}
}

func (e *EnergyAnalyser) ClearEnergyData() {
	logger.Debugf("radio energy data cleared")
	e.networkHistory = make([]NetworkConsumption, 0, 3600)
	e.energyHistoryByNodes = make([][]RadioEnergy, 0, 3600)
}

func (e *EnergyAnalyser) SetTitle(title string) {
	e.title = title
}

func NewEnergyAnalyser() *EnergyAnalyser {
	ea := &EnergyAnalyser{
		nodes:                make(map[NodeId]*NodeEnergy),
		networkHistory:       make([]NetworkConsumption, 0, 3600), // 1 sample every 30s for 1 hour
		energyHistoryByNodes: make([][]RadioEnergy, 0, 3600),
	}
	return ea
}
