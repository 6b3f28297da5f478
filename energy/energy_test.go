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

package energy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanetsim/ocb-ns/phy"
	. "github.com/vanetsim/ocb-ns/types"
)

func TestNodeEnergy_StateTime(t *testing.T) {
	ea := NewEnergyAnalyser()
	node := ea.AddNode(1, 0)
	assert.Same(t, node, ea.AddNode(1, 50))

	node.OnPhyStateChange(phy.StateChange{Start: 100, PriorState: PhyIdle, NewState: PhyCcaBusy})
	node.OnPhyStateChange(phy.StateChange{Start: 104, PriorState: PhyCcaBusy, NewState: PhyRx})
	node.OnPhyStateChange(phy.StateChange{Start: 324, PriorState: PhyRx, NewState: PhyIdle})
	node.SetRadioState(PhyTx, 400)
	node.ComputeRadioState(500)

	assert.Equal(t, SimTime(176), node.Spent(PhyIdle))
	assert.Equal(t, SimTime(4), node.Spent(PhyCcaBusy))
	assert.Equal(t, SimTime(220), node.Spent(PhyRx))
	assert.Equal(t, SimTime(100), node.Spent(PhyTx))

	re := node.Energy()
	assert.InDelta(t, 176*RadioIdleConsumption, re.Idle, 1e-12)
	assert.InDelta(t, 100*RadioTxConsumption, re.Tx, 1e-12)
	assert.InDelta(t, re.Idle+re.CcaBusy+re.Rx+re.Tx, re.Total(), 1e-12)
}

func TestNodeEnergy_PanicsOnTimeGoingBack(t *testing.T) {
	node := newNode(1, 100)
	assert.Panics(t, func() {
		node.ComputeRadioState(50)
	})
}

func TestEnergyAnalyser_History(t *testing.T) {
	ea := NewEnergyAnalyser()
	assert.Nil(t, ea.GetLatestEnergyOfNodes())
	ea.AddNode(2, 0)
	ea.AddNode(1, 0).SetRadioState(PhyTx, 0)

	ea.StoreNetworkEnergy(1000)
	latest := ea.GetLatestEnergyOfNodes()
	require.Len(t, latest, 2)
	assert.Equal(t, NodeId(1), latest[0].NodeId)
	assert.Equal(t, NodeId(2), latest[1].NodeId)

	hist := ea.GetNetworkEnergyHistory()
	require.Len(t, hist, 1)
	assert.InDelta(t, 1000*RadioTxConsumption/2, hist[0].EnergyConsTx, 1e-12)
	assert.InDelta(t, 1000*RadioIdleConsumption/2, hist[0].EnergyConsIdle, 1e-12)

	ea.DeleteNode(1)
	ea.DeleteNode(2)
	assert.Nil(t, ea.GetNode(1))
	assert.Empty(t, ea.GetNetworkEnergyHistory())
}

func TestEnergyAnalyser_Output(t *testing.T) {
	ea := NewEnergyAnalyser()
	ea.AddNode(3, 0)
	ea.StoreNetworkEnergy(2 * Millisecond)

	var buf bytes.Buffer
	ea.WriteEnergyByNodes(&buf, 2*Millisecond)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Duration of the simulated network (in milliseconds): 2", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "3\t"))

	dir := t.TempDir()
	ea.SetTitle("run1")
	require.Nil(t, ea.SaveEnergyDataToFile(dir, "", 2*Millisecond))
	_, err := os.Stat(filepath.Join(dir, "energy_results", "run1_nodes.txt"))
	assert.Nil(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "energy_results", "run1.txt"))
	require.Nil(t, err)
	assert.Contains(t, string(data), "Time (ms)")
}
