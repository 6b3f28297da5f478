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

package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanetsim/ocb-ns/errormodel"
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/mac"
	"github.com/vanetsim/ocb-ns/phy"
	. "github.com/vanetsim/ocb-ns/types"
)

const testScenario = `
seed: 42
log: debug
error-model:
  name: threshold
  min-sinr-db: 10
phy:
  cca-ed-threshold: -65
mac:
  mode: ocb
  cwmin: 7
schedule:
  enabled: true
default-loss: 90
radios:
  - id: 1
  - id: 2
    channel: 172
    tx-power: 10
    schedule: false
links:
  - from: 1
    to: 2
    loss: 70
    oneway: true
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(testScenario))
	require.Nil(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, logger.DebugLevel, cfg.LogLevel)
	assert.Equal(t, errormodel.ThresholdModelName, cfg.ErrorModel.Name)
	assert.Equal(t, DbValue(10), cfg.ErrorModel.MinSinrDb)
	assert.Equal(t, DbValue(-65), cfg.Phy.CcaEdThresholdDbm)
	assert.Equal(t, phy.DefaultConfig().RxSensitivityDbm, cfg.Phy.RxSensitivityDbm)
	assert.Equal(t, mac.ModeOutsideContext, cfg.Mac.Mode)
	assert.Equal(t, uint32(7), cfg.Mac.CwMin)
	assert.Equal(t, uint32(1023), cfg.Mac.CwMax)
	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, 50*Millisecond, cfg.Schedule.CchIntervalUs)
	assert.Equal(t, DbValue(90), cfg.DefaultLossDb)

	require.Len(t, cfg.Radios, 2)
	assert.Equal(t, ChannelId(0), cfg.Radios[0].Channel)
	assert.Nil(t, cfg.Radios[0].TxPowerDbm)
	assert.Equal(t, DefaultServiceChannel, cfg.Radios[1].Channel)
	require.NotNil(t, cfg.Radios[1].TxPowerDbm)
	assert.Equal(t, DbValue(10), *cfg.Radios[1].TxPowerDbm)
	require.NotNil(t, cfg.Radios[1].Schedule)
	assert.False(t, *cfg.Radios[1].Schedule)
	assert.Equal(t, []LinkConfig{{From: 1, To: 2, LossDb: 70, OneWay: true}}, cfg.Links)

	s, err := NewSimulation(cfg)
	require.Nil(t, err)
	r2 := mustRadio(t, s, 2)
	assert.Equal(t, DefaultServiceChannel, r2.Phy.Channel())
	assert.Equal(t, DbValue(10), r2.Phy.Config().TxPowerDbm)
	assert.False(t, r2.Schedule.IsRunning())
	assert.True(t, mustRadio(t, s, 1).Schedule.IsRunning())
	assert.Equal(t, DbValue(70), s.Medium().LinkLoss(1, 2))
	assert.Equal(t, DbValue(90), s.Medium().LinkLoss(2, 1))
	logger.SetLevel(logger.DefaultLevel)
}

func TestParseConfig_Invalid(t *testing.T) {
	for _, doc := range []string{
		"mac: {mode: mesh}",
		"mac: {cwmin: 63, cwmax: 15}",
		"phy: {cca-ed-threshold: -110}",
		"error-model: {name: nonsense}",
		"radios: [{id: 1}, {id: 1}]",
		"radios: [{id: -3}]",
		"links: [{from: 2, to: 2, loss: 3}]",
		"seed: [1, 2]",
	} {
		_, err := ParseConfig([]byte(doc))
		assert.NotNil(t, err, doc)
	}
}

func TestLoadConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "scenario.yaml")
	require.Nil(t, os.WriteFile(fn, []byte(testScenario), 0644))
	cfg, err := LoadConfig(fn)
	require.Nil(t, err)
	assert.Equal(t, int64(42), cfg.Seed)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}
