// Copyright (c) 2020, The OTNS Authors.
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
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vanetsim/ocb-ns/errormodel"
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/mac"
	"github.com/vanetsim/ocb-ns/pcap"
	"github.com/vanetsim/ocb-ns/phy"
	. "github.com/vanetsim/ocb-ns/types"
)

const (
	DefaultSeed   = 1
	DefaultLossDb = 80.0
	// NoLinkLossDb marks a link over which nothing is received.
	NoLinkLossDb = math.MaxFloat64
)

// RadioConfig overrides the network-wide defaults for a single radio.
type RadioConfig struct {
	Id         NodeId    `yaml:"id"`
	Channel    ChannelId `yaml:"channel,omitempty"`
	TxPowerDbm *DbValue  `yaml:"tx-power,omitempty"`
	Schedule   *bool     `yaml:"schedule,omitempty"`
}

// LinkConfig is an entry of the static link loss table.
type LinkConfig struct {
	From   NodeId  `yaml:"from"`
	To     NodeId  `yaml:"to"`
	LossDb DbValue `yaml:"loss"`
	// OneWay links only apply from From to To; others are symmetric.
	OneWay bool `yaml:"oneway,omitempty"`
}

type Config struct {
	Seed          int64              `yaml:"seed"`
	LogLevel      logger.Level       `yaml:"log"`
	OutputDir     string             `yaml:"output-dir"`
	Pcap          string             `yaml:"pcap"`
	ErrorModel    errormodel.Params  `yaml:"error-model"`
	Phy           phy.Config         `yaml:"phy"`
	Mac           mac.Config         `yaml:"mac"`
	Schedule      mac.ScheduleConfig `yaml:"schedule"`
	DefaultLossDb DbValue            `yaml:"default-loss"`
	Radios        []RadioConfig      `yaml:"radios"`
	Links         []LinkConfig       `yaml:"links"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:          DefaultSeed,
		LogLevel:      logger.InfoLevel,
		OutputDir:     "tmp",
		Pcap:          pcap.FrameTypeOffStr,
		ErrorModel:    errormodel.DefaultParams(),
		Phy:           phy.DefaultConfig(),
		Mac:           mac.DefaultConfig(),
		Schedule:      mac.DefaultScheduleConfig(),
		DefaultLossDb: DefaultLossDb,
	}
}

// ParseConfig reads a YAML scenario on top of the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "invalid scenario config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config %s", path)
	}
	return ParseConfig(data)
}

func (cfg *Config) Validate() error {
	if _, err := mac.ParseOperatingMode(string(cfg.Mac.Mode)); err != nil {
		return err
	}
	if cfg.Mac.CwMin > cfg.Mac.CwMax {
		return errors.Errorf("mac: cwmin %d larger than cwmax %d", cfg.Mac.CwMin, cfg.Mac.CwMax)
	}
	if cfg.Phy.CcaEdThresholdDbm < cfg.Phy.RxSensitivityDbm {
		return errors.Errorf("phy: CCA threshold %.1f dBm below rx sensitivity %.1f dBm",
			cfg.Phy.CcaEdThresholdDbm, cfg.Phy.RxSensitivityDbm)
	}
	if pcap.ParseFrameTypeStr(cfg.Pcap) == pcap.FrameTypeUnknown {
		return errors.Errorf("invalid pcap frame type: %s", cfg.Pcap)
	}
	if _, err := errormodel.Create(cfg.ErrorModel); err != nil {
		return err
	}
	seen := map[NodeId]bool{}
	for _, rc := range cfg.Radios {
		if rc.Id <= 0 {
			return errors.Errorf("invalid radio id %d", rc.Id)
		}
		if seen[rc.Id] {
			return errors.Errorf("radio %d configured twice", rc.Id)
		}
		seen[rc.Id] = true
	}
	for _, lc := range cfg.Links {
		if lc.From == lc.To {
			return errors.Errorf("link from radio %d to itself", lc.From)
		}
	}
	return nil
}
