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

// Package errormodel provides packet error-rate models: pure functions that map a transmit mode,
// frame size and SINR trace to a probability of successful decoding.
package errormodel

import (
	"math"

	"github.com/pkg/errors"

	. "github.com/vanetsim/ocb-ns/types"
)

// Model computes the success probability of a reception.
type Model interface {
	// Decode returns the probability in [0, 1] that a frame of sizeBits bits, sent with mode and
	// received with the given SINR trace, is decoded successfully.
	Decode(mode TxMode, sizeBits int, trace SinrTrace) float64
	Name() string
}

const (
	AwgnModelName      = "awgn"
	ThresholdModelName = "threshold"
	Ieee802154Name     = "802.15.4"
	FixedModelName     = "fixed"
)

// Params selects and configures a model.
type Params struct {
	Name string `yaml:"name"`
	// MinSinrDb is used by the threshold model.
	MinSinrDb DbValue `yaml:"min-sinr-db"`
	// SuccessProbability is used by the fixed model.
	SuccessProbability float64 `yaml:"success-probability"`
}

func DefaultParams() Params {
	return Params{
		Name:               AwgnModelName,
		MinSinrDb:          4.0,
		SuccessProbability: 1.0,
	}
}

// Create returns the model selected by p.
func Create(p Params) (Model, error) {
	switch p.Name {
	case AwgnModelName, "":
		return AwgnModel{}, nil
	case ThresholdModelName:
		return ThresholdModel{MinSinrDb: p.MinSinrDb}, nil
	case Ieee802154Name:
		return Ieee802154Model{}, nil
	case FixedModelName:
		if p.SuccessProbability < 0 || p.SuccessProbability > 1 {
			return nil, errors.Errorf("success probability out of range: %f", p.SuccessProbability)
		}
		return FixedModel{P: p.SuccessProbability}, nil
	default:
		return nil, errors.Errorf("unknown error model: %s", p.Name)
	}
}

// chunkBits returns the share of sizeBits falling into a chunk of duration d of a trace of total duration.
func chunkBits(sizeBits int, d, total SimTime) float64 {
	if total == 0 {
		return 0
	}
	return float64(sizeBits) * float64(d) / float64(total)
}

// successFromBer returns the success probability of nbits bits given a bit error rate.
func successFromBer(ber float64, nbits float64) float64 {
	ber = math.Max(0, math.Min(ber, 1.0))
	if ber == 0 || nbits <= 0 {
		return 1.0
	}
	return math.Pow(1.0-ber, nbits)
}

// decodeByChunks multiplies the per-chunk success probabilities obtained from berFn.
func decodeByChunks(sizeBits int, trace SinrTrace, berFn func(sinr float64) float64) float64 {
	total := trace.Duration()
	psuc := 1.0
	for _, c := range trace {
		psuc *= successFromBer(berFn(c.Sinr), chunkBits(sizeBits, c.Duration, total))
	}
	return psuc
}
