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

package errormodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/vanetsim/ocb-ns/types"
)

func trace(sinrDb ...DbValue) SinrTrace {
	var tr SinrTrace
	var ts SimTime
	for _, db := range sinrDb {
		tr = append(tr, SinrChunk{Start: ts, Duration: 100, Sinr: DbToRatio(db)})
		ts += 100
	}
	return tr
}

func TestAwgnModel(t *testing.T) {
	m := AwgnModel{}
	// a strong signal is always decoded
	assert.Equal(t, 1.0, m.Decode(OfdmRate6Mbps, 1040, trace(37)))
	// a signal well below the noise is never decoded
	assert.InDelta(t, 0.0, m.Decode(OfdmRate6Mbps, 1040, trace(-10)), 1e-9)

	// higher order modulations need more SINR
	pBpsk := m.Decode(OfdmRate3Mbps, 1040, trace(8))
	pQam64 := m.Decode(OfdmRate27Mbps, 1040, trace(8))
	assert.Greater(t, pBpsk, pQam64)

	// a short interference burst degrades the frame
	clean := m.Decode(OfdmRate12Mbps, 1040, trace(20, 20, 20))
	degraded := m.Decode(OfdmRate12Mbps, 1040, trace(20, 5, 20))
	assert.Less(t, degraded, clean)
}

func TestThresholdModel(t *testing.T) {
	m := ThresholdModel{MinSinrDb: 4}
	assert.Equal(t, 1.0, m.Decode(OfdmRate6Mbps, 800, trace(10, 4.5)))
	assert.Equal(t, 0.0, m.Decode(OfdmRate6Mbps, 800, trace(10, 3.9, 10)))
	assert.Equal(t, 0.0, m.Decode(OfdmRate6Mbps, 800, nil))
}

func TestIeee802154Model(t *testing.T) {
	m := Ieee802154Model{}
	assert.Equal(t, 1.0, m.Decode(DefaultTxMode, 1000, trace(10)))
	assert.InDelta(t, 0.5, oqpskBer(0), 1e-9)
	p := m.Decode(DefaultTxMode, 1000, trace(-3))
	assert.Less(t, p, 1.0)
	assert.GreaterOrEqual(t, p, 0.0)
}

func TestCreate(t *testing.T) {
	m, err := Create(DefaultParams())
	assert.Nil(t, err)
	assert.Equal(t, AwgnModelName, m.Name())

	m, err = Create(Params{Name: FixedModelName, SuccessProbability: 0.25})
	assert.Nil(t, err)
	assert.Equal(t, 0.25, m.Decode(DefaultTxMode, 0, nil))

	_, err = Create(Params{Name: FixedModelName, SuccessProbability: 2})
	assert.NotNil(t, err)

	m, err = Create(Params{Name: ThresholdModelName, MinSinrDb: 10})
	assert.Nil(t, err)
	assert.Equal(t, ThresholdModel{MinSinrDb: 10}, m)

	_, err = Create(Params{Name: "nist"})
	assert.NotNil(t, err)
}
