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

package mac

import (
	"math/rand"

	. "github.com/vanetsim/ocb-ns/types"
)

// EdcaParams are the channel access parameters of one access category.
type EdcaParams struct {
	CwMin uint32 `yaml:"cwmin"`
	CwMax uint32 `yaml:"cwmax"`
	Aifsn uint32 `yaml:"aifsn"`
}

// DefaultEdcaParams returns the 802.11p outside-context EDCA parameter set derived from cwmin/cwmax.
func DefaultEdcaParams(cwmin, cwmax uint32) [NumAccessCategories]EdcaParams {
	var p [NumAccessCategories]EdcaParams
	p[AcBK] = EdcaParams{CwMin: cwmin, CwMax: cwmax, Aifsn: 9}
	p[AcBE] = EdcaParams{CwMin: cwmin, CwMax: cwmax, Aifsn: 6}
	p[AcVI] = EdcaParams{CwMin: (cwmin+1)/2 - 1, CwMax: cwmin, Aifsn: 3}
	p[AcVO] = EdcaParams{CwMin: (cwmin+1)/4 - 1, CwMax: (cwmin+1)/2 - 1, Aifsn: 2}
	return p
}

// Contention decides how long an access category defers before it may transmit.
type Contention interface {
	// AccessDelay returns the deferral, counted from the moment the medium is idle, for category ac
	// after it was deferred the given number of times.
	AccessDelay(ac AccessCategory, deferrals int) SimTime
}

// EdcaConfigurer is implemented by contention functions whose parameters can be changed.
type EdcaConfigurer interface {
	ConfigureEdca(ac AccessCategory, p EdcaParams)
	EdcaParams(ac AccessCategory) EdcaParams
}

// EdcaContention waits AIFS plus a backoff drawn uniformly from [0, CW] slots. CW starts at CWmin and
// doubles with every deferral, up to CWmax.
type EdcaContention struct {
	slot   SimTime
	sifs   SimTime
	params [NumAccessCategories]EdcaParams
	rnd    *rand.Rand
}

func NewEdcaContention(slot, sifs SimTime, params [NumAccessCategories]EdcaParams, rnd *rand.Rand) *EdcaContention {
	return &EdcaContention{
		slot:   slot,
		sifs:   sifs,
		params: params,
		rnd:    rnd,
	}
}

func (c *EdcaContention) ConfigureEdca(ac AccessCategory, p EdcaParams) {
	c.params[ac] = p
}

func (c *EdcaContention) EdcaParams(ac AccessCategory) EdcaParams {
	return c.params[ac]
}

// Aifs returns the arbitration inter-frame space of ac.
func (c *EdcaContention) Aifs(ac AccessCategory) SimTime {
	return c.sifs + SimTime(c.params[ac].Aifsn)*c.slot
}

// ContentionWindow returns the CW of ac after the given number of deferrals.
func (c *EdcaContention) ContentionWindow(ac AccessCategory, deferrals int) uint32 {
	p := c.params[ac]
	cw := uint64(p.CwMin)
	for i := 0; i < deferrals && cw < uint64(p.CwMax); i++ {
		cw = 2*cw + 1
	}
	if cw > uint64(p.CwMax) {
		cw = uint64(p.CwMax)
	}
	return uint32(cw)
}

func (c *EdcaContention) AccessDelay(ac AccessCategory, deferrals int) SimTime {
	cw := c.ContentionWindow(ac, deferrals)
	backoff := SimTime(c.rnd.Int63n(int64(cw)+1)) * c.slot
	return c.Aifs(ac) + backoff
}
