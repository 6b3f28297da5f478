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

package types

import "math"

// SinrChunk is a period of constant signal-to-interference-plus-noise ratio during a reception.
type SinrChunk struct {
	Start    SimTime
	Duration SimTime
	// Sinr is the linear (not dB) ratio.
	Sinr float64
}

// SinrTrace is the sequence of chunks covering one signal, in time order.
type SinrTrace []SinrChunk

func (t SinrTrace) Duration() SimTime {
	var d SimTime
	for _, c := range t {
		d += c.Duration
	}
	return d
}

// MinSinr returns the lowest linear SINR in the trace, or +Inf for an empty trace.
func (t SinrTrace) MinSinr() float64 {
	m := math.Inf(1)
	for _, c := range t {
		if c.Sinr < m {
			m = c.Sinr
		}
	}
	return m
}

// MeanSinr returns the duration-weighted mean linear SINR.
func (t SinrTrace) MeanSinr() float64 {
	total := t.Duration()
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range t {
		sum += c.Sinr * float64(c.Duration)
	}
	return sum / float64(total)
}
