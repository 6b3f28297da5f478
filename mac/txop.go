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
	"github.com/vanetsim/ocb-ns/event"
	. "github.com/vanetsim/ocb-ns/types"
)

// txop is the transmit state of one access category: its queue and at most one attempt in flight.
type txop struct {
	ac            AccessCategory
	queue         []*Frame
	inflight      *Frame
	grantEvt      event.Handle
	completionEvt event.Handle
	deferrals     int

	sent      uint64
	cancelled uint64
}

func newTxop(ac AccessCategory) *txop {
	return &txop{
		ac: ac,
	}
}

func (q *txop) len() int {
	return len(q.queue)
}

func (q *txop) pushBack(f *Frame) {
	q.queue = append(q.queue, f)
}

func (q *txop) pushFront(f *Frame) {
	q.queue = append(q.queue, nil)
	copy(q.queue[1:], q.queue)
	q.queue[0] = f
}

func (q *txop) popFront() *Frame {
	f := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return f
}

// flush empties the queue and returns the discarded frames.
func (q *txop) flush() []*Frame {
	frames := q.queue
	q.queue = nil
	return frames
}
