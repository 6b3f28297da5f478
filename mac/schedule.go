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

// ScheduleConfig configures alternating access between the control channel (CCH) and a service
// channel (SCH). Intervals are aligned to multiples of the sync interval (CCH + SCH interval).
type ScheduleConfig struct {
	Enabled       bool      `yaml:"enabled"`
	Cch           ChannelId `yaml:"cch"`
	Sch           ChannelId `yaml:"sch"`
	CchIntervalUs SimTime   `yaml:"cch-interval"`
	SchIntervalUs SimTime   `yaml:"sch-interval"`
	GuardUs       SimTime   `yaml:"guard"`
}

func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		Enabled:       false,
		Cch:           ControlChannel,
		Sch:           DefaultServiceChannel,
		CchIntervalUs: 50 * Millisecond,
		SchIntervalUs: 50 * Millisecond,
		GuardUs:       4 * Millisecond,
	}
}

func (sc ScheduleConfig) SyncInterval() SimTime {
	return sc.CchIntervalUs + sc.SchIntervalUs
}

// ChannelSchedule drives a Coordinator through alternating channel access.
type ChannelSchedule struct {
	c     *Coordinator
	sched event.Scheduler
	cfg   ScheduleConfig
	evt   event.Handle
}

func NewChannelSchedule(c *Coordinator, sched event.Scheduler, cfg ScheduleConfig) *ChannelSchedule {
	return &ChannelSchedule{
		c:     c,
		sched: sched,
		cfg:   cfg,
	}
}

// ChannelAt returns the channel the schedule assigns to time t, and the end of that interval.
func (s *ChannelSchedule) ChannelAt(t SimTime) (ChannelId, SimTime) {
	sync := s.cfg.SyncInterval()
	base := t - t%sync
	if t-base < s.cfg.CchIntervalUs {
		return s.cfg.Cch, base + s.cfg.CchIntervalUs
	}
	return s.cfg.Sch, base + sync
}

// Start switches to the channel of the current interval and follows the schedule from then on.
func (s *ChannelSchedule) Start() {
	if s.IsRunning() || s.cfg.SyncInterval() == 0 {
		return
	}
	s.step()
}

func (s *ChannelSchedule) Stop() {
	s.sched.Cancel(s.evt)
}

func (s *ChannelSchedule) IsRunning() bool {
	return s.evt.IsPending()
}

func (s *ChannelSchedule) step() {
	ch, end := s.ChannelAt(s.sched.Now())
	if ch != s.c.ChannelState().Channel {
		s.c.SwitchChannel(ch, s.cfg.GuardUs)
	}
	s.evt = s.sched.ScheduleAt(end, s.step)
}
