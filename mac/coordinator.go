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

// Package mac implements the multi-channel MAC coordinator: per access category transmit queues,
// suspend/resume of channel access, forced busy windows, cancellation of transmit attempts and
// channel switching.
package mac

import (
	"github.com/pkg/errors"

	"github.com/vanetsim/ocb-ns/event"
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/phy"
	. "github.com/vanetsim/ocb-ns/types"
)

// Config holds the MAC parameters of one radio.
type Config struct {
	Mode   OperatingMode `yaml:"mode"`
	SlotUs SimTime       `yaml:"slot"`
	SifsUs SimTime       `yaml:"sifs"`
	CwMin  uint32        `yaml:"cwmin"`
	CwMax  uint32        `yaml:"cwmax"`
	// DataRateKbps selects the transmit mode of frames that have none.
	DataRateKbps int `yaml:"data-rate"`
}

func DefaultConfig() Config {
	return Config{
		Mode:         ModeOutsideContext,
		SlotUs:       13,
		SifsUs:       32,
		CwMin:        15,
		CwMax:        1023,
		DataRateKbps: DefaultTxMode.DataRateKbps,
	}
}

// Coordinator owns the transmit queues of one radio and its channel access state.
type Coordinator struct {
	id         NodeId
	addr       Address
	cfg        Config
	txMode     TxMode
	sched      event.Scheduler
	phy        Transmitter
	contention Contention
	upper      UpperLayer
	log        *logger.RadioLogger

	txops     [NumAccessCategories]*txop
	active    *txop
	suspended bool
	busyUntil SimTime
	channel   ChannelId
	phyBusy   bool

	linkUp bool
	bssid  Address

	vendorHandlers map[uint32]VendorSpecificHandler
	listeners      []Listener
	seq            uint16
}

// NewCoordinator creates a Coordinator for the radio with address addr, sending through tx.
func NewCoordinator(id NodeId, addr Address, cfg Config, sched event.Scheduler, tx Transmitter,
	contention Contention, channel ChannelId) *Coordinator {
	mode, ok := TxModeByRate(cfg.DataRateKbps)
	if !ok {
		mode = DefaultTxMode
	}
	c := &Coordinator{
		id:             id,
		addr:           addr,
		cfg:            cfg,
		txMode:         mode,
		sched:          sched,
		phy:            tx,
		contention:     contention,
		log:            logger.GetRadioLogger(id, sched.Now),
		channel:        channel,
		vendorHandlers: make(map[uint32]VendorSpecificHandler),
	}
	for ac := range c.txops {
		c.txops[ac] = newTxop(AccessCategory(ac))
	}
	return c
}

func (c *Coordinator) Address() Address {
	return c.addr
}

func (c *Coordinator) SetUpperLayer(u UpperLayer) {
	c.upper = u
}

// AddListener registers an observer. Listeners are called synchronously in registration order.
func (c *Coordinator) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Coordinator) notify(kind EventKind, ac AccessCategory, f *Frame, reason DropReason) {
	ev := Event{
		Time:     c.sched.Now(),
		Kind:     kind,
		Category: ac,
		Frame:    f,
		Reason:   reason,
		Channel:  c.channel,
		QueueLen: c.txops[ac].len(),
	}
	for _, l := range c.listeners {
		l(ev)
	}
}

// canForwardTo returns true if frames to dst can be sent under the current operating mode.
func (c *Coordinator) canForwardTo(dst Address) bool {
	if c.cfg.Mode == ModeOutsideContext {
		return true
	}
	return c.linkUp
}

// Enqueue appends f to the queue of access category ac. It fails only if the destination is
// unreachable, in which case the frame is not queued.
func (c *Coordinator) Enqueue(f *Frame, ac AccessCategory) error {
	if !c.canForwardTo(f.Dst) {
		c.notify(EventRejected, ac, f, DropNone)
		return errors.Wrapf(ErrDestinationUnreachable, "%s: %s", GetNodeName(c.id), f.Dst)
	}
	f.Category = ac
	if f.Src == InvalidAddress {
		f.Src = c.addr
	}
	if f.Mode.DataRateKbps == 0 {
		f.Mode = c.txMode
	}
	c.seq++
	f.Seq = c.seq

	q := c.txops[ac]
	q.pushBack(f)
	c.notify(EventEnqueued, ac, f, DropNone)
	c.kick()
	return nil
}

// QueueLen returns the number of frames waiting in the queue of ac, excluding the one in flight.
func (c *Coordinator) QueueLen(ac AccessCategory) int {
	return c.txops[ac].len()
}

// Queue returns a copy of the queue contents of ac, head first.
func (c *Coordinator) Queue(ac AccessCategory) []*Frame {
	return append([]*Frame(nil), c.txops[ac].queue...)
}

// InFlight returns the frame of ac currently being transmitted, or nil.
func (c *Coordinator) InFlight(ac AccessCategory) *Frame {
	return c.txops[ac].inflight
}

// SentCount returns the number of completed transmissions of ac.
func (c *Coordinator) SentCount(ac AccessCategory) uint64 {
	return c.txops[ac].sent
}

func (c *Coordinator) ChannelState() ChannelState {
	return ChannelState{
		Suspended: c.suspended,
		BusyUntil: c.busyUntil,
		Channel:   c.channel,
	}
}

// Suspend stops channel access. Pending access grants are cancelled; queues are left untouched.
func (c *Coordinator) Suspend() {
	if c.suspended {
		return
	}
	c.suspended = true
	c.cancelGrants()
	c.log.Debugf("channel access suspended")
	c.notify(EventSuspended, AcBE, nil, DropNone)
}

// Resume restarts channel access after Suspend.
func (c *Coordinator) Resume() {
	if !c.suspended {
		return
	}
	c.suspended = false
	c.log.Debugf("channel access resumed")
	c.notify(EventResumed, AcBE, nil, DropNone)
	c.kick()
}

// MakeVirtualBusy forces the medium busy for duration from now. An existing longer busy window is kept.
func (c *Coordinator) MakeVirtualBusy(duration SimTime) {
	until := c.sched.Now() + duration
	if until <= c.busyUntil {
		return
	}
	c.busyUntil = until
	c.log.Debugf("virtual busy until %d", until)
	c.cancelGrants()
	c.kick()
}

// CancelTx aborts the current attempt of ac. A frame in flight is put back at the head of the queue; a
// pending access grant is dropped and contention for the head of the queue starts over.
func (c *Coordinator) CancelTx(ac AccessCategory) {
	q := c.txops[ac]
	c.sched.Cancel(q.grantEvt)
	f := q.inflight
	if f == nil {
		// the cancelled grant is the attempt; contention starts over.
		c.kick()
		return
	}
	c.sched.Cancel(q.completionEvt)
	q.inflight = nil
	q.cancelled++
	if c.active == q {
		c.active = nil
	}
	q.pushFront(f)
	c.log.Debugf("tx cancelled %s", f)
	c.notify(EventCancelled, ac, f, DropNone)
	c.phy.AbortTx()
	c.kick()
}

// Reset suspends channel access, cancels every category and empties every queue. Channel access stays
// suspended until Resume.
func (c *Coordinator) Reset() {
	c.Suspend()
	for ac := range c.txops {
		c.CancelTx(AccessCategory(ac))
	}
	for ac, q := range c.txops {
		for _, f := range q.flush() {
			c.notify(EventFlushed, AccessCategory(ac), f, DropReset)
		}
		q.deferrals = 0
	}
	c.log.Debugf("reset")
}

// SwitchChannel moves the radio to channel ch: channel access is suspended, attempts in flight are
// cancelled, the PHY is switched and the medium is kept busy for the guard interval before access resumes.
func (c *Coordinator) SwitchChannel(ch ChannelId, guard SimTime) {
	wasSuspended := c.suspended
	c.Suspend()
	for ac := range c.txops {
		c.CancelTx(AccessCategory(ac))
	}
	c.phy.SetChannel(ch)
	c.channel = ch
	c.notify(EventChannelSwitch, AcBE, nil, DropNone)
	c.MakeVirtualBusy(guard)
	if !wasSuspended {
		c.Resume()
	}
}

// ConfigureEdca sets the EDCA parameters of ac, if the contention function supports it.
func (c *Coordinator) ConfigureEdca(cwmin, cwmax, aifsn uint32, ac AccessCategory) error {
	ec, ok := c.contention.(EdcaConfigurer)
	if !ok {
		return errors.Errorf("contention function does not support EDCA parameters")
	}
	if cwmin > cwmax {
		return errors.Errorf("cwmin %d larger than cwmax %d", cwmin, cwmax)
	}
	ec.ConfigureEdca(ac, EdcaParams{CwMin: cwmin, CwMax: cwmax, Aifsn: aifsn})
	return nil
}

func (c *Coordinator) Association() Association {
	if c.cfg.Mode == ModeOutsideContext {
		return Association{Status: AssocNotApplicable}
	}
	if c.linkUp {
		return Association{Status: AssocAssociated, Bssid: c.bssid}
	}
	return Association{Status: AssocUnassociated}
}

// SetBssid sets the BSSID of the infrastructure network.
func (c *Coordinator) SetBssid(bssid Address) error {
	if c.cfg.Mode == ModeOutsideContext {
		return ErrNotApplicable
	}
	c.bssid = bssid
	return nil
}

// SetLinkUp marks the link to the infrastructure network up or down.
func (c *Coordinator) SetLinkUp(up bool) error {
	if c.cfg.Mode == ModeOutsideContext {
		return ErrNotApplicable
	}
	c.linkUp = up
	return nil
}

func (c *Coordinator) mediumBusy() bool {
	return c.phyBusy || c.active != nil
}

func (c *Coordinator) cancelGrants() {
	for _, q := range c.txops {
		c.sched.Cancel(q.grantEvt)
	}
}

// kick schedules an access grant for every category that has frames waiting and none pending.
func (c *Coordinator) kick() {
	if c.suspended || c.mediumBusy() {
		return
	}
	start := c.sched.Now()
	if c.busyUntil > start {
		start = c.busyUntil
	}
	for _, ac := range AccessCategoriesByPriority {
		q := c.txops[ac]
		if q.inflight != nil || q.grantEvt.IsPending() || q.len() == 0 {
			continue
		}
		delay := c.contention.AccessDelay(ac, q.deferrals)
		q.grantEvt = c.sched.ScheduleAt(start+delay, func() {
			c.grant(q)
		})
	}
}

func (c *Coordinator) grant(q *txop) {
	if c.suspended || q.inflight != nil || q.len() == 0 {
		return
	}
	if c.mediumBusy() || c.sched.Now() < c.busyUntil {
		q.deferrals++
		c.kick()
		return
	}

	f := q.popFront()
	q.inflight = f
	c.active = q
	dur := c.phy.TxDuration(f)
	if err := c.phy.StartTx(f); err != nil {
		c.log.Error(err)
		q.inflight = nil
		c.active = nil
		q.pushFront(f)
		q.deferrals++
		return
	}
	q.completionEvt = c.sched.ScheduleAt(c.sched.Now()+dur, func() {
		c.complete(q)
	})
	c.notify(EventTxStart, q.ac, f, DropNone)
}

func (c *Coordinator) complete(q *txop) {
	f := q.inflight
	if f == nil {
		return
	}
	q.inflight = nil
	q.deferrals = 0
	q.sent++
	if c.active == q {
		c.active = nil
	}
	c.notify(EventTxDone, q.ac, f, DropNone)
	c.kick()
}

// OnPhyStateChange tracks the medium state reported by the PHY.
func (c *Coordinator) OnPhyStateChange(ch phy.StateChange) {
	busy := ch.NewState != PhyIdle
	if busy == c.phyBusy {
		return
	}
	c.phyBusy = busy
	if busy {
		for _, q := range c.txops {
			if c.sched.Cancel(q.grantEvt) {
				q.deferrals++
			}
		}
	} else {
		c.kick()
	}
}

// FrameDelivered accepts a frame decoded by the PHY.
func (c *Coordinator) FrameDelivered(f *Frame, info phy.RxSignalInfo) {
	if f.Dst != c.addr && !f.Dst.IsBroadcast() {
		c.notify(EventLost, f.Category, f, DropNotForUs)
		return
	}
	c.notify(EventReceived, f.Category, f, DropNone)
	if f.Type == FrameAction {
		if h := c.vendorHandlers[f.Oui]; h != nil {
			h(f, info)
		} else {
			c.log.Debugf("no handler for vendor-specific frame oui=%06x", f.Oui)
		}
		return
	}
	if c.upper != nil {
		c.upper.Receive(f, info)
	}
}

// FrameLost records a frame the PHY could not deliver.
func (c *Coordinator) FrameLost(f *Frame, reason DropReason) {
	c.notify(EventLost, f.Category, f, reason)
}
