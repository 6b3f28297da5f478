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
	"github.com/pkg/errors"

	. "github.com/vanetsim/ocb-ns/types"
)

// OperatingMode selects how the MAC relates to other stations.
type OperatingMode string

const (
	// ModeOutsideContext is 802.11p communication outside the context of a BSS (OCB): no
	// association, every destination is reachable.
	ModeOutsideContext OperatingMode = "ocb"
	// ModeInfrastructure requires the link to be up before frames can be forwarded.
	ModeInfrastructure OperatingMode = "infrastructure"
)

func ParseOperatingMode(s string) (OperatingMode, error) {
	switch OperatingMode(s) {
	case ModeOutsideContext, "":
		return ModeOutsideContext, nil
	case ModeInfrastructure:
		return ModeInfrastructure, nil
	default:
		return ModeOutsideContext, errors.Errorf("invalid operating mode: %s", s)
	}
}

type AssociationStatus byte

const (
	AssocNotApplicable AssociationStatus = 0
	AssocUnassociated  AssociationStatus = 1
	AssocAssociated    AssociationStatus = 2
)

func (s AssociationStatus) String() string {
	switch s {
	case AssocNotApplicable:
		return "not-applicable"
	case AssocUnassociated:
		return "unassociated"
	case AssocAssociated:
		return "associated"
	default:
		return "invalid"
	}
}

// Association is the result of an association query.
type Association struct {
	Status AssociationStatus
	Bssid  Address
}

var (
	ErrDestinationUnreachable = errors.New("destination unreachable")
	ErrNotApplicable          = errors.New("not applicable in outside-context mode")
)
