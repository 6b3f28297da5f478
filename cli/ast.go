// Copyright (c) 2020-2023, The OTNS Authors.
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

package cli

import (
	"strconv"

	"github.com/alecthomas/participle"
)

// noinspection GoStructTag
type Command struct {
	Add       *AddCmd       `  @@` //nolint
	Busy      *BusyCmd      `| @@` //nolint
	Cancel    *CancelCmd    `| @@` //nolint
	Counters  *CountersCmd  `| @@` //nolint
	Del       *DelCmd       `| @@` //nolint
	Edca      *EdcaCmd      `| @@` //nolint
	Energy    *EnergyCmd    `| @@` //nolint
	Exit      *ExitCmd      `| @@` //nolint
	Go        *GoCmd        `| @@` //nolint
	Help      *HelpCmd      `| @@` //nolint
	Kpi       *KpiCmd       `| @@` //nolint
	Link      *LinkCmd      `| @@` //nolint
	LogLevel  *LogLevelCmd  `| @@` //nolint
	Metrics   *MetricsCmd   `| @@` //nolint
	Node      *NodeCmd      `| @@` //nolint
	Radios    *RadiosCmd    `| @@` //nolint
	Reset     *ResetCmd     `| @@` //nolint
	Resume    *ResumeCmd    `| @@` //nolint
	Schedule  *ScheduleCmd  `| @@` //nolint
	Send      *SendCmd      `| @@` //nolint
	Signal    *SignalCmd    `| @@` //nolint
	Status    *StatusCmd    `| @@` //nolint
	Suspend   *SuspendCmd   `| @@` //nolint
	Switch    *SwitchCmd    `| @@` //nolint
	Time      *TimeCmd      `| @@` //nolint
	Vendor    *VendorCmd    `| @@` //nolint
}

// noinspection GoStructTag
type NodeSelector struct {
	Id int `@Int` //nolint
}

func (ns *NodeSelector) String() string {
	return strconv.Itoa(ns.Id)
}

// noinspection GoStructTag
type DestSelector struct {
	Broadcast *BroadcastFlag `( @@`    //nolint
	Address   *string        `| @String` //nolint
	Id        *int           `| @Int )`  //nolint
}

// noinspection GoStructTag
type BroadcastFlag struct {
	Dummy struct{} `("bcast" | "broadcast")` //nolint
}

// noinspection GoStructTag
type AccessCategoryFlag struct {
	Val string `("ac")? @("be"|"bk"|"vi"|"vo")` //nolint
}

// noinspection GoStructTag
type DataSizeFlag struct {
	Val int `("datasize"|"ds") @Int` //nolint
}

// noinspection GoStructTag
type DurationFlag struct {
	Val int `("duration"|"dur") @Int` //nolint
}

// noinspection GoStructTag
type GuardFlag struct {
	Val int `"guard" @Int` //nolint
}

// noinspection GoStructTag
type ChannelFlag struct {
	Val int `("channel"|"ch") @Int` //nolint
}

// noinspection GoStructTag
type AddNodeId struct {
	Val int `"id" @Int` //nolint
}

// noinspection GoStructTag
type AddCmd struct {
	Cmd     struct{}     `"add"`    //nolint
	Id      *AddNodeId   `( @@`     //nolint
	Channel *ChannelFlag `| @@ )*`  //nolint
}

// noinspection GoStructTag
type DelCmd struct {
	Cmd   struct{}       `"del"`   //nolint
	Nodes []NodeSelector `( @@ )+` //nolint
}

// noinspection GoStructTag
type GoCmd struct {
	Cmd  struct{} `"go"`                                     //nolint
	Time string   `@((Int|Float)["h"|"us"|"m"|"ms"|"s"])` //nolint
}

// noinspection GoStructTag
type SendCmd struct {
	Cmd      struct{}            `"send"`   //nolint
	Src      NodeSelector        `@@`       //nolint
	Dst      DestSelector        `@@`       //nolint
	DataSize *DataSizeFlag       `( @@`     //nolint
	Category *AccessCategoryFlag `| @@ )*`  //nolint
}

// noinspection GoStructTag
type VendorCmd struct {
	Cmd     struct{}     `"vendor"` //nolint
	Src     NodeSelector `@@`       //nolint
	Dst     DestSelector `@@`       //nolint
	Oui     int          `"oui" @Int` //nolint
	Payload string       `@String`  //nolint
}

// noinspection GoStructTag
type SignalCmd struct {
	Cmd      struct{}      `"signal"`                  //nolint
	Node     NodeSelector  `@@`                        //nolint
	Tech     string        `@("native"|"foreign")`     //nolint
	Power    string        `@("-"? (Int|Float))`       //nolint
	Duration *DurationFlag `( @@`                      //nolint
	DataSize *DataSizeFlag `| @@ )*`                   //nolint
}

// noinspection GoStructTag
type SuspendCmd struct {
	Cmd  struct{}     `"suspend"` //nolint
	Node NodeSelector `@@`        //nolint
}

// noinspection GoStructTag
type ResumeCmd struct {
	Cmd  struct{}     `"resume"` //nolint
	Node NodeSelector `@@`       //nolint
}

// noinspection GoStructTag
type BusyCmd struct {
	Cmd      struct{}     `"busy"` //nolint
	Node     NodeSelector `@@`     //nolint
	Duration int          `@Int`   //nolint
}

// noinspection GoStructTag
type CancelCmd struct {
	Cmd      struct{}            `"cancel"` //nolint
	Node     NodeSelector        `@@`       //nolint
	Category *AccessCategoryFlag `[ @@ ]`   //nolint
}

// noinspection GoStructTag
type ResetCmd struct {
	Cmd  struct{}     `"reset"` //nolint
	Node NodeSelector `@@`      //nolint
}

// noinspection GoStructTag
type SwitchCmd struct {
	Cmd     struct{}     `"switch"` //nolint
	Node    NodeSelector `@@`       //nolint
	Channel int          `@Int`     //nolint
	Guard   *GuardFlag   `[ @@ ]`   //nolint
}

// noinspection GoStructTag
type EdcaCmd struct {
	Cmd      struct{}           `"edca"` //nolint
	Node     NodeSelector       `@@`     //nolint
	Category AccessCategoryFlag `@@`     //nolint
	CwMin    int                `@Int`   //nolint
	CwMax    int                `@Int`   //nolint
	Aifsn    int                `@Int`   //nolint
}

// noinspection GoStructTag
type ScheduleCmd struct {
	Cmd  struct{}     `"schedule"` //nolint
	Node NodeSelector `@@`         //nolint
	On   *OnFlag      `( @@`       //nolint
	Off  *OffFlag     `| @@ )?`    //nolint
}

// noinspection GoStructTag
type OnFlag struct {
	Dummy struct{} `("on"|"start")` //nolint
}

// noinspection GoStructTag
type OffFlag struct {
	Dummy struct{} `("off"|"stop")` //nolint
}

// noinspection GoStructTag
type LinkCmd struct {
	Cmd    struct{}     `"link"`              //nolint
	From   NodeSelector `@@`                  //nolint
	To     NodeSelector `@@`                  //nolint
	Loss   *string      `[ @(Int|Float)`      //nolint
	OneWay *string      `  [ @"oneway" ] ]`   //nolint
}

// noinspection GoStructTag
type StatusCmd struct {
	Cmd  struct{}     `("status"|"radio")` //nolint
	Node NodeSelector `@@`                 //nolint
}

// noinspection GoStructTag
type RadiosCmd struct {
	Cmd struct{} `"radios"` //nolint
}

// noinspection GoStructTag
type CountersCmd struct {
	Cmd  struct{}      `"counters"` //nolint
	Node *NodeSelector `[ @@ ]`     //nolint
}

// noinspection GoStructTag
type NodeCmd struct {
	Cmd  struct{}     `"node"` //nolint
	Node NodeSelector `@@`     //nolint
}

// noinspection GoStructTag
type KpiCmd struct {
	Cmd       struct{} `"kpi"`                                //nolint
	Operation string   `[ @("start"|"stop"|"save"|"show") ]` //nolint
	Filename  string   `[ @String ]`                         //nolint
}

// noinspection GoStructTag
type EnergyCmd struct {
	Cmd  struct{}  `"energy"` //nolint
	Save *SaveFlag `( @@ )?`  //nolint
	Name string    `@String?` //nolint
}

// noinspection GoStructTag
type SaveFlag struct {
	Dummy struct{} `"save"` //nolint
}

// noinspection GoStructTag
type MetricsCmd struct {
	Cmd struct{} `"metrics"` //nolint
}

// noinspection GoStructTag
type TimeCmd struct {
	Cmd struct{} `"time"` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

type LogLevelCmd struct {
	Cmd   struct{} `"log"`                                                                                //nolint
	Level string   `[@( "micro"|"trace"|"debug"|"info"|"note"|"warn"|"error"|"off"|"D"|"I"|"N"|"W"|"E" )]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	err := commandParser.ParseBytes(b, cmd)
	return err
}
