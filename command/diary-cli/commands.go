// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/diaryd/account"
	"github.com/bitmark-inc/diaryd/diary"
	"github.com/bitmark-inc/diaryd/instruction"
	"github.com/bitmark-inc/diaryd/slot"
)

type keyResult struct {
	PrivateKey string       `json:"private_key"`
	Account    string       `json:"account"`
	Address    slot.Address `json:"slot_address"`
}

func runGenerate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	key, err := account.NewPrivateKey(m.testnet)
	if nil != err {
		return err
	}
	address, err := slot.AddressFromAccount(key.Account())
	if nil != err {
		return err
	}

	return printJson(m.w, keyResult{
		PrivateKey: key.String(),
		Account:    key.Account().String(),
		Address:    address,
	})
}

func runAllocate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	slotKey, err := getKey(m, c.String("slot"))
	if nil != err {
		return err
	}

	in := &instruction.AllocateSlot{
		Slot:     slotKey.Account(),
		Capacity: c.Uint64("capacity"),
		Deposit:  c.Uint64("deposit"),
	}
	if err := in.Sign(slotKey); nil != err {
		return err
	}
	return process(m, in)
}

func runCreate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	name := c.String("name")
	if "" == name {
		return fmt.Errorf("diary name is required")
	}

	owner, err := getIdentity(m, c.GlobalString("identity"))
	if nil != err {
		return err
	}

	in := &instruction.CreateDiary{
		Authority: owner.Account(),
		ID:        uint32(c.Uint("id")),
		Name:      name,
	}
	if err := in.Sign(owner); nil != err {
		return err
	}
	return process(m, in)
}

func runAdd(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := getIdentity(m, c.GlobalString("identity"))
	if nil != err {
		return err
	}
	slotKey, err := getKey(m, c.String("slot"))
	if nil != err {
		return err
	}

	in := &instruction.AddRecord{
		Authority: owner.Account(),
		ID:        uint32(c.Uint("id")),
		Slot:      slotKey.Account(),
		Text:      c.String("text"),
		Offset:    uint32(c.Uint("offset")),
	}
	if err := in.Sign(owner, slotKey); nil != err {
		return err
	}
	return process(m, in)
}

func runRemove(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := getIdentity(m, c.GlobalString("identity"))
	if nil != err {
		return err
	}
	slotKey, err := getKey(m, c.String("slot"))
	if nil != err {
		return err
	}

	in := &instruction.RemoveRecord{
		Authority: owner.Account(),
		ID:        uint32(c.Uint("id")),
		Slot:      slotKey.Account(),
	}
	if err := in.Sign(owner, slotKey); nil != err {
		return err
	}
	return process(m, in)
}

type showResult struct {
	Owner   slot.Address   `json:"owner"`
	Address slot.Address   `json:"address"`
	ID      uint32         `json:"id"`
	Name    string         `json:"name"`
	Records []slot.Address `json:"records"`
}

func runShow(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	var owner slot.Address
	var err error
	if s := c.String("owner"); "" != s {
		owner, err = getAddress(m, s)
	} else {
		var key *account.PrivateKey
		key, err = getIdentity(m, c.GlobalString("identity"))
		if nil == err {
			owner, err = slot.AddressFromAccount(key.Account())
		}
	}
	if nil != err {
		return err
	}

	id := uint32(c.Uint("id"))
	d, err := diary.ReadDiary(owner, id)
	if nil != err {
		return err
	}
	address, err := diaryAddress(owner, id)
	if nil != err {
		return err
	}

	return printJson(m.w, showResult{
		Owner:   owner,
		Address: address,
		ID:      d.ID,
		Name:    d.Name,
		Records: d.Records,
	})
}

type readResult struct {
	Address slot.Address `json:"address"`
	Length  int          `json:"length"`
	Text    string       `json:"text"`
}

func runRead(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	address, err := getAddress(m, c.String("address"))
	if nil != err {
		return err
	}

	text, err := diary.ReadRecord(address)
	if nil != err {
		return err
	}

	return printJson(m.w, readResult{
		Address: address,
		Length:  len(text),
		Text:    text,
	})
}

type balanceResult struct {
	Address slot.Address `json:"address"`
	Balance uint64       `json:"balance,string"`
}

func runBalance(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	s := c.String("address")
	if "" == s {
		s = c.GlobalString("identity")
	}
	address, err := getAddress(m, s)
	if nil != err {
		return err
	}

	balance, err := diary.Balance(address)
	if nil != err {
		return err
	}

	return printJson(m.w, balanceResult{
		Address: address,
		Balance: balance,
	})
}

// pack an instruction and run it against the local store
func process(m *metadata, in instruction.Instruction) error {
	packed, err := in.Pack()
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "instruction: %T  packed: %x\n", in, packed)
	}

	err = diary.Process(packed)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "ok\n")
	return nil
}
