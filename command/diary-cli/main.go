// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/diaryd/chain"
	"github.com/bitmark-inc/diaryd/configuration"
	"github.com/bitmark-inc/diaryd/constants"
	"github.com/bitmark-inc/diaryd/diary"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/storage"
)

type metadata struct {
	config  *configuration.Configuration
	testnet bool
	verbose bool
	log     *logger.L
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "diary-cli"
	app.Usage = "keep diaries in a local slot store"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "diary-cli.conf",
			Usage: " configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` signing as diary owner",
		},
	}

	idFlag := cli.UintFlag{
		Name:  "id, d",
		Value: 0,
		Usage: " diary identity `NUMBER`",
	}
	slotFlag := cli.StringFlag{
		Name:  "slot, s",
		Value: "",
		Usage: "*record slot identity `NAME` or private key",
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a key pair, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "allocate",
			Usage:     "allocate an empty record slot",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				slotFlag,
				cli.Uint64Flag{
					Name:  "capacity, n",
					Value: constants.RecordSlotSize,
					Usage: " slot capacity in `BYTES`",
				},
				cli.Uint64Flag{
					Name:  "deposit, p",
					Value: 0,
					Usage: " value refunded when the slot is closed `AMOUNT`",
				},
			},
			Action: runAllocate,
		},
		{
			Name:      "create",
			Usage:     "create a diary owned by the current identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				idFlag,
				cli.StringFlag{
					Name:  "name, a",
					Value: "",
					Usage: "*diary name `STRING`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "add",
			Usage:     "add a record to a diary or patch an existing one",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				idFlag,
				slotFlag,
				cli.StringFlag{
					Name:  "text, t",
					Value: "",
					Usage: " record text `STRING`",
				},
				cli.UintFlag{
					Name:  "offset, o",
					Value: 0,
					Usage: " byte offset to write the text at `OFFSET`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "remove",
			Usage:     "remove a record, wipe its slot and refund its deposit",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				idFlag,
				slotFlag,
			},
			Action: runRemove,
		},
		{
			Name:      "show",
			Usage:     "show a diary of the current identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				idFlag,
				cli.StringFlag{
					Name:  "owner, w",
					Value: "",
					Usage: " owner `ACCOUNT` [default: current identity]",
				},
			},
			Action: runShow,
		},
		{
			Name:      "read",
			Usage:     "read the text of a record slot",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, s",
					Value: "",
					Usage: "*slot `ADDRESS` or identity name",
				},
			},
			Action: runRead,
		},
		{
			Name:      "balance",
			Usage:     "value refunded to an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, s",
					Value: "",
					Usage: " `ADDRESS` or identity name [default: current identity]",
				},
			},
			Action: runBalance,
		},
		{
			Name:  "version",
			Usage: "display diary-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "" == command || "help" == command {
			return nil
		}

		file := c.GlobalString("config-file")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		options, err := configuration.GetConfiguration(file)
		if nil != err {
			return err
		}

		if err := logger.Initialise(options.Logging); nil != err {
			return err
		}
		if err := fault.Initialise(); nil != err {
			return err
		}

		log := logger.New("main")
		log.Infof("version: %s  chain: %s", version, options.Chain)

		if err := storage.Initialise(options.Database.Name, storage.ReadWrite); nil != err {
			log.Criticalf("storage initialise error: %s", err)
			return err
		}

		testnet := chain.IsTesting(options.Chain)
		if err := diary.Initialise(testnet); nil != err {
			log.Criticalf("diary initialise error: %s", err)
			return err
		}

		c.App.Metadata["config"] = &metadata{
			config:  options,
			testnet: testnet,
			verbose: verbose,
			log:     log,
			e:       e,
			w:       w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		_ = diary.Finalise()
		storage.Finalise()
		m.log.Info("finished")
		fault.Finalise()
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
