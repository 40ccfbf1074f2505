// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command ignu-fw is the IGNU processor-side firmware entrypoint: it maps
// the PL BRAM regions (or simulates them), programs the ground-link UART's
// baud rate through its BRAM-mapped config block, and runs the data-plane
// task table until killed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.ignu.dev/firmware/conn/ring"
	"go.ignu.dev/firmware/conn/sensor"
	"go.ignu.dev/firmware/host/bram"
	"go.ignu.dev/firmware/host/egress"
	"go.ignu.dev/firmware/host/regmap"
	"go.ignu.dev/firmware/internal/config"
	"go.ignu.dev/firmware/internal/supervisor"
	"go.ignu.dev/firmware/pus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var sim bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "ignu-fw",
		Short: "IGNU processor-side navigation firmware",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if sim {
				cfg.Sim = true
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to a YAML configuration file")
	flags.BoolVar(&sim, "sim", false, "simulate PL BRAM regions instead of mapping real hardware")
	flags.StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	var zcfg zap.Config
	switch level {
	case "debug":
		zcfg = zap.NewDevelopmentConfig()
	default:
		zcfg = zap.NewProductionConfig()
		if lvl, err := zap.ParseAtomicLevel(level); err == nil {
			zcfg.Level = lvl
		}
	}
	return zcfg.Build()
}

func run(cfg config.Config) error {
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("ignu-fw: build logger: %w", err)
	}
	defer log.Sync()

	regionSize := cfg.RingDepth*cfg.SlotBytes + 4
	gpsRegion, imuRegion, cmdRegion, txRegion, xadcRegion, err := openRegions(cfg, regionSize)
	if err != nil {
		return err
	}
	ctrlRegion := bram.NewSimRegion(4)
	if !cfg.Sim {
		ctrlRegion, err = bram.Map(regmap.UARTTxCmd, 4)
		if err != nil {
			return err
		}
	}

	snap := &sensor.Snapshot{}
	state := &pus.CommandState{}
	txRing := ring.New(cfg.RingDepth, cfg.SlotBytes)

	sup := supervisor.New(&supervisor.Supervisor{
		Log:       log,
		GPSRegion: gpsRegion,
		IMURegion: imuRegion,
		CmdRegion: cmdRegion,
		SlotBytes: cfg.SlotBytes,
		Snapshot:  snap,
		CmdRing:   ring.New(cfg.RingDepth, cfg.SlotBytes),
		Dispatcher: &pus.Dispatcher{
			State:    state,
			Snapshot: snap,
			ReadTemp: func() int16 { return readBoardTemp(cfg, xadcRegion) },
			Log:      log,
		},
		Scheduler: &pus.Scheduler{
			Clock:    clock.New(),
			State:    state,
			Snapshot: snap,
		},
		Egress: &egress.Mux{
			Channels: []egress.Channel{{
				Num:       1,
				Src:       txRing,
				Region:    txRegion,
				EnableCmd: 1,
			}},
			Ctrl:    ctrlRegion,
			CtrlOff: 0,
		},
	})

	if err := configureUART(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("ignu-fw starting", zap.Bool("sim", cfg.Sim), zap.Int("ring_depth", cfg.RingDepth))
	return sup.Run(ctx)
}

func openRegions(cfg config.Config, regionSize int) (gps, imu, cmd, tx, xadc *bram.Region, err error) {
	if cfg.Sim {
		sim := bram.NewSimRegion
		return sim(regionSize), sim(regionSize), sim(regionSize), sim(regionSize), sim(4), nil
	}
	gps, err = bram.Map(regmap.RXSlotAddr(1), regionSize)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	imu, err = bram.Map(regmap.RXSlotAddr(2), regionSize)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	cmd, err = bram.Map(regmap.RXSlotAddr(3), regionSize)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	tx, err = bram.Map(regmap.TXSlotAddr(1), regionSize)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	xadc, err = bram.Map(regmap.XADCTemp, 4)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	return gps, imu, cmd, tx, xadc, nil
}

// configureUART writes each configured channel's baud-rate enum into the
// PL's UART-config block (§6). In sim mode it maps an in-memory region
// instead of real physical memory, the same sim/real split every other
// BRAM-mapped region uses.
func configureUART(cfg config.Config) error {
	for _, ch := range cfg.Channels {
		enum, ok := regmap.BaudEnum(ch.Baud)
		if !ok {
			return fmt.Errorf("ignu-fw: channel %d: unsupported baud rate %d", ch.Num, ch.Baud)
		}

		var region *bram.Region
		if cfg.Sim {
			region = bram.NewSimRegion(1)
		} else {
			var err error
			region, err = bram.Map(regmap.UARTConfigAddr(ch.Num), 1)
			if err != nil {
				return fmt.Errorf("ignu-fw: map UART config for channel %d: %w", ch.Num, err)
			}
		}
		region.Bytes()[0] = enum
		region.Close()
	}
	return nil
}

func readBoardTemp(cfg config.Config, region *bram.Region) int16 {
	if cfg.Sim || region.Len() < 4 {
		return 0
	}
	raw := uint16(region.Uint32At(0) >> 4 & 0xFFF)
	return int16(regmap.XADCTempC(raw) * 100)
}
