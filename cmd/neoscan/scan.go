package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"neoscan/internal/engine"
	"neoscan/internal/logger"
	"neoscan/internal/netiface"
	"neoscan/internal/options"
	"neoscan/internal/summary"
)

func newScanCmd() *cobra.Command {
	opts := options.NewPortScanOptions()

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "scan a target's TCP/UDP ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}

			runID := uuid.NewString()
			logger.WithField("run_id", runID).Infof("starting scan of %s mode=%s ports=%d-%d", opts.Target, opts.Mode, opts.StartPort, opts.EndPort)

			cfg, err := opts.ToEngineConfig()
			if err != nil {
				return err
			}

			var dev *netiface.DeviceInterface
			if cfg.Mode.IsRaw() {
				dev, err = netiface.New()
				if err != nil {
					return fmt.Errorf("select interface: %w", err)
				}
			}

			eng := engine.New(cfg, dev)
			results, err := eng.Run(context.Background())
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if err := summary.Print(opts.Target, results); err != nil {
				return fmt.Errorf("render summary: %w", err)
			}
			if opts.Output != "" {
				if err := summary.WriteJSON(opts.Output, results); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}

			logger.WithField("run_id", runID).Infof("scan complete: %d ports reported", results.Len())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Target, "target", "a", opts.Target, "target IPv4 address")
	flags.IntVarP(&opts.StartPort, "start-port", "s", opts.StartPort, "first port")
	flags.IntVarP(&opts.EndPort, "end-port", "e", opts.EndPort, "last port")
	flags.IntVarP(&opts.Concurrency, "concurrency", "c", opts.Concurrency, "max in-flight probes")
	flags.IntVarP(&opts.TimeoutMs, "timeout", "t", opts.TimeoutMs, "per-probe timeout (ms)")
	flags.StringVarP(&opts.Mode, "mode", "m", opts.Mode, "scan mode: tcp, syn, null, fin, xmas, ack, udp")
	flags.StringVarP(&opts.Output, "output", "o", opts.Output, "optional path to write results as JSON")

	cmd.MarkFlagRequired("target")

	return cmd
}
