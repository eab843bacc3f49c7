// Package cmd defines the fleet agent CLI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fleetyard/fleetagent/app"
	"github.com/fleetyard/fleetagent/config"
	"github.com/fleetyard/fleetagent/infra/logger"
)

var (
	cfgPath     string
	sendFlag    bool
	loopFlag    bool
	intervalMin int
)

var rootCmd = &cobra.Command{
	Use:   "fleetagent",
	Short: "Fleet maintenance agent: finds Service/MOT actions and notifies once",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.Flags().BoolVar(&sendFlag, "send", false, "deliver emails instead of logging them")
	rootCmd.Flags().BoolVar(&loopFlag, "loop", false, "repeat passes on a fixed interval")
	rootCmd.Flags().IntVar(&intervalMin, "interval", 0, "minutes between passes in loop mode")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("send") {
		cfg.Agent.Send = sendFlag
	}
	if cmd.Flags().Changed("loop") {
		cfg.Agent.Loop = loopFlag
	}
	if intervalMin > 0 {
		cfg.Agent.IntervalMinutes = intervalMin
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
