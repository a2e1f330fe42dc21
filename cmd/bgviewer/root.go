package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bgviewer/pkg/atlas"
	"bgviewer/pkg/config"
)

// app holds what every subcommand needs once the root command has run
type app struct {
	configPath string
	atlasDir   string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "bgviewer",
		Short:         "Brain atlas region lookup and hierarchy browser",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "bgviewer.yaml", "Configuration file")
	cmd.PersistentFlags().StringVar(&a.atlasDir, "atlas", "", "Atlas bundle directory (overrides the configuration)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: silent, error, warn, info or debug")

	cmd.AddCommand(newInfoCmd(a))
	cmd.AddCommand(newDescribeCmd(a))
	cmd.AddCommand(newPathCmd(a))
	cmd.AddCommand(newTreeCmd(a))
	cmd.AddCommand(newSceneCmd(a))
	cmd.AddCommand(newHoverCmd(a))
	cmd.AddCommand(newSliceCmd(a))
	cmd.AddCommand(newVoxelsCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	return cmd
}

// setup loads the configuration, applies flag overrides and creates the logger
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, config.DefaultEnvFiles)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("atlas") {
		cfg.Atlas.Dir = a.atlasDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}

	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// loadAtlas loads the configured atlas bundle
func (a *app) loadAtlas() (*atlas.Atlas, error) {
	if a.cfg.Atlas.Dir == "" {
		return nil, fmt.Errorf("no atlas directory: pass --atlas or set BGVIEWER_ATLAS_DIR")
	}
	return atlas.Load(a.cfg.Atlas.Dir, a.logger)
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
