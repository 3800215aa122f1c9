package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setUp reads the persistent --config/--verbose flags shared by every
// subcommand and builds the per-invocation logger and config, the way
// each subcommand's run function in the teacher's pack sibling
// (bufbuild/buf) is handed a ready-built container instead of parsing
// flags itself.
func setUp(cmd *cobra.Command) (*zap.Logger, func(), config, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, nil, config{}, err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, config{}, err
	}

	logger, sync, err := newLogger(verbose)
	if err != nil {
		return nil, nil, config{}, err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		sync()
		return nil, nil, config{}, err
	}

	return logger, sync, cfg, nil
}
