package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcanaland/loteria/internal/config"
)

var (
	logger     = zap.NewNop()
	verbose    bool
	configPath string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "loteria",
	Short: "Generate Lotería game cards from a set of calling card images",
	Long: `Loteria builds printable Lotería game cards. Each game card tiles a unique,
randomly chosen set of calling card images into a grid and is framed inside a
game card template. It also builds 3x3 sheets of all calling cards and a report
listing the calling cards on every game card.

Pictures are read from <pic_dir>/input/calling_cards and
<pic_dir>/input/game_card_templates; results go to <pic_dir>/output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/loteria/config.toml)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// loadConfig reads the config file and applies the flags the user set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfigFrom(resolvedConfigPath())
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvedConfigPath returns --config, or the default config file path.
func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigFilePath()
}
