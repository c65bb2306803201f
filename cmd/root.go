package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/wave-line/internal/config"
	"github.com/iburimskiy/wave-line/internal/game"
	"github.com/iburimskiy/wave-line/internal/observability"
)

const envPrefix = "WAVELINE"

// runFunc starts the window. Tests swap it out.
type runFunc func(ctx context.Context, cfg *config.Config, logger *zap.Logger) error

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"width":       "window.width",
	"height":      "window.height",
	"debug":       "render.debug",
	"auto-ripple": "demo.auto_ripple_interval",
	"tap-slop":    "input.tap_slop",
	"log-level":   "logger.level",
}

// newRootCmd builds the command around its own viper instance so every
// invocation starts from the defaults.
func newRootCmd(run runFunc) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	var (
		cfgFile string
		cfg     *config.Config
	)

	cmd := &cobra.Command{
		Use:          "wave-line",
		Short:        "A breathing line that ripples when you touch it.",
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}
			c, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			logger, err := observability.New(c.Logger, zapcore.Lock(os.Stderr))
			if err != nil {
				return err
			}
			cfg = c
			observability.Install(logger)
			logger.Info("Starting wave-line", zap.String("version", Version))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer observability.Sync()
			return run(cmd.Context(), cfg, observability.L())
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./wave-line.yaml)")
	flags := cmd.Flags()
	flags.Int("width", 0, "initial window width")
	flags.Int("height", 0, "initial window height")
	flags.Bool("debug", false, "show the debug overlay")
	flags.Duration("auto-ripple", 0, "drop a ripple at a random point this often")
	flags.Float64("tap-slop", 0, "drag distance up to which a release counts as a click")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	// a bound flag only overrides the config once it is set
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd(game.Run)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		// cobra has already printed err to stderr
		observability.L().Error("Command execution failed", zap.Error(err))
		observability.Sync()
		os.Exit(1)
	}
}

// initializeConfig reads the config file, if any, and the environment.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("wave-line")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// no file; defaults and environment only
	}
	return nil
}
