// Package cmd wires the FlexFit CLI: every command declares its access
// requirement and goes through the guard before rendering or fetching.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/flexfitapp/flexfit/internal/api"
	"github.com/flexfitapp/flexfit/internal/config"
	"github.com/flexfitapp/flexfit/internal/guard"
	"github.com/flexfitapp/flexfit/internal/log"
	"github.com/flexfitapp/flexfit/internal/session"
	"github.com/flexfitapp/flexfit/internal/ux"
)

// appEnv carries the shared dependencies every command uses. It is built
// once in the root PersistentPreRunE after flags are parsed.
type appEnv struct {
	cfg    *config.Config
	store  session.Store
	client *api.Client
	guard  *guard.Guard
	logger *log.Logger

	format  string
	noColor bool
}

var env *appEnv

var (
	flagHome     string
	flagFormat   string
	flagAPIURL   string
	flagNoColor  bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "flexfit",
	Short: "FlexFit membership client",
	Long: `flexfit is the command-line client for the FlexFit fitness platform.

Members sign up, verify their account, complete their fitness profile, and
browse membership plans. Administrators additionally manage the plan catalog
and member accounts.

Run 'flexfit auth login' to get started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupEnv()
	},
}

// setupEnv resolves config and constructs the shared dependencies.
func setupEnv() error {
	home := flagHome
	if home == "" {
		var err error
		home, err = config.DefaultHome()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(home)
	if err != nil {
		return err
	}
	if flagAPIURL != "" {
		cfg.APIBaseURL = flagAPIURL
	}

	logCfg := log.DefaultConfig()
	level := flagLogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	if level != "" {
		logCfg.Level = log.ParseLevel(level)
	}
	if cfg.LogFormat != "" {
		logCfg.Format = log.ParseFormat(cfg.LogFormat)
	}
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	store := session.NewFileStore(home, session.Fingerprint(cfg.APIBaseURL), logger)

	env = &appEnv{
		cfg:     cfg,
		store:   store,
		client:  api.New(cfg.APIBaseURL, store, logger),
		guard:   guard.New(store),
		logger:  logger,
		format:  flagFormat,
		noColor: flagNoColor,
	}
	return nil
}

// formatter builds the output formatter from the global flags.
func (e *appEnv) formatter() (ux.Formatter, error) {
	return ux.NewFormatter(e.format, &ux.FormatterOptions{
		Writer:  os.Stdout,
		NoColor: e.noColor,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "FlexFit home directory (default $FLEXFIT_HOME or ~/.flexfit)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "platform API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}
