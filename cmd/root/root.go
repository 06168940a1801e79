// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bank-statementer/statementer/internal/config"
	"github.com/bank-statementer/statementer/internal/container"
	"github.com/bank-statementer/statementer/internal/logging"
)

// AppName is the binary and metrics application name.
const AppName = "statementer"

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppConfig is populated by PersistentPreRunE
	AppConfig *config.Config

	// ConfigFile and LogLevel are the persistent flag values
	ConfigFile string
	LogLevel   string

	appContainer *container.Container
	initOnce     sync.Once

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   AppName,
		Short: "Categorize bank statement transactions by description similarity.",
		Long: `statementer parses bank statement CSV exports and assigns each transaction
a category by comparing its description with descriptions the user has
already categorized. Corrections are remembered and applied to later uploads.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statementer!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return Shutdown()
		},
	}
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.statementer, ./.statementer or .)")
		Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	})
}

// initialize loads .env and configuration and installs the configured
// logger. The container is built lazily by GetContainer.
func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv(Log)

	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return err
	}
	if LogLevel != "" {
		level := strings.ToLower(LogLevel)
		if _, err := logrus.ParseLevel(level); err != nil {
			return fmt.Errorf("invalid log level: %s", LogLevel)
		}
		cfg.Log.Level = level
	}

	AppConfig = cfg
	Log = config.ConfigureLoggingFromConfig(cfg)
	logging.SetDefault(Log)
	return nil
}

// GetContainer returns the dependency container, building it on first use.
func GetContainer(ctx context.Context) (*container.Container, error) {
	if appContainer != nil {
		return appContainer, nil
	}
	if AppConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	c, err := container.NewContainerWithLogger(ctx, AppConfig, Log)
	if err != nil {
		return nil, fmt.Errorf("error initializing application: %w", err)
	}
	appContainer = c
	return c, nil
}

// Shutdown releases the container, if one was built.
func Shutdown() error {
	if appContainer == nil {
		return nil
	}
	err := appContainer.Close()
	appContainer = nil
	return err
}
