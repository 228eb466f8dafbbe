package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kudastat/kudastat/internal/analysis"
	"github.com/kudastat/kudastat/internal/buildinfo"
	"github.com/kudastat/kudastat/internal/config"
	"github.com/kudastat/kudastat/internal/logging"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "kudastat",
		Short:   "Analyze Kuda bank statement exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultFile, "config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAnalyzeCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newServeCommand(a))

	return rootCmd
}

// load reads .env, resolves the config and sets up logging. The config file
// is optional unless --config was given explicitly.
func (a *app) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		return err
	}
	cfg, err := config.Resolve(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	lc := logging.FromSettings(level, cfg.Log.JSON)
	lc.Output = cmd.ErrOrStderr()
	a.logger = logging.Setup(lc)
	return nil
}

func (a *app) service() *analysis.Service {
	return analysis.NewService(nil, a.logger)
}
