package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"govsync/internal/config"
	"govsync/internal/flags"
	"govsync/internal/logging"
)

var cfg = config.New()

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "govsync",
	Short: "Check and repair governance compliance across project documentation",
	Long: `GovSync validates project documentation against a governance schema,
detects version drift between the durable manifest and tracked files,
and repairs what it safely can.

Examples:
	# Show available commands and global flags
	govsync --help

	# Check compliance of the current directory
	govsync check

	# Preview version reconciliation
	govsync sync --dry-run

	# Print build info
	govsync version

Output:
	By default, commands write human-readable output to stdout.
	Some commands support structured output via emitter flags (see each command's --help).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logCfg := logging.DefaultConfig()
		if !cfg.Runtime.Verbose {
			// Task-level progress stays out of the way unless asked for.
			logCfg.Level = slog.LevelWarn
		} else {
			logCfg.Level = slog.LevelDebug
		}
		logging.Init(logCfg)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (task progress and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
