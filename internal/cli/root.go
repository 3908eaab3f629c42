// Package cli implements the datefilter command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"
)

type app struct {
	v   *viper.Viper
	log zerolog.Logger
}

// NewCommand builds the root command with its own configuration.
func NewCommand() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "datefilter",
		Short:         "Describe, resolve and edit relative date filters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.initLogging(cmd.ErrOrStderr())
			a.initLogLevel()
			a.initConfig(a.v.GetString("config"))
			a.initLogLevel()
			a.traceConfig()
		},
		Version: Version,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	flags.Bool("local", false, "Configures the logger to print readable logs")
	flags.StringP("config", "c", "", "Path to the datefilter config file (default ./datefilter.toml)")
	flags.String("column", "Created At", "Column name used in display names and clauses")
	flags.String("week-start", "sunday", "First day of the week when resolving week ranges")
	flags.String("timezone", "", "Time zone ranges are resolved in (default: the zone of --now)")
	flags.StringP("output", "o", "text", "Output format [text, json]")
	flags.String("now", "", "Reference time in RFC 3339 (default: the current time)")

	a.v.BindPFlag(keyVerbose, flags.Lookup("verbose"))
	a.v.BindPFlag(keyLocal, flags.Lookup("local"))
	a.v.BindPFlag("config", flags.Lookup("config"))
	a.v.BindPFlag(keyColumn, flags.Lookup("column"))
	a.v.BindPFlag(keyWeekStart, flags.Lookup("week-start"))
	a.v.BindPFlag(keyTimezone, flags.Lookup("timezone"))
	a.v.BindPFlag(keyOutput, flags.Lookup("output"))
	a.v.BindPFlag(keyNow, flags.Lookup("now"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("datefilter version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(a.describeCommand())
	rootCmd.AddCommand(a.shortcutsCommand())
	rootCmd.AddCommand(a.editCommand())
	return rootCmd
}

func Execute() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
