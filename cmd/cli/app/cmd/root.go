package cmd

import (
	"context"
	"os"
	"os/signal"

	"confedit/internal/cli/output"
	"confedit/internal/core"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	dryRun     *bool
)

var rootCmd = &cobra.Command{
	Use:   "confedit",
	Short: "Edits JSON, YAML, TOML and text files in place",
	Long: `Confedit applies small, structural edits to configuration files while
keeping untouched keys and their order intact.

Configuration is read from ~/.confedit.yaml and CONFEDIT__ environment
variables. Run 'confedit initialize' to create the file with default values.

Common workflows:
  confedit set package.json version=1.2.0       Set a key in a JSON file
  confedit set --append ci.yaml steps=[lint]    Append to a sequence
  confedit lines --insert 'flask==2.0' requirements.txt
  confedit apply -f update.yaml                 Run an update script
  confedit convert config.json config.yaml      Rewrite a file in another format`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	configPath = rootCmd.PersistentFlags().String("config", "", "Configuration file (default ~/.confedit.yaml)")
	rootCmd.PersistentFlags().StringP("workdir", "C", "", "Resolve relative paths against this directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
	dryRun = rootCmd.PersistentFlags().Bool("dry-run", false, "Print the changes instead of writing them")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		output.PrintError(err.Error())
		os.Exit(1)
	}
}

// settings collects what the injectors need before configuration is loaded.
func settings(cmd *cobra.Command) core.Settings {
	s := core.Settings{Flags: cmd.Flags()}
	if configPath != nil {
		s.ConfigPath = *configPath
	}
	return s
}

func isDryRun() bool {
	return dryRun != nil && *dryRun
}
