package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/config.yaml"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	port       string
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "element-quiz",
		Short: "Multiple-choice quizzes about the chemical elements",
		Long: `element-quiz serves element quizzes over HTTP and websockets, manages the
Postgres element pool and results, and plays quizzes in the terminal.
A missing config file falls back to built-in defaults and the bundled dataset.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", envOr("CONFIG_PATH", defaultConfigPath), "YAML config file (env CONFIG_PATH)")
	pf.StringVar(&flags.port, "port", os.Getenv("PORT"), "HTTP port for start, overrides server.port (env PORT)")

	cmd.AddCommand(
		NewStartCmd(&flags.configPath, &flags.port),
		NewMigrateCmd(&flags.configPath),
		NewSeedCmd(&flags.configPath),
		NewPlayCmd(&flags.configPath),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
