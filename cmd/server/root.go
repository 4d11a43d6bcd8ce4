package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	EnvFile string
	Port    string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "qa-server",
		Short:        "Questions and answers HTTP API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(opts.EnvFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	bindRootFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))
	return cmd
}

func bindRootFlags(flags *pflag.FlagSet, opts *rootOptions) {
	flags.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVarP(&opts.Port, "port", "p", "", "listen port (overrides PORT)")
}

// loadEnvFile populates the environment from path. Variables already set
// win, and a missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
