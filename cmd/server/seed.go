package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-qa-backend/internal/config"
	"github.com/tbourn/go-qa-backend/internal/seed"
	"github.com/tbourn/go-qa-backend/internal/sysutil"
)

func newSeedCommand(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load questions from a JSON/JSONC file into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadStoreOnly()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty)
			if cfg.Store.Backend == config.BackendMemory {
				return fmt.Errorf("seed needs STORE_BACKEND=%s; the memory store does not outlive this command", config.BackendDatabase)
			}

			store, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := seed.Run(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			log.Info().Int("questions", n).Str("path", args[0]).Msg("seed complete")
			return nil
		},
	}
}
