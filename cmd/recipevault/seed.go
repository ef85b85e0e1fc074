package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-vault/backend/internal/database"
	"github.com/pageza/recipe-vault/backend/internal/storage"
)

func seedCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled recipes and shopping lists into storage",
		Long: `Write the bundled sample recipes and shopping lists to the configured
storage backend. Existing data is left alone unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conns, err := database.Connect(ctx, a.cfg)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer conns.Close()

			written, err := storage.SeedDefaults(ctx, conns.Storage, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(written) == 0 {
				fmt.Fprintln(out, "storage already seeded, nothing written (use --force to reset)")
				return nil
			}
			for _, key := range written {
				fmt.Fprintf(out, "seeded %s\n", key)
			}
			a.logger.Info("seed complete", "backend", a.cfg.Storage.Backend, "keys", written, "force", force)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing data")
	return cmd
}
