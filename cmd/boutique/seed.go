package main

import (
	"github.com/spf13/cobra"

	"github.com/mgluxury/boutique/internal/infrastructure/config"
	"github.com/mgluxury/boutique/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load categories, products and users into the configured store",
	Long: `Reads a seed YAML (the embedded default when --file is empty) and writes
it into the catalog store. Existing categories are kept. Users are written
with bcrypt password hashes when IDENTITY_PROVIDER=remote.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := seedFile
		if path == "" {
			path = cfg.SeedFile
		}
		file, err := seed.Load(path)
		if err != nil {
			return err
		}

		b, err := openBackends(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer b.close(ctx)
		if b.ephemeral {
			log.Warn().Msg("CATALOG_DRIVER=memory, seeded data will not outlive this command")
		}

		targets := seed.Targets{Categories: b.categories, Products: b.products}
		if cfg.Drivers.Identity == config.ProviderRemote {
			targets.Users = b.users
		}
		return seed.Apply(ctx, file, targets, log)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "seed YAML file (defaults to SEED_FILE, then the embedded seed)")
}
