// Command boutique runs the MG Luxury storefront API and its maintenance tasks.
//
// @title                       MG Luxury Boutique API
// @version                     1.0
// @description                 Storefront catalog, cart, checkout and back office of the MG Luxury boutique.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mgluxury/boutique/internal/infrastructure/config"
	"github.com/mgluxury/boutique/pkg/logger"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "boutique",
	Short:         "MG Luxury boutique storefront and back office API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd == versionCmd {
			return
		}
		cfg = config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())
		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.LogPretty,
			Service: "boutique",
			Version: version,
			Caller:  !cfg.IsProduction(),
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "boutique", version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
