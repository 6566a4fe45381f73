package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/mgluxury/boutique/internal/api"
	"github.com/mgluxury/boutique/internal/core/money"
	"github.com/mgluxury/boutique/internal/core/ports"
	"github.com/mgluxury/boutique/internal/core/service"
	"github.com/mgluxury/boutique/internal/infrastructure/config"
	"github.com/mgluxury/boutique/internal/infrastructure/imgbb"
	"github.com/mgluxury/boutique/internal/infrastructure/queue"
	"github.com/mgluxury/boutique/internal/seed"
	"github.com/mgluxury/boutique/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close(context.Background())

	file, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}
	if b.ephemeral {
		if err := seed.Apply(ctx, file, seed.Targets{Categories: b.categories, Products: b.products}, log); err != nil {
			return err
		}
	}

	var identities ports.IdentityProvider
	switch cfg.Drivers.Identity {
	case config.ProviderRemote:
		identities = service.NewRemoteProvider(b.users)
	default:
		users := file.Identities()
		if len(users) == 0 {
			users = service.DefaultUsers()
		}
		identities = service.NewStaticListProvider(users)
		log.Warn().Int("users", len(users)).Msg("static identity list in use, passwords compared in plaintext")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret"
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	formatter := money.NewFormatter(cfg.Shop.Locale, cfg.Shop.CurrencySuffix)
	locale, err := language.Parse(cfg.Shop.Locale)
	if err != nil {
		locale = language.French
	}

	catalogSvc := service.NewCatalogService(b.categories, b.products, locale, logger.For("catalog"))
	cartSvc := service.NewCartService(b.slot, b.products, logger.For("cart"))
	checkoutSvc := service.NewCheckoutService(cartSvc, b.orders, b.items, service.CheckoutConfig{
		Recipient:      cfg.Shop.WhatsAppNumber,
		PersistTimeout: cfg.Shop.PersistTimeout,
		Formatter:      formatter,
	}, logger.For("checkout"))
	authSvc := service.NewAuthService(identities, b.slot, cfg.JWTSecret, cfg.TokenTTL, logger.For("auth"))
	eventSvc := service.NewOrderEventService(b.orders, b.events, b.dedup, logger.For("order_events"))
	adminSvc := service.NewAdminService(b.categories, b.products, b.orders, b.items, eventSvc, cfg.Shop.PageSize, logger.For("admin"))
	imageSvc := service.NewImageService(
		imgbb.NewClient(cfg.Images.Endpoint, cfg.Images.APIKey, &http.Client{Timeout: 30 * time.Second}),
		cfg.Images.MaxBytes, logger.For("images"),
	)

	dispatcher := queue.NewDispatcher(cfg.DispatcherWorkers, eventSvc, logger.For("dispatcher"))

	e := api.NewRouter(api.Dependencies{
		Log:           log,
		JWTSecret:     cfg.JWTSecret,
		Formatter:     formatter,
		PageSize:      cfg.Shop.PageSize,
		MaxImageBytes: cfg.Images.MaxBytes,
		Catalog:       catalogSvc,
		Cart:          cartSvc,
		Checkout:      checkoutSvc,
		Auth:          authSvc,
		Account:       service.NewAccountService(b.orders),
		Admin:         adminSvc,
		Images:        imageSvc,
		Dispatcher:    dispatcher,
		Health:        b.health,
	})

	g, gctx := errgroup.WithContext(ctx)
	dispatcher.Start(gctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return e.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	dispatcher.Wait()
	return err
}
