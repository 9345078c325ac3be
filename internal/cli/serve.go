package cli

import (
	"github.com/spf13/cobra"

	"github.com/glad47/pos-sync-service/internal/auth"
	"github.com/glad47/pos-sync-service/internal/config"
	"github.com/glad47/pos-sync-service/internal/db"
	"github.com/glad47/pos-sync-service/internal/loyalty"
	"github.com/glad47/pos-sync-service/internal/obs"
	"github.com/glad47/pos-sync-service/internal/products"
	"github.com/glad47/pos-sync-service/internal/promotions"
	"github.com/glad47/pos-sync-service/internal/server"
	"github.com/glad47/pos-sync-service/internal/tax"
)

// NewServeCommand runs the HTTP sync feed.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the sync HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			obs.Init(cfg.AppEnv)

			pool, err := db.NewPostgres(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			src := db.NewPoolSource(pool)
			taxes := tax.NewFixedRate(cfg.TaxRate)

			prodRepo := products.NewRepo(src, taxes, cfg.PreferredLocale, cfg.FallbackLocale)
			loyRepo := loyalty.NewRepo(src, cfg.PreferredLocale, cfg.FallbackLocale)
			promoRepo := promotions.NewRepo(src, cfg.PreferredLocale, cfg.FallbackLocale)

			r := server.New(cfg.AppEnv, auth.NewTokenRepo(pool), server.Handlers{
				Products:   products.NewHandler(prodRepo),
				Loyalty:    loyalty.NewHandler(loyRepo),
				Promotions: promotions.NewHandler(promoRepo),
			})

			obs.Logger.Info("listening", "addr", cfg.HTTPAddr)
			return r.Run(cfg.HTTPAddr)
		},
	}
}
