package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"storefront_api/config"
	"storefront_api/config/values"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/services"
	"storefront_api/internal/storefront/business/services/cart"
	"storefront_api/internal/storefront/business/services/catalog"
	"storefront_api/internal/storefront/business/services/media"
	"storefront_api/internal/storefront/business/services/order"
	"storefront_api/internal/storefront/business/services/product"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/internal/storefront/storage"
	"storefront_api/metrics"
	"storefront_api/migrations"
	"storefront_api/pkg/business/service"
	"storefront_api/pkg/dbconnect"
	"storefront_api/pkg/dbconnect/migration"
	"storefront_api/pkg/logger"
)

// StorefrontServer wires the whole client: local cache, remote clients
// and the services on top. Run applies migrations, starts the periodic
// catalog sync and, when enabled, the metrics endpoint.
type StorefrontServer struct {
	dbconnect.Database
	config.StorefrontConfig
	session models.Session
	log     logger.Logger
	writer  io.Writer

	Catalog  *catalog.SyncEngine
	Cart     *cart.Store
	Pipeline *order.Pipeline
	History  *order.History
	Products *product.Service
	Uploader *media.Uploader
}

func NewServer(connector dbconnect.Database, cfg config.StorefrontConfig, session models.Session, writer io.Writer) *StorefrontServer {
	return &StorefrontServer{
		Database:         connector,
		StorefrontConfig: cfg,
		session:          session,
		log:              logger.NewLogger(writer, "[StorefrontServer]"),
		writer:           writer,
	}
}

func (s *StorefrontServer) Run(ctx context.Context) error {
	db, err := s.Connect()
	if err != nil {
		return err
	}
	defer db.Close()

	migrationApply := []migration.MigrationInterface{
		&migrations.CreateMigrationsRegistry{},
		&migrations.CreateStorefrontSchema{},
		&migrations.CreateProductsTable{},
		&migrations.CreateCartItemsTable{},
	}
	for _, m := range migrationApply {
		if err := m.UpMigration(db); err != nil {
			return err
		}
	}
	s.log.Log("storefront migrations applied successfully!")

	vals := s.SfValues
	if vals == (values.StorefrontValues{}) {
		vals = values.Defaults()
	}

	limiter := rate.NewLimiter(rate.Limit(float64(vals.RequestsPerMinute)/60.0), 5)
	// session token first, static api key as the service-level fallback
	var auth services.AuthEngine
	if bearer := services.NewSessionAuth(s.session); bearer != nil {
		auth = bearer
	} else if bearer := services.NewBearerAuth(s.ApiKey); bearer != nil {
		auth = bearer
	}

	productClient := clients.NewProductClient(s.ApiURL, s.writer, limiter)
	addressClient := clients.NewAddressClient(s.ApiURL, s.writer, auth, limiter)
	purchaseClient := clients.NewPurchaseClient(s.ApiURL, s.writer, auth, limiter)
	itemClient := clients.NewPurchaseItemClient(s.ApiURL, s.writer, auth, limiter)

	productRepo := storage.NewProductRepository(db)
	cartRepo := storage.NewCartRepository(db)
	text := service.NewTextService()

	s.Catalog = catalog.NewSyncEngine(productClient, productRepo, text, s.writer)
	s.Cart = cart.NewStore(cartRepo, s.writer)
	s.Uploader = media.NewUploader(productClient, vals, s.writer)
	s.Pipeline = order.NewPipeline(s.session, addressClient, purchaseClient, itemClient, s.Cart, vals.TaxRate, s.writer)
	s.History = order.NewHistory(purchaseClient, itemClient, addressClient, productRepo, s.writer)
	s.Products = product.NewService(productClient, productRepo, s.Uploader, text, s.writer)

	if s.MetricsOn {
		go s.serveMetrics()
	}

	return s.runSyncLoop(ctx, vals)
}

func (s *StorefrontServer) runSyncLoop(ctx context.Context, vals values.StorefrontValues) error {
	if _, err := s.Catalog.Sync(ctx); err != nil {
		s.log.Log("initial catalog sync failed: %v", err)
	}

	interval := time.Duration(vals.SyncIntervalMin) * time.Minute
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Catalog.Sync(ctx); err != nil {
				s.log.Log("catalog sync failed: %v", err)
			}
		}
	}
}

func (s *StorefrontServer) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.MetricsHandler())
	if err := http.ListenAndServe(":2112", mux); err != nil {
		s.log.Log("metrics endpoint stopped: %v", err)
	}
}
