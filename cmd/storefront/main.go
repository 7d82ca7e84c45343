package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hoangnd-dev/storefront/internal/cart"
	"github.com/hoangnd-dev/storefront/internal/catalog"
	"github.com/hoangnd-dev/storefront/internal/checkout"
	"github.com/hoangnd-dev/storefront/internal/gateway"
	"github.com/hoangnd-dev/storefront/internal/products"
	"github.com/hoangnd-dev/storefront/internal/seed"
	"github.com/hoangnd-dev/storefront/pkg/config"
	"github.com/hoangnd-dev/storefront/pkg/logger"
	"github.com/hoangnd-dev/storefront/pkg/metrics"
)

// The storefront binary is the client-side composition root: catalog and
// cart stores, the remote gateway with local fallback, and the checkout
// flow. With -demo it runs a scripted browse/add/checkout round trip.
func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	demo := flag.Bool("demo", false, "run a scripted catalog/cart/checkout round trip")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	m := metrics.New(prometheus.NewRegistry())

	var catalogStore catalog.Store
	var cartStore cart.Store
	switch cfg.Catalog.StoreBackend {
	case config.StoreBackendSQLite:
		// Both stores share the embedded file, one table each.
		catalogSQLite := catalog.NewSQLiteStore(cfg.Catalog.SQLitePath)
		defer catalogSQLite.Close()
		cartSQLite := cart.NewSQLiteStore(cfg.Catalog.SQLitePath)
		defer cartSQLite.Close()
		catalogStore = catalogSQLite
		cartStore = cartSQLite
	default:
		catalogStore = catalog.NewMemoryStore()
		cartStore = cart.NewMemoryStore()
	}

	if err := seed.Products(ctx, catalogStore, logg); err != nil {
		logg.Error(ctx, "failed to seed local catalog", err)
		os.Exit(1)
	}

	gatewayClient, err := gateway.NewClient(cfg.Gateway, logg)
	if err != nil {
		logg.Error(ctx, "failed to create gateway client", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartStore, catalogStore, logg, m)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(catalogStore, gatewayClient, cartService, logg, m)
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartService, gatewayClient, logg, m)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	logg.Info(ctx, "storefront services ready")

	if *demo {
		if err := runDemo(ctx, productService, cartService, checkoutService); err != nil {
			logg.Error(ctx, "demo run failed", err)
			os.Exit(1)
		}
	}
}

func runDemo(ctx context.Context, productSvc products.Service, cartSvc cart.Service, checkoutSvc checkout.Service) error {
	unsubscribe := cartSvc.SubscribeCount(func(count int) {
		fmt.Printf("cart badge: %d item(s)\n", count)
	})
	defer unsubscribe()

	all, err := productSvc.GetAll(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("catalog: %d products\n", len(all))
	if len(all) < 2 {
		return fmt.Errorf("catalog too small for demo")
	}

	if err := cartSvc.AddToCart(ctx, all[0].ID); err != nil {
		return err
	}
	if err := cartSvc.AddToCart(ctx, all[0].ID); err != nil {
		return err
	}
	if err := cartSvc.AddToCart(ctx, all[1].ID); err != nil {
		return err
	}

	total, err := cartSvc.TotalPrice(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("cart total: %s\n", total)

	doc, err := checkoutSvc.Submit(ctx, checkout.Form{
		Name:    "Nguyen Van A",
		Phone:   "0912345678",
		Address: "1 Tran Hung Dao, Ha Noi",
		Note:    "demo order",
	})
	if err != nil {
		return err
	}
	fmt.Printf("order placed for %s, total %s\n", doc.CustomerName, doc.TotalPrice)
	return nil
}
