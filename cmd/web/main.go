package main

import (
	"context"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Inventario/internal/cache"
	"Inventario/internal/config"
	"Inventario/internal/inventory"
	"Inventario/internal/productos"
	"Inventario/internal/web"
	"Inventario/pkg/kit"
)

const (
	service    = "inventario-web"
	confirmTTL = 5 * time.Minute
)

func main() {
	log := kit.NewLogger(service, os.Getenv("LOG_LEVEL"))
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	upstream := kit.NewUpstreamMetrics(reg)

	store, closeStore, err := cache.Open(ctx, cache.Options{
		Backend:     cfg.CacheBackend,
		Dir:         cfg.CacheDir,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
		DatabaseURL: cfg.DatabaseURL,
	}, log)
	if err != nil {
		log.Fatal("open cache", zap.Error(err))
	}
	defer closeStore()
	store = cache.WithMetrics(store, upstream)

	api := productos.NewClient(cfg.APIURL, cfg.APITimeout)
	api.Metrics = upstream

	inv := inventory.NewController(api, store, log.Named("inventory"))

	// Mounting paints from cache and fetches in the background so the first
	// page is served without waiting on the product API.
	go func() {
		if err := inv.Mount(ctx); err != nil {
			log.Warn("initial load failed", zap.Error(err))
		}
	}()

	s := &web.Server{
		Inventory: inv,
		Cache:     store,
		Confirm:   web.NewConfirmTokens(cfg.ConfirmSecret, confirmTTL),
		APIURL:    cfg.APIURL,
		Log:       log,
	}
	h := web.NewHandler(s, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		MutationRate:   cfg.MutationRate,
		MutationBurst:  cfg.MutationBurst,
	})

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
