package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"veridev/internal/assets"
	"veridev/internal/audit"
	"veridev/internal/catalog"
	"veridev/internal/escrow"
	escrowmetrics "veridev/internal/escrow/metrics"
	"veridev/internal/jwttoken"
	"veridev/internal/platform/config"
	"veridev/internal/platform/httpserver"
	"veridev/internal/platform/logger"
	"veridev/internal/platform/metrics"
	"veridev/internal/platform/postgres"
	platformredis "veridev/internal/platform/redis"
	"veridev/internal/registry"
	"veridev/internal/seller"
	httptransport "veridev/internal/transport/http"
)

// main wires the registry engine: stores, the shared transactional boundary,
// the asset ledger, the audit pipeline and the HTTP surface. Memory backends
// are the default; DATABASE_URL, REDIS_URL and KAFKA_BROKERS switch on the
// external ones.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	platformMetrics := metrics.New()
	escrowMetrics := escrowmetrics.New()

	var (
		sellerStore  seller.Store
		catalogStore catalog.Store
		escrowStore  escrow.Store
		engineTx     registry.Tx
		auditSink    audit.Store
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}

		sellerStore = seller.NewPostgres(db)
		catalogStore = catalog.NewPostgres(db)
		escrowStore = escrow.NewPostgres(db)
		engineTx = newRegistryPostgresTx(db, cfg.TxTimeout)
		auditSink = audit.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		sellerStore = seller.NewInMemoryStore()
		catalogStore = catalog.NewInMemoryStore()
		escrowStore = escrow.NewInMemoryStore()
		engineTx = registry.NewSerialTx(cfg.TxTimeout)
		auditSink = audit.NewInMemoryStore()
	}

	var ledger escrow.AssetLedger = assets.NewInMemoryLedger()
	if cfg.RedisURL != "" {
		client, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		ledger = assets.NewRedisLedger(client.Client)
		log.Info("using redis asset ledger")
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaStore, err := audit.NewKafkaStore(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()
		auditSink = kafkaStore
		log.Info("publishing registry events to kafka", "topic", cfg.AuditTopic)
	}

	inbox := make(chan audit.Event, 256)
	publisher := audit.NewChannelPublisher(inbox)
	worker := audit.NewWorker(auditSink, inbox, log)

	sellerSvc := seller.New(sellerStore, engineTx,
		seller.WithLogger(log),
		seller.WithAuditPublisher(publisher),
		seller.WithMetrics(platformMetrics),
	)
	catalogSvc := catalog.New(catalogStore, sellerSvc, engineTx,
		catalog.WithLogger(log),
		catalog.WithAuditPublisher(publisher),
		catalog.WithMetrics(platformMetrics),
	)
	escrowSvc := escrow.New(escrowStore, catalogStore, ledger, engineTx,
		escrow.WithLogger(log),
		escrow.WithAuditPublisher(publisher),
		escrow.WithMetrics(escrowMetrics),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "veridev", "veridev-registry")
	jwtValidator := jwttoken.NewJWTServiceAdapter(jwtService)

	router := httptransport.NewRouter(httptransport.Services{
		Sellers: sellerSvc,
		Catalog: catalogSvc,
		Escrow:  escrowSvc,
	}, log, platformMetrics, jwtValidator)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting registry engine", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
