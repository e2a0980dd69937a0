package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dimdim-server/src/api"
	"dimdim-server/src/config"
	"dimdim-server/src/db"
	"dimdim-server/src/db/memory"
	dbsql "dimdim-server/src/db/sql"
	"dimdim-server/src/handlers"
	"dimdim-server/src/services"

	"github.com/rs/zerolog/log"
)

type backend struct {
	clients      services.ClientStore
	transactions services.TransactionStore
	tx           services.TxManager
	pinger       handlers.Pinger
	close        func()
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	if cfg.StoreDriver == config.StoreMemory {
		store := memory.New()
		log.Warn().Msg("Using the in-memory store; data is lost on restart")
		return &backend{
			clients:      store.Clients(),
			transactions: store.Transactions(),
			tx:           store,
			pinger:       store,
			close:        func() {},
		}, nil
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("Database schema is up to date")
	}
	return &backend{
		clients:      dbsql.NewClientStore(pool),
		transactions: dbsql.NewTransactionStore(pool),
		tx:           db.NewUow(pool),
		pinger:       pool,
		close:        pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.SetupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("DB connection failed")
	}
	defer be.close()

	clients := services.NewClientService(be.clients, be.tx)
	transactions := services.NewTransactionService(be.transactions, be.clients, be.tx)

	router := api.NewRouter(clients, transactions, be.pinger, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		DemoMode:       cfg.DemoMode,
		RequestTimeout: cfg.RequestTimeout,
		Info: handlers.AppInfo{
			Name:    cfg.AppName,
			Version: cfg.AppVersion,
			Started: time.Now(),
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Bool("demo_mode", cfg.DemoMode).Msg("API server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
