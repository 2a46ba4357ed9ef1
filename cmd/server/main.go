// Command server runs the Stellar gateway HTTP API.
//
// @title        Stellar Gateway API
// @version      1.0
// @description  Custodial gateway for Stellar accounts, trustlines and payments.
// @BasePath     /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/caprim-labs/stellar-gateway/assets"
	"github.com/caprim-labs/stellar-gateway/config"
	"github.com/caprim-labs/stellar-gateway/events"
	"github.com/caprim-labs/stellar-gateway/events/kafka"
	"github.com/caprim-labs/stellar-gateway/horizon"
	"github.com/caprim-labs/stellar-gateway/observer"
	"github.com/caprim-labs/stellar-gateway/payments"
	"github.com/caprim-labs/stellar-gateway/server"
	"github.com/caprim-labs/stellar-gateway/store/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err.Error())
		os.Exit(1)
	}
	logger = logger.With("service", cfg.ServiceName)

	db, err := postgres.Connect(cfg.PostgresDSN)
	if err != nil {
		logger.Error("database connection failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		logger.Error("database migration failed", "error", err.Error())
		os.Exit(1)
	}

	ledger := horizon.New(cfg.HorizonURL)
	orchestrator := payments.New(ledger, assets.Default(), payments.Config{
		NetworkPassphrase: cfg.NetworkPassphrase,
		Production:        cfg.Production,
	}, logger)

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers)
	}

	accounts := postgres.NewStellarAccountRepository(db, logger)
	transactions := postgres.NewTransactionRepository(db, logger)
	assetRows := postgres.NewAssetRepository(db)

	srv := server.New(":"+cfg.HTTPPort, server.Deps{
		Payments:     orchestrator,
		Users:        postgres.NewUserRepository(db, logger),
		Accounts:     accounts,
		Transactions: transactions,
		Rates:        postgres.NewExchangeRateRepository(db, logger),
		Assets:       assetRows,
		Publisher:    publisher,
		Logger:       logger,
	})

	if cfg.ObserverEnabled {
		obs := observer.NewHorizonObserver(cfg.HorizonURL,
			observer.WithCursor(cfg.ObserverCursor),
			observer.WithLogger(logger))
		recorder := observer.NewRecorder(accounts, transactions, assetRows, publisher, logger)
		observer.RecordMirroredPayments(obs, recorder)
		go func() {
			if err := obs.Start(context.Background()); err != nil {
				logger.Error("payment observer stopped", "error", err.Error())
			}
		}()
		defer obs.Stop()
		logger.Info("payment observer enabled", "cursor", cfg.ObserverCursor)
	}

	logger.Info("gateway ready",
		"horizon", cfg.HorizonURL,
		"production", cfg.Production)
	if err := srv.Start(); err != nil {
		logger.Error("http server stopped", "error", err.Error())
		os.Exit(1)
	}
}
