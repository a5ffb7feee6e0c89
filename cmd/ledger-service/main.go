package main

import (
	"fmt"
	"os"

	"github.com/torebek/gigledger/internal/auth"
	"github.com/torebek/gigledger/internal/config"
	"github.com/torebek/gigledger/internal/db"
	"github.com/torebek/gigledger/internal/excel"
	httphandler "github.com/torebek/gigledger/internal/http"
	"github.com/torebek/gigledger/internal/http/middleware"
	"github.com/torebek/gigledger/internal/logger"
	"github.com/torebek/gigledger/internal/pdf"
	"github.com/torebek/gigledger/internal/repository"
	"github.com/torebek/gigledger/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	analyticsRepo := repository.NewAnalyticsRepository(database)

	queryService := service.NewQueryService(contractRepo)
	paymentService := service.NewPaymentService(paymentRepo)
	depositService := service.NewDepositService(paymentRepo, cfg)
	analyticsService := service.NewAnalyticsService(analyticsRepo, excel.NewGenerator(), pdf.NewGenerator(), cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(queryService, paymentService, depositService, analyticsService, log)
	authMiddleware := middleware.Auth(tokenParser, contractRepo)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting ledger service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
