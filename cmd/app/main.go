package main

import (
	"hotelier/config"
	"hotelier/di"
	"hotelier/helper"
	"hotelier/shared/logger"
	"hotelier/shared/metrics"

	"github.com/rs/zerolog/log"
)

//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs --parseInternal

// @title Hotelier API
// @version 1.0
// @description Back office for room and hall bookings, check-out settlement and the seller pipeline.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Runner(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Auto migration failed")
		}
	}

	metrics.Register()

	http := di.InitializeService()
	http.Serve()
}
