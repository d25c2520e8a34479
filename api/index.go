package handler

import (
	"hotelier/config"
	"hotelier/di"
	"hotelier/shared/logger"
	"hotelier/shared/metrics"
	"net/http"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger(cfg)

	metrics.Register()

	handler := di.InitializeService()
	handler.ServeHTTP(w, r)
}
