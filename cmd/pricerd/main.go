package main

import (
	"log"
	"net/http"
	"time"

	"github.com/bcdannyboy/eurostrat/api"
	"github.com/bcdannyboy/eurostrat/config"
	"github.com/bcdannyboy/eurostrat/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Logging); err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer logger.Close()

	router := api.NewRouter(api.NewPriceHandler(cfg.Pricing.Workers))
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.L().Info("pricing server listening", "addr", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L().Error("server stopped", "err", err)
		log.Fatal(err)
	}
}
