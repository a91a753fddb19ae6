package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/ymurata/kaiyaku-form/app"
	"github.com/ymurata/kaiyaku-form/config"
	"github.com/ymurata/kaiyaku-form/database"
	"github.com/ymurata/kaiyaku-form/gateway"
	"github.com/ymurata/kaiyaku-form/log"
	"github.com/ymurata/kaiyaku-form/pdf"
	"github.com/ymurata/kaiyaku-form/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	store := database.NewStore(db, cfg.SessionTTL)

	app := app.App{
		Gateway: gateway.New(cfg.GatewayURL, store),
		Store:   store,
		Fonts:   pdf.NewFontLoader(cfg.FontURL, cfg.FallbackFontURL),
		Config:  cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
