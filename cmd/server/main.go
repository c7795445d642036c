package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"hppcalc/internal/cache"
	"hppcalc/internal/config"
	"hppcalc/internal/db"
	"hppcalc/internal/db/mock"
	applog "hppcalc/internal/log"
	"hppcalc/internal/server"
	"hppcalc/internal/sheets"
	"hppcalc/internal/syncer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		log.Fatalf("invalid log level: %v", err)
	}

	database, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("database initialization failed: %v", err)
	}

	var client *sheets.Client
	if cfg.Sheets.URL != "" {
		client, err = sheets.NewClient(sheets.Config{BaseURL: cfg.Sheets.URL, Timeout: cfg.Sheets.Timeout})
		if err != nil {
			log.Fatalf("invalid sheets configuration: %v", err)
		}
	} else {
		applog.Warn(context.Background(), "no sheet endpoint configured, running local-only")
	}

	controller := syncer.New(client, cache.NewStore(database, cfg.Cache.Limit), cfg.Sheets.ProbeInterval)
	defer controller.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	controller.Probe(ctx)
	controller.StartMonitor(ctx)

	srv := server.New(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Server.Session.Lifetime,
			CookieName:   cfg.Server.Session.CookieName,
			CookieDomain: cfg.Server.Session.CookieDomain,
			CookieSecure: cfg.Server.Session.CookieSecure,
		},
		Database: database,
		Syncer:   controller,
	})

	go func() {
		log.Printf("starting http server on %s", cfg.Server.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server encountered an error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	log.Println("shutting down http server")
	if err := srv.Stop(); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}

func openDatabase(cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.UseMock {
		applog.Info(context.Background(), "using seeded in-memory database")
		return mock.New(context.Background())
	}
	return db.Configure(cfg.Database)
}
