package server

import (
	"context"
	"net/http"

	"hppcalc/internal/handlers"
	applog "hppcalc/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/api/status", handlers.Status)
	mux.HandleFunc("/api/probe", handlers.Probe)
	mux.HandleFunc("/api/calculate", handlers.Calculate)
	mux.HandleFunc("/api/menus", handlers.MenuResource)
	mux.HandleFunc("/api/menus/", handlers.MenuResource)
	mux.HandleFunc("/api/ingredients", handlers.PriceList)
	mux.HandleFunc("/", handlers.Home)
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "http routes registered")
	return mux
}
