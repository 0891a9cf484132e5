package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dillkhus/order-api/internal/config"
	"github.com/dillkhus/order-api/internal/menu"
	"github.com/dillkhus/order-api/internal/router"
	"github.com/dillkhus/order-api/internal/session"
	"github.com/dillkhus/order-api/internal/sheets"
	"github.com/dillkhus/order-api/internal/ws"
)

func main() {
	cfg := config.Load()

	if cfg.SheetsURL == "" || cfg.SheetsURL == sheets.Placeholder {
		log.Println("WARNING: SHEETS_URL is not set; order submission will fail until it is configured")
	}

	sessions := session.NewStore()
	catalog := menu.NewDefault()

	hub := ws.NewHub()
	go hub.Run()

	policy := sheets.RetryPolicy{MaxAttempts: cfg.MaxRetries, BaseDelay: cfg.RetryDelay}
	submitter := sheets.NewClient(cfg.SheetsURL, cfg.SheetsMode, policy, nil)

	r := router.New(cfg, sessions, catalog, submitter, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
