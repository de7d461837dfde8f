package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"bartab/internal/auth"
	"bartab/internal/catalog"
	catalogStore "bartab/internal/catalog/store"
	"bartab/internal/config"
	"bartab/internal/database"
	bartabHttp "bartab/internal/http"
	authHandler "bartab/internal/http/auth"
	catalogHandler "bartab/internal/http/catalog"
	ledgerHandler "bartab/internal/http/ledger"
	personHandler "bartab/internal/http/person"
	sessionHandler "bartab/internal/http/session"
	"bartab/internal/ledger"
	ledgerStore "bartab/internal/ledger/store"
	"bartab/internal/person"
	personStore "bartab/internal/person/store"
	"bartab/internal/session"
	sessionStore "bartab/internal/session/store"
	"bartab/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		catalogService = catalog.NewService(catalogStore.New(db))
		personService  = person.NewService(personStore.New(db))
		sessionService = session.NewService(sessionStore.New(db))
		ledgerService  = ledger.NewService(ledgerStore.New(db), sessionService, personService, catalogService)
		authService    = auth.NewService(cfg.Auth.AdminPIN, cfg.Auth.Secret)
	)

	var (
		authV1    = authHandler.NewHandler(authService)
		sessionV1 = sessionHandler.NewHandler(sessionService, ledgerService)
		ledgerV1  = ledgerHandler.NewHandler(ledgerService)
		catalogV1 = catalogHandler.NewHandler(catalogService)
		personV1  = personHandler.NewHandler(personService, ledgerService, personHandler.QRConfig{
			Account:        cfg.QR.Account,
			Currency:       cfg.QR.Currency,
			VariableSymbol: cfg.QR.VariableSymbol,
			Message:        cfg.QR.Message,
		})
	)

	router := bartabHttp.New(authService, authV1, sessionV1, ledgerV1, personV1, catalogV1, cfg.HTTP.CORSOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
