package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"lavanderia/auth"
	"lavanderia/config"
	"lavanderia/database"
	"lavanderia/render"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config load error: %v", err)
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Info("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		logrus.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()

	if err := database.Init(dbConn); err != nil {
		logrus.Fatalf("Database initialization failed: %v", err)
	}
	logrus.Info("Database initialization complete.")

	pages, err := render.New(render.Globals{
		WhatsAppNumber: cfg.ShopWhatsApp,
		ShopAddress:    cfg.ShopAddress,
		PromoBanner:    cfg.PromoBanner,
	})
	if err != nil {
		logrus.Fatalf("Failed to load templates: %v", err)
	}
	logrus.Info("HTML templates loaded and parsed.")

	sessions := auth.NewSessions(cfg.SessionSecret)

	mux := http.NewServeMux()
	SetupRoutes(mux, dbConn, cfg, sessions, pages)

	logrus.Infof("Starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		logrus.Fatalf("server start error: %v", err)
	}
}
