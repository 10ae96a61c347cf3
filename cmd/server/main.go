package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Barisylp/Bigbang/internal/cache"
	"github.com/Barisylp/Bigbang/internal/config"
	"github.com/Barisylp/Bigbang/internal/database"
	"github.com/Barisylp/Bigbang/internal/game"
	"github.com/Barisylp/Bigbang/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment")
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	if err := cache.Init(cfg.RedisAddr); err != nil {
		logrus.WithError(err).Warn("action historian disabled")
	}
	if err := database.Connect(context.Background(), cfg.DatabaseURL); err != nil {
		logrus.WithError(err).Warn("match archive disabled")
	}
	defer database.Close()

	store := game.NewStore(cfg.CombatTimerSec)
	server := ws.NewServer(store)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	logrus.WithField("addr", cfg.Addr).Info("server listening")
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
