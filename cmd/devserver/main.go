package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"homekeeper/internal/app/client/config"
	"homekeeper/internal/app/devserver/api"
	"homekeeper/internal/app/devserver/storage/memory"
	"homekeeper/internal/utils/logger"
)

// Дев-сервер HomeKeeper: полный серверный API поверх памяти процесса.
// Используется для локальной разработки и интеграционных прогонов
// клиента.
func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	store := memory.NewStore(log)
	mux := api.New(store, log)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Дев-сервер запущен", "addr", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Ошибка сервера", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка остановки сервера", "error", err)
	}

	log.Info("Дев-сервер остановлен")
}
