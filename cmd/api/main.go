package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aidar/blitz-entry/internal/app"
	"github.com/aidar/blitz-entry/internal/config"
	"github.com/aidar/blitz-entry/pkg/logger"
)

func main() {
	// Загружаем конфигурацию из .env и переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	zl, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Не удалось создать логгер: %v", err)
	}

	application, err := app.New(cfg, zl)
	if err != nil {
		zl.Fatal("Не удалось создать приложение", zap.Error(err))
	}

	// Загружаем состав команды и настраиваем роутинг
	ctx := context.Background()
	if err := application.Initialize(ctx); err != nil {
		zl.Fatal("Не удалось инициализировать приложение", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := application.Run(); err != nil {
			zl.Error("Ошибка сервера", zap.Error(err))
			sigChan <- syscall.SIGTERM
		}
	}()

	fmt.Printf("Сервер запущен на порту %s\n", cfg.Server.Port)
	fmt.Println("Нажмите Ctrl+C для остановки")

	<-sigChan
	fmt.Println("\nОстановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	if err := application.Shutdown(shutdownCtx); err != nil {
		cancel()
		zl.Error("Не удалось корректно остановить сервер", zap.Error(err))
		os.Exit(1)
	}
	cancel()

	fmt.Println("Сервер остановлен")
}
