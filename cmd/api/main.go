package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"blogicum/cmd/app"
	"blogicum/internal/config"
	handlers "blogicum/internal/handler"
	"blogicum/internal/server"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML-файлу конфигурации")
	backend := flag.String("storage", app.StoragePostgres, "хранилище данных: postgres или memory")
	flag.Parse()

	// setting up config
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен")
	}

	services, closeFn, err := app.App(cfg, *backend)
	if err != nil {
		log.Fatalf("Ошибка инициализации: %v", err)
	}
	defer closeFn()

	handler := handlers.NewHandlers(services, cfg)
	router := server.NewRouter(handler, services.Auth, cfg)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s, хранилище: %s", addr, *backend)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
