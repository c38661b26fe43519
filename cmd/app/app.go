package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/repository"
	"blogicum/internal/repository/memory"
	"blogicum/internal/service"
	"blogicum/internal/storage"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// App wires repositories, image storage and services. The returned close
// function releases the database connection, if any.
func App(cfg *config.Config, backend string) (*service.Service, func(), error) {
	var (
		repo    *repository.Repository
		closeFn = func() {}
	)

	switch backend {
	case StoragePostgres:
		db, err := database.ConnectDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
		}
		repo = repository.NewRepository(db.DB)
		closeFn = func() {
			if err := db.CloseDB(); err != nil {
				log.Printf("Ошибка закрытия БД: %v", err)
			}
		}
	case StorageMemory:
		log.Println("Данные хранятся в памяти и пропадут после остановки")
		repo = memory.NewRepository()
	default:
		return nil, nil, fmt.Errorf("неизвестное хранилище %q", backend)
	}

	services := service.NewService(repo, cfg, connectImages(cfg))

	return services, closeFn, nil
}

// connectImages returns nil when MinIO is unusable; the blog then runs without image uploads.
func connectImages(cfg *config.Config) storage.Storage {
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Внимание: MinIO недоступен, загрузка изображений отключена: %v", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := minioClient.EnsureBucket(ctx); err != nil {
		log.Printf("Внимание: %v", err)
	}

	return minioClient
}
