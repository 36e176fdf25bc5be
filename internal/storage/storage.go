package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"jobboard_backend/internal/config"
)

// Storage определяет интерфейс файлового хранилища
type Storage interface {
	// Save сохраняет файл по указанному пути
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get возвращает содержимое файла
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete удаляет файл
	Delete(ctx context.Context, path string) error

	// Exists проверяет существование файла
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL возвращает публичный URL файла
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL возвращает временную подписанную ссылку для приватных файлов
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// GetSize возвращает размер файла в байтах
	GetSize(ctx context.Context, path string) (int64, error)
}

// Config содержит настройки хранилища
type Config struct {
	Type       string // local, s3
	BasePath   string // для local хранилища
	BaseURL    string // база публичных URL
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // для S3-совместимых хранилищ (MinIO и т.п.)
	UseSSL     bool
	PublicRead bool // делать файлы публичными при загрузке
}

// ConfigFromApp собирает конфигурацию хранилища из конфигурации приложения
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	}
}

// NewStorage создает хранилище по конфигурации
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
