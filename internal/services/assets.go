package services

import (
	"context"
	"fmt"
	"time"

	"urbexblog/internal/gitstore"
	"urbexblog/internal/logger"
	"urbexblog/internal/models"
	"urbexblog/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadsDir = "assets/uploads"

// RemoteStore — то, что сервисам нужно от канонического хранилища.
// Реализуется клиентом gitstore.
type RemoteStore interface {
	Configured() bool
	PutFile(ctx context.Context, path string, content []byte, message string) (*gitstore.CommitResult, error)
}

// AssetPublisher загружает изображения в канонический репозиторий под
// устойчивыми к коллизиям путями и возвращает их raw-URL.
type AssetPublisher struct {
	store RemoteStore
}

func NewAssetPublisher(store RemoteStore) *AssetPublisher {
	return &AssetPublisher{store: store}
}

// Publish коммитит один файл изображения. Путь собирается из метки времени,
// случайного uuid и очищенного исходного имени — два файла с одним именем
// никогда не перезапишут друг друга.
func (p *AssetPublisher) Publish(ctx context.Context, data []byte, originalName string) (models.Asset, error) {
	safeName := utils.SanitizeFilename(originalName)
	path := fmt.Sprintf("%s/%d-%s-%s", uploadsDir, time.Now().UnixMilli(), uuid.NewString(), safeName)

	res, err := p.store.PutFile(ctx, path, data, "Upload image "+safeName)
	if err != nil {
		logger.Log.Error("Ошибка загрузки изображения (service)",
			zap.String("name", originalName),
			zap.Error(err),
		)
		return models.Asset{}, err
	}

	logger.Log.Info("Изображение загружено (service)",
		zap.String("name", originalName),
		zap.String("path", path),
	)
	return models.Asset{Name: originalName, Path: path, URL: res.RawURL}, nil
}
