package services

import (
	"context"
	"fmt"
	"time"

	"urbexblog/internal/apperr"
	"urbexblog/internal/logger"
	"urbexblog/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostMirror — локальное зеркало постов (реализуется repository.PostRepository).
type PostMirror interface {
	List(ctx context.Context) ([]*models.Post, error)
	Insert(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id, title, date, content string) (*models.Post, error)
	Delete(ctx context.Context, id string) (*models.Post, error)
	ReplaceAll(ctx context.Context, posts []*models.Post) error
}

// PostService — пайплайн публикации: валидация → загрузка ассетов →
// рендер документа → коммит → запись в зеркало. Любой сбой этапа
// прерывает все последующие. Чтение всегда идёт из зеркала; правка и
// удаление трогают только зеркало, канонический документ остаётся как
// был закоммичен при создании (осознанная асимметрия, не баг).
type PostService struct {
	repo   PostMirror
	store  RemoteStore
	assets *AssetPublisher
}

func NewPostService(repo PostMirror, store RemoteStore, assets *AssetPublisher) *PostService {
	return &PostService{repo: repo, store: store, assets: assets}
}

// UploadedImage — изображение из multipart-формы, ещё не опубликованное.
type UploadedImage struct {
	Name string
	Data []byte
}

type CreatePostInput struct {
	Title   string
	Date    string
	Content string
	Tags    string
	Images  []UploadedImage
}

// parsePostDate принимает дату поста в форме YYYY-MM-DD либо RFC3339.
func parsePostDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: нечитаемая дата %q", apperr.ErrInvalidInput, raw)
}

// Create проводит пост через пайплайн публикации. Если канонический
// репозиторий не настроен, срабатывает деградированный путь: пост без
// изображений пишется только в зеркало (без remotePath), пост с
// изображениями отклоняется — молча терять загруженные файлы нельзя.
func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*models.Post, []models.Asset, error) {
	logger.Log.Info("Сервис: создание поста", zap.String("title", input.Title))

	if input.Title == "" || input.Date == "" || input.Content == "" {
		logger.Log.Warn("Сервис: не заполнены обязательные поля поста")
		return nil, nil, apperr.ErrInvalidInput
	}
	date, err := parsePostDate(input.Date)
	if err != nil {
		logger.Log.Warn("Сервис: нечитаемая дата поста", zap.String("date", input.Date))
		return nil, nil, err
	}

	now := time.Now()

	if !s.store.Configured() {
		if len(input.Images) > 0 {
			logger.Log.Warn("Сервис: изображения без настроенного репозитория")
			return nil, nil, apperr.ErrRemoteUnconfigured
		}
		post := &models.Post{
			ID:        uuid.NewString(),
			Title:     input.Title,
			Date:      input.Date,
			Content:   input.Content,
			CreatedAt: now.UnixMilli(),
		}
		if err := s.repo.Insert(ctx, post); err != nil {
			logger.Log.Error("Сервис: ошибка записи в зеркало", zap.Error(err))
			return nil, nil, err
		}
		logger.Log.Info("Сервис: пост создан локально (репозиторий не настроен)",
			zap.String("post_id", post.ID))
		return post, nil, nil
	}

	// Ассеты публикуются до коммита документа: документ никогда не должен
	// ссылаться на незагруженное изображение, поэтому первый же сбой
	// отменяет всё создание.
	assets := make([]models.Asset, 0, len(input.Images))
	for _, img := range input.Images {
		asset, err := s.assets.Publish(ctx, img.Data, img.Name)
		if err != nil {
			return nil, nil, err
		}
		assets = append(assets, asset)
	}

	rendered := RenderDocument(input.Title, date, input.Tags, input.Content, assets, now)

	if _, err := s.store.PutFile(ctx, rendered.Path, []byte(rendered.Document), "Add post: "+input.Title); err != nil {
		logger.Log.Error("Сервис: ошибка коммита документа",
			zap.String("path", rendered.Path),
			zap.Error(err),
		)
		return nil, nil, err
	}

	urls := make([]string, 0, len(assets))
	for _, a := range assets {
		urls = append(urls, a.URL)
	}

	post := &models.Post{
		ID:         uuid.NewString(),
		Title:      input.Title,
		Date:       input.Date,
		Content:    rendered.Body,
		Images:     urls,
		RemotePath: rendered.Path,
		CreatedAt:  now.UnixMilli(),
	}
	// Зеркало обновляется последним и только после завершения сетевой
	// работы: его мьютекс не должен держаться на время медленных коммитов.
	if err := s.repo.Insert(ctx, post); err != nil {
		logger.Log.Error("Сервис: документ закоммичен, но зеркало не обновлено",
			zap.String("path", rendered.Path),
			zap.Error(err),
		)
		return nil, nil, err
	}

	logger.Log.Info("Сервис: пост создан",
		zap.String("post_id", post.ID),
		zap.String("path", rendered.Path),
		zap.Int("images", len(urls)),
	)
	return post, assets, nil
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		logger.Log.Error("Сервис: ошибка чтения зеркала", zap.Error(err))
		return nil, err
	}
	return posts, nil
}

// Update правит только зеркало: канонический документ не перезаписывается.
func (s *PostService) Update(ctx context.Context, id, title, date, content string) (*models.Post, error) {
	logger.Log.Info("Сервис: обновление поста", zap.String("post_id", id))

	if title == "" || date == "" || content == "" {
		return nil, apperr.ErrInvalidInput
	}

	post, err := s.repo.Update(ctx, id, title, date, content)
	if err != nil {
		logger.Log.Warn("Сервис: ошибка обновления поста", zap.String("post_id", id), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Сервис: пост обновлён", zap.String("post_id", id))
	return post, nil
}

// Delete убирает запись из зеркала и возвращает её. Документ и ассеты в
// репозитории остаются: публичная история не отзывается.
func (s *PostService) Delete(ctx context.Context, id string) (*models.Post, error) {
	logger.Log.Info("Сервис: удаление поста", zap.String("post_id", id))

	post, err := s.repo.Delete(ctx, id)
	if err != nil {
		logger.Log.Warn("Сервис: ошибка удаления поста", zap.String("post_id", id), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Сервис: пост удалён", zap.String("post_id", id))
	return post, nil
}

func (s *PostService) Export(ctx context.Context) ([]*models.Post, error) {
	return s.repo.List(ctx)
}

// Import целиком заменяет зеркало нормализованными записями: id и createdAt
// при отсутствии выставляются, пустой заголовок становится "Untitled".
// Поля images/remotePath при импорте не переносятся — связь с каноническим
// репозиторием восстанавливается только создающим пайплайном.
func (s *PostService) Import(ctx context.Context, incoming []*models.Post) (int, error) {
	logger.Log.Info("Сервис: импорт постов", zap.Int("count", len(incoming)))

	cleaned := make([]*models.Post, 0, len(incoming))
	for _, p := range incoming {
		if p == nil {
			continue
		}
		np := &models.Post{
			ID:        p.ID,
			Title:     p.Title,
			Date:      p.Date,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if np.ID == "" {
			np.ID = uuid.NewString()
		}
		if np.Title == "" {
			np.Title = "Untitled"
		}
		if np.CreatedAt == 0 {
			np.CreatedAt = time.Now().UnixMilli()
		}
		cleaned = append(cleaned, np)
	}

	if err := s.repo.ReplaceAll(ctx, cleaned); err != nil {
		logger.Log.Error("Сервис: ошибка импорта", zap.Error(err))
		return 0, err
	}

	logger.Log.Info("Сервис: импорт завершён", zap.Int("imported", len(cleaned)))
	return len(cleaned), nil
}
