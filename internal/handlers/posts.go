package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"urbexblog/internal/apperr"
	"urbexblog/internal/logger"
	"urbexblog/internal/models"
	"urbexblog/internal/services"
	helpers "urbexblog/internal/utils/helpres"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	maxFormMemory = 10 << 20 // 10MB
	maxImages     = 8
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type updatePostRequest struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

type createPostResponse struct {
	Success bool           `json:"success"`
	Post    *models.Post   `json:"post"`
	Images  []models.Asset `json:"images"`
}

type updatePostResponse struct {
	Success bool         `json:"success"`
	Post    *models.Post `json:"post"`
}

type deletePostResponse struct {
	Success bool         `json:"success"`
	Deleted *models.Post `json:"deleted"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

// writeServiceError сопоставляет ошибку сервиса со статусом HTTP: локальная
// валидация и NotFound отличимы от удалённых сбоев, чтобы клиент понимал,
// что можно повторить.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		helpers.Error(w, http.StatusBadRequest, "Missing fields")
	case errors.Is(err, apperr.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, apperr.ErrRemoteUnconfigured):
		helpers.Error(w, http.StatusInternalServerError, "GitHub not configured on server; cannot store images")
	case errors.Is(err, apperr.ErrRemoteConflict):
		helpers.Error(w, http.StatusConflict, "Remote version conflict")
	case errors.Is(err, apperr.ErrRemoteUnavailable):
		helpers.Error(w, http.StatusInternalServerError, "Remote repository unavailable")
	default:
		helpers.Error(w, http.StatusInternalServerError, "Internal error")
	}
}

// ListPosts godoc
// @Summary Список постов (новые первыми)
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /api/posts [get]
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		logger.Log.Error("Ошибка получения постов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	helpers.JSON(w, http.StatusOK, posts)
}

// CreatePost godoc
// @Summary Создать пост (только admin)
// @Description Multipart-форма: title, date, content, tags (необязательно) и до 8 файлов images.
// @Tags admin-posts
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Заголовок"
// @Param date formData string true "Дата (YYYY-MM-DD)"
// @Param content formData string true "Текст поста"
// @Param tags formData string false "Теги через запятую"
// @Param images formData file false "Изображения"
// @Success 201 {object} createPostResponse
// @Failure 400 {string} string "Не заполнены поля"
// @Failure 409 {string} string "Конфликт версий"
// @Router /api/posts [post]
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("Запрос на создание поста")
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		logger.Log.Warn("Ошибка разбора формы при создании поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Bad form data")
		return
	}

	input := services.CreatePostInput{
		Title:   r.FormValue("title"),
		Date:    r.FormValue("date"),
		Content: r.FormValue("content"),
		Tags:    r.FormValue("tags"),
	}

	files := r.MultipartForm.File["images"]
	if len(files) > maxImages {
		logger.Log.Warn("Слишком много изображений", zap.Int("count", len(files)))
		helpers.Error(w, http.StatusBadRequest, "Too many images")
		return
	}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			logger.Log.Warn("Не удалось открыть файл изображения", zap.Error(err))
			helpers.Error(w, http.StatusBadRequest, "Bad image upload")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			logger.Log.Warn("Не удалось прочитать файл изображения", zap.Error(err))
			helpers.Error(w, http.StatusBadRequest, "Bad image upload")
			return
		}
		input.Images = append(input.Images, services.UploadedImage{Name: fh.Filename, Data: data})
	}

	post, assets, err := h.postService.Create(r.Context(), input)
	if err != nil {
		logger.Log.Error("Ошибка создания поста", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	logger.Log.Info("Пост успешно создан", zap.String("post_id", post.ID))
	helpers.JSON(w, http.StatusCreated, createPostResponse{Success: true, Post: post, Images: assets})
}

// UpdatePost godoc
// @Summary Обновить пост (только admin)
// @Description Меняет только локальное зеркало: канонический документ в репозитории не перезаписывается.
// @Tags admin-posts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID поста"
// @Param input body updatePostRequest true "Новое содержимое"
// @Success 200 {object} updatePostResponse
// @Failure 404 {string} string "Пост не найден"
// @Router /api/posts/{id} [put]
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	logger.Log.Info("Запрос на обновление поста", zap.String("post_id", id))

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Невалидный JSON при обновлении поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	post, err := h.postService.Update(r.Context(), id, req.Title, req.Date, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	helpers.JSON(w, http.StatusOK, updatePostResponse{Success: true, Post: post})
}

// DeletePost godoc
// @Summary Удалить пост (только admin)
// @Tags admin-posts
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "ID поста"
// @Success 200 {object} deletePostResponse
// @Failure 404 {string} string "Пост не найден"
// @Router /api/posts/{id} [delete]
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	logger.Log.Info("Запрос на удаление поста", zap.String("post_id", id))

	post, err := h.postService.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	helpers.JSON(w, http.StatusOK, deletePostResponse{Success: true, Deleted: post})
}

// ExportPosts godoc
// @Summary Выгрузить зеркало постов файлом (только admin)
// @Tags admin-posts
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Post
// @Router /api/export [get]
func (h *PostHandler) ExportPosts(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("Запрос на экспорт постов")
	posts, err := h.postService.Export(r.Context())
	if err != nil {
		logger.Log.Error("Ошибка экспорта постов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	data, err := json.MarshalIndent(posts, "", "    ")
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Internal error")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="urbexPosts_backup.json"`)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// ImportPosts godoc
// @Summary Импортировать посты (только admin)
// @Description Заменяет зеркало целиком. Тело запроса — JSON-массив постов.
// @Tags admin-posts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Success 200 {object} importResponse
// @Failure 400 {string} string "Тело должно быть массивом"
// @Router /api/import [post]
func (h *PostHandler) ImportPosts(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("Запрос на импорт постов")

	var incoming []*models.Post
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		logger.Log.Warn("Тело импорта не является массивом", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Body must be an array")
		return
	}
	// JSON null декодируется в nil-срез без ошибки — это не массив, и
	// пропускать его дальше нельзя: Import заменил бы зеркало пустым списком.
	if incoming == nil {
		logger.Log.Warn("Тело импорта — null, зеркало не тронуто")
		helpers.Error(w, http.StatusBadRequest, "Body must be an array")
		return
	}

	count, err := h.postService.Import(r.Context(), incoming)
	if err != nil {
		logger.Log.Error("Ошибка импорта постов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Internal error")
		return
	}

	helpers.JSON(w, http.StatusOK, importResponse{Imported: count})
}
