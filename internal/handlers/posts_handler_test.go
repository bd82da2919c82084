package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"urbexblog/internal/apperr"
	"urbexblog/internal/gitstore"
	"urbexblog/internal/models"
	"urbexblog/internal/repository"
	"urbexblog/internal/services"

	"github.com/gorilla/mux"
)

type stubRemote struct{}

func (stubRemote) Configured() bool { return false }

func (stubRemote) PutFile(context.Context, string, []byte, string) (*gitstore.CommitResult, error) {
	return nil, apperr.ErrRemoteUnconfigured
}

func newTestHandler(t *testing.T) (*PostHandler, *services.PostService) {
	t.Helper()
	repo, err := repository.NewPostRepository(filepath.Join(t.TempDir(), "posts.json"))
	if err != nil {
		t.Fatalf("не удалось создать репозиторий: %v", err)
	}
	svc := services.NewPostService(repo, stubRemote{}, services.NewAssetPublisher(stubRemote{}))
	return NewPostHandler(svc), svc
}

func TestListPostsOrder(t *testing.T) {
	h, svc := newTestHandler(t)

	if _, err := svc.Import(context.Background(), []*models.Post{
		{ID: "a", Title: "ранний", CreatedAt: 100},
		{ID: "c", Title: "поздний", CreatedAt: 300},
		{ID: "b", Title: "средний", CreatedAt: 200},
	}); err != nil {
		t.Fatalf("ошибка наполнения зеркала: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ListPosts(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d", rec.Code)
	}
	var posts []models.Post
	if err := json.NewDecoder(rec.Body).Decode(&posts); err != nil {
		t.Fatalf("нечитаемый ответ: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("ожидалось 3 поста, получено %d", len(posts))
	}
	if posts[0].ID != "c" || posts[1].ID != "b" || posts[2].ID != "a" {
		t.Errorf("список не отсортирован по убыванию createdAt: %s, %s, %s",
			posts[0].ID, posts[1].ID, posts[2].ID)
	}
}

func TestDeleteUnknownPost(t *testing.T) {
	h, _ := newTestHandler(t)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/posts/ghost", nil),
		map[string]string{"id": "ghost"})
	rec := httptest.NewRecorder()
	h.DeletePost(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался 404, получено %d", rec.Code)
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	h, svc := newTestHandler(t)

	if _, err := svc.Import(context.Background(), []*models.Post{
		{ID: "keep", Title: "существующий", CreatedAt: 1},
	}); err != nil {
		t.Fatalf("ошибка наполнения зеркала: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/import",
		strings.NewReader(`{"title": "не массив"}`))
	rec := httptest.NewRecorder()
	h.ImportPosts(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получено %d", rec.Code)
	}

	// зеркало не должно измениться
	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("ошибка чтения списка: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "keep" {
		t.Error("неудачный импорт не должен трогать зеркало")
	}
}

func TestImportRejectsNullBody(t *testing.T) {
	h, svc := newTestHandler(t)

	if _, err := svc.Import(context.Background(), []*models.Post{
		{ID: "keep", Title: "существующий", CreatedAt: 1},
	}); err != nil {
		t.Fatalf("ошибка наполнения зеркала: %v", err)
	}

	// null — валидный JSON, декодируется в nil-срез без ошибки,
	// но массивом не является
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`null`))
	rec := httptest.NewRecorder()
	h.ImportPosts(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получено %d", rec.Code)
	}

	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("ошибка чтения списка: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "keep" {
		t.Errorf("null не должен трогать зеркало: осталось %d постов", len(posts))
	}
}

func TestCreatePostRequiresMultipart(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/posts",
		strings.NewReader(`{"title":"json вместо формы"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.CreatePost(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получено %d", rec.Code)
	}
}
