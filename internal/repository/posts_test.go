package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"urbexblog/internal/apperr"
	"urbexblog/internal/models"
)

func newTestRepo(t *testing.T) *PostRepository {
	t.Helper()
	repo, err := NewPostRepository(filepath.Join(t.TempDir(), "posts.json"))
	if err != nil {
		t.Fatalf("не удалось создать репозиторий: %v", err)
	}
	return repo
}

func TestInsertAndListOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// вставляем не по порядку createdAt
	for _, p := range []*models.Post{
		{ID: "b", Title: "второй", CreatedAt: 200},
		{ID: "a", Title: "первый", CreatedAt: 100},
		{ID: "c", Title: "третий", CreatedAt: 300},
	} {
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatalf("ошибка вставки: %v", err)
		}
	}

	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("ошибка чтения списка: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("ожидалось 3 поста, получено %d", len(posts))
	}
	if posts[0].ID != "c" || posts[1].ID != "b" || posts[2].ID != "a" {
		t.Errorf("посты не отсортированы по убыванию createdAt: %s, %s, %s",
			posts[0].ID, posts[1].ID, posts[2].ID)
	}
}

func TestGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, &models.Post{ID: "x", Title: "пост", CreatedAt: 1}); err != nil {
		t.Fatalf("ошибка вставки: %v", err)
	}

	p, err := repo.GetByID(ctx, "x")
	if err != nil {
		t.Fatalf("пост не найден: %v", err)
	}
	if p.Title != "пост" {
		t.Errorf("неожиданный заголовок: %q", p.Title)
	}

	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, &models.Post{ID: "x", Title: "старый", Date: "2025-01-01", Content: "тело", CreatedAt: 1}); err != nil {
		t.Fatalf("ошибка вставки: %v", err)
	}

	p, err := repo.Update(ctx, "x", "новый", "2025-02-02", "новое тело")
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}
	if p.Title != "новый" || p.Date != "2025-02-02" || p.Content != "новое тело" {
		t.Errorf("поля не обновлены: %+v", p)
	}
	if p.UpdatedAt == nil {
		t.Error("updatedAt не выставлен")
	}

	if _, err := repo.Update(ctx, "nope", "t", "d", "c"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Delete(ctx, "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound для несуществующего id, получено %v", err)
	}

	if err := repo.Insert(ctx, &models.Post{ID: "x", Title: "пост", CreatedAt: 1}); err != nil {
		t.Fatalf("ошибка вставки: %v", err)
	}

	removed, err := repo.Delete(ctx, "x")
	if err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if removed.ID != "x" {
		t.Errorf("удалён не тот пост: %s", removed.ID)
	}

	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("ошибка чтения списка: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("пост остался в списке после удаления: %d", len(posts))
	}
}

func TestReplaceAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, &models.Post{ID: "old", CreatedAt: 1}); err != nil {
		t.Fatalf("ошибка вставки: %v", err)
	}

	if err := repo.ReplaceAll(ctx, []*models.Post{
		{ID: "n1", CreatedAt: 10},
		{ID: "n2", CreatedAt: 20},
	}); err != nil {
		t.Fatalf("ошибка замены: %v", err)
	}

	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("ошибка чтения списка: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("ожидалось 2 поста после замены, получено %d", len(posts))
	}
	for _, p := range posts {
		if p.ID == "old" {
			t.Error("старый пост пережил ReplaceAll")
		}
	}
}

func TestMissingFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	repo, err := NewPostRepository(path)
	if err != nil {
		t.Fatalf("не удалось создать репозиторий: %v", err)
	}
	// файл удалили из-под репозитория — чтение должно дать пустой список
	if err := os.Remove(path); err != nil {
		t.Fatalf("не удалось удалить файл: %v", err)
	}

	posts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("ошибка чтения списка: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("ожидался пустой список, получено %d", len(posts))
	}
}
