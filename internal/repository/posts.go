package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"urbexblog/internal/apperr"
	"urbexblog/internal/models"
)

// PostRepository — локальное зеркало постов: один JSON-файл с массивом
// записей. Каждая мутация — это цикл «прочитать файл — изменить — записать
// целиком», поэтому все операции сериализуются одним мьютексом: без него
// параллельные циклы затирают друг друга (last-writer-wins).
// Точка восстановления после сбоя — последняя успешная запись файла.
type PostRepository struct {
	mu   sync.Mutex
	path string
}

func NewPostRepository(path string) (*PostRepository, error) {
	r := &PostRepository{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := r.write([]*models.Post{}); err != nil {
			return nil, fmt.Errorf("инициализация файла постов: %w", err)
		}
	}
	return r, nil
}

func (r *PostRepository) read() ([]*models.Post, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Post{}, nil
		}
		return nil, fmt.Errorf("чтение файла постов: %w", err)
	}
	if len(data) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("разбор файла постов: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) write(posts []*models.Post) error {
	data, err := json.MarshalIndent(posts, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0644)
}

// List возвращает посты по убыванию createdAt (новые первыми).
func (r *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.read()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *PostRepository) Insert(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.read()
	if err != nil {
		return err
	}
	posts = append([]*models.Post{post}, posts...)
	return r.write(posts)
}

func (r *PostRepository) Update(ctx context.Context, id, title, date, content string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.read()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.ID == id {
			now := time.Now().UnixMilli()
			p.Title = title
			p.Date = date
			p.Content = content
			p.UpdatedAt = &now
			if err := r.write(posts); err != nil {
				return nil, err
			}
			return p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// Delete удаляет запись зеркала и возвращает её. Канонический документ в
// удалённом репозитории при этом не трогается.
func (r *PostRepository) Delete(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.read()
	if err != nil {
		return nil, err
	}
	for i, p := range posts {
		if p.ID == id {
			posts = append(posts[:i], posts[i+1:]...)
			if err := r.write(posts); err != nil {
				return nil, err
			}
			return p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// ReplaceAll целиком заменяет содержимое зеркала (импорт/восстановление).
func (r *PostRepository) ReplaceAll(ctx context.Context, posts []*models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.write(posts)
}
