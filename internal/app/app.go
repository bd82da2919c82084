package app

import (
	"urbexblog/internal/config"
	"urbexblog/internal/gitstore"
	"urbexblog/internal/handlers"
	"urbexblog/internal/repository"
	"urbexblog/internal/routes"
	"urbexblog/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	// Зеркало
	postRepo, err := repository.NewPostRepository(cfg.PostsFile)
	if err != nil {
		return nil, err
	}

	// Канонический репозиторий: ненастроенный клиент переводит пайплайн
	// в локальный режим, это не ошибка запуска.
	store := gitstore.NewClient(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch)

	// Сервисы
	authService := services.NewAuthService(cfg)
	assetPublisher := services.NewAssetPublisher(store)
	postService := services.NewPostService(postRepo, store, assetPublisher)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.JWTSecret, authHandler, postHandler)

	return router, nil
}
