package routes

import (
	"urbexblog/internal/handlers"
	"urbexblog/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	postHandler *handlers.PostHandler,
) {
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/posts", postHandler.ListPosts).Methods("GET")

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(jwtSecret))
	protected.Use(middleware.OnlyRole("admin"))

	protected.HandleFunc("/posts", postHandler.CreatePost).Methods("POST")
	protected.HandleFunc("/posts/{id}", postHandler.UpdatePost).Methods("PUT")
	protected.HandleFunc("/posts/{id}", postHandler.DeletePost).Methods("DELETE")

	protected.HandleFunc("/export", postHandler.ExportPosts).Methods("GET")
	protected.HandleFunc("/import", postHandler.ImportPosts).Methods("POST")
}
