package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"converso-backend/internal/handlers"
	"converso-backend/internal/middleware"
)

func New(
	usersHandler *handlers.UsersHandler,
	messagesHandler *handlers.MessagesHandler,
	chatHandler *handlers.ChatHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)

	// Any origin, any method, any header
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── User Routes ────
	r.Post("/users/", usersHandler.Register)
	r.Get("/users/{email}", usersHandler.GetByEmail)
	r.Post("/login/", usersHandler.Login)

	// ──── Message Routes ────
	r.Post("/users/{userID}/messages", messagesHandler.Create)
	r.Get("/users/{userID}/messages", messagesHandler.List)
	r.Delete("/users/{userID}/messages", messagesHandler.DeleteAll)
	r.Put("/messages/{messageID}", messagesHandler.Update)

	// ──── Chat ────
	r.Post("/chat", chatHandler.Chat)

	return r
}
