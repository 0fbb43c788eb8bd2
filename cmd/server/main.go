package main

import (
	"net/http"

	"todo-app/internal/api/handlers"
	"todo-app/internal/app"
	"todo-app/internal/auth"
	"todo-app/internal/config"
	"todo-app/internal/logger"
	"todo-app/internal/repository/postgres"
)

// corsMiddleware sets CORS headers for origins the config allows
func corsMiddleware(allowedOrigins []string, next http.HandlerFunc) http.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func main() {
	// Load configuration once; everything downstream receives it explicitly.
	appConfig, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Log.Info("Initializing database...")
	database, err := postgres.NewPostgresDB(appConfig.Database)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to run migrations")
	}

	cfg := app.NewConfig(database, appConfig)
	authService := auth.NewService(database, &appConfig.Auth)

	apiHandlers, err := handlers.NewHandlers(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create handlers")
	}

	cors := func(h http.HandlerFunc) http.HandlerFunc {
		return corsMiddleware(appConfig.Server.AllowedOrigins, h)
	}
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return cors(authService.Middleware(h))
	}

	// CORS preflight handler for OPTIONS requests
	preflight := cors(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Go 1.22+ routing: method-based patterns with path parameters.
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/signup", cors(authService.SignupHandler))
	mux.HandleFunc("OPTIONS /api/auth/signup", preflight)
	mux.HandleFunc("POST /api/auth/login", cors(authService.LoginHandler))
	mux.HandleFunc("OPTIONS /api/auth/login", preflight)
	mux.HandleFunc("GET /api/health", cors(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	// Chat routes
	mux.HandleFunc("POST /api/chat", protected(apiHandlers.ChatHandler))
	mux.HandleFunc("OPTIONS /api/chat", preflight)
	mux.HandleFunc("GET /api/conversations", protected(apiHandlers.GetConversationsHandler))
	mux.HandleFunc("OPTIONS /api/conversations", preflight)
	mux.HandleFunc("GET /api/conversations/{id}/messages", protected(apiHandlers.GetConversationMessagesHandler))
	mux.HandleFunc("OPTIONS /api/conversations/{id}/messages", preflight)
	mux.HandleFunc("DELETE /api/conversations/{id}", protected(apiHandlers.DeleteConversationHandler))
	mux.HandleFunc("OPTIONS /api/conversations/{id}", preflight)

	// Task routes
	mux.HandleFunc("GET /api/{user_id}/tasks", protected(apiHandlers.ListTasksHandler))
	mux.HandleFunc("POST /api/{user_id}/tasks", protected(apiHandlers.CreateTaskHandler))
	mux.HandleFunc("OPTIONS /api/{user_id}/tasks", preflight)
	mux.HandleFunc("GET /api/{user_id}/tasks/{task_id}", protected(apiHandlers.GetTaskHandler))
	mux.HandleFunc("PUT /api/{user_id}/tasks/{task_id}", protected(apiHandlers.UpdateTaskHandler))
	mux.HandleFunc("DELETE /api/{user_id}/tasks/{task_id}", protected(apiHandlers.DeleteTaskHandler))
	mux.HandleFunc("OPTIONS /api/{user_id}/tasks/{task_id}", preflight)
	mux.HandleFunc("PATCH /api/{user_id}/tasks/{task_id}/complete", protected(apiHandlers.CompleteTaskHandler))
	mux.HandleFunc("OPTIONS /api/{user_id}/tasks/{task_id}/complete", preflight)

	port := appConfig.Server.Port
	logger.Log.WithField("port", port).Info("Server starting")

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Log.WithError(err).Fatal("Server failed to start")
	}
}
