package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/fishing-chat/backend/internal/config"
	"github.com/zhouzirui/fishing-chat/backend/internal/handler/chat"
	"github.com/zhouzirui/fishing-chat/backend/internal/handler/suggestion"
	middlewarePkg "github.com/zhouzirui/fishing-chat/backend/internal/middleware"
	suggestionModel "github.com/zhouzirui/fishing-chat/backend/internal/model/suggestion"
	chatService "github.com/zhouzirui/fishing-chat/backend/internal/service/chat"
	"github.com/zhouzirui/fishing-chat/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(logger *logrus.Logger, server config.ServerConfig, suggestions suggestionModel.Store, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(server.AllowedOrigin))

	suggestionHandler := suggestion.New(suggestions)
	chatHandler := chat.New(chatSvc)
	limiter := middlewarePkg.NewClientRateLimiter(server.ChatRateLimit, server.ChatRateBurst)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		suggestionHandler.RegisterRoutes(api)
		api.Group(func(limited chi.Router) {
			limited.Use(limiter.Handler)
			chatHandler.RegisterRoutes(limited)
		})
	})

	return r
}
