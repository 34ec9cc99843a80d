package suggestion

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/fishing-chat/backend/internal/model/suggestion"
	"github.com/zhouzirui/fishing-chat/backend/pkg/utils"
)

// Handler 推荐问题的HTTP处理器
type Handler struct {
	suggestions suggestion.Store
}

// New 创建推荐问题处理器
func New(suggestions suggestion.Store) *Handler {
	return &Handler{suggestions: suggestions}
}

// RegisterRoutes 注册推荐问题相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/suggestions", h.handleList)
	r.Get("/suggestions/{id}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.suggestions.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, ok := h.suggestions.FindByID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "suggestion not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
