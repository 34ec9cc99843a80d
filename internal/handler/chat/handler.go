package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/fishing-chat/backend/internal/model/chat"
	chatService "github.com/zhouzirui/fishing-chat/backend/internal/service/chat"
	"github.com/zhouzirui/fishing-chat/backend/internal/service/generation"
	"github.com/zhouzirui/fishing-chat/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes 注册聊天相关的路由。所有方法都进入处理器，非 POST 返回 405。
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.HandleFunc("/chat", h.handleChat)
}

// handleChat 回答一个问题
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		utils.RespondError(w, http.StatusMethodNotAllowed, chat.MethodNotAllowed)
		return
	}

	var payload chat.Request
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.chatSvc.Answer(r.Context(), payload.Question, payload.Consent)
	if err != nil {
		status, body := errorResponse(err)
		utils.RespondJSON(w, status, body)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chat.Response{Response: reply.Text})
}

// errorResponse maps an upstream failure to its status and payload; anything
// else is a generic 500.
func errorResponse(err error) (int, chat.ErrorResponse) {
	var upErr *generation.UpstreamError
	if !errors.As(err, &upErr) {
		return http.StatusInternalServerError, chat.ErrorResponse{Error: chat.GenericError}
	}

	status := upErr.StatusCode
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}

	var payload any = chat.GenericError
	if upErr.Payload != nil {
		payload = upErr.Payload
	}
	return status, chat.ErrorResponse{Error: payload}
}
