package handler

import (
	"net/http"
	"strings"

	"goplanner/internal/domain/model"
	"goplanner/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ChatHandler はチャットアシスタントAPIのハンドラー
type ChatHandler struct {
	chatUseCase usecase.ChatUseCase
}

// NewChatHandler は新しいChatHandlerインスタンスを作成
func NewChatHandler(chatUseCase usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

// PostChat はメッセージに応答する
// POST /api/chat
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondDomainError(c, "", &ValidationError{Field: "message", Message: "メッセージは必須です"})
		return
	}

	respondOK(c, http.StatusOK, h.chatUseCase.Reply(c.Request.Context(), &req))
}
