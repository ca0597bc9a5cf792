package usecase

import (
	"context"
	"strings"

	"goplanner/internal/chatbot"
	"goplanner/internal/domain/model"
)

type ChatUseCase interface {
	Reply(ctx context.Context, req *model.ChatRequest) *model.ChatResponse
}

type chatUseCaseImpl struct {
	assistant chatbot.Assistant
}

// NewChatUseCase は新しいChatUseCaseインスタンスを作成
func NewChatUseCase(assistant chatbot.Assistant) ChatUseCase {
	return &chatUseCaseImpl{assistant: assistant}
}

func (u *chatUseCaseImpl) Reply(ctx context.Context, req *model.ChatRequest) *model.ChatResponse {
	req.Message = strings.TrimSpace(req.Message)
	return u.assistant.Reply(ctx, req)
}
