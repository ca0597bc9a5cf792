package repository

import (
	"context"

	"goplanner/internal/domain/model"
)

// ItineraryDraftRepository は生成済み旅程（ドラフト）の一時保存を担当する
// 有効期限切れのドラフトは model.ErrItineraryNotFound として扱う
type ItineraryDraftRepository interface {
	Save(ctx context.Context, draft *model.ItineraryDraft) (string, error)
	FindByID(ctx context.Context, id string) (*model.ItineraryDraft, error)
	// Modify は読み込み・apply・保存を1つの単位で行う（同じドラフトへの同時編集で更新を失わない）
	// apply がエラーを返した場合は保存せずにそのエラーを返す
	Modify(ctx context.Context, id string, apply func(draft *model.ItineraryDraft) error) (*model.ItineraryDraft, error)
}
