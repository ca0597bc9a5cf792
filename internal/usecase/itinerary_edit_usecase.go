package usecase

import (
	"context"
	"fmt"
	"log"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
	"goplanner/internal/domain/service"
)

// ItineraryEditUseCase はドラフトのアクティビティ編集を扱う
// いずれの操作も編集後の日程を返す
type ItineraryEditUseCase interface {
	AddActivity(ctx context.Context, id string, day int, req *model.AddActivityRequest) (*model.DayPlan, error)
	UpdateActivity(ctx context.Context, id string, day int, activityID string, req *model.UpdateActivityRequest) (*model.DayPlan, error)
	DeleteActivity(ctx context.Context, id string, day int, activityID string) (*model.DayPlan, error)
	Reorder(ctx context.Context, id string, day int, req *model.ReorderRequest) (*model.DayPlan, error)
}

type itineraryEditUseCaseImpl struct {
	drafts repository.ItineraryDraftRepository
	editor *service.ItineraryEditor
}

// NewItineraryEditUseCase は新しいItineraryEditUseCaseインスタンスを作成
func NewItineraryEditUseCase(drafts repository.ItineraryDraftRepository) ItineraryEditUseCase {
	return &itineraryEditUseCaseImpl{
		drafts: drafts,
		editor: service.NewItineraryEditor(),
	}
}

func (u *itineraryEditUseCaseImpl) AddActivity(ctx context.Context, id string, day int, req *model.AddActivityRequest) (*model.DayPlan, error) {
	return u.edit(ctx, id, day, func(it *model.Itinerary) error {
		act, err := u.editor.AddActivity(it, day, req)
		if err != nil {
			return err
		}
		log.Printf("✅ アクティビティを追加 (ドラフト: %s, Day %d, ID: %s)", id, day, act.ID)
		return nil
	})
}

func (u *itineraryEditUseCaseImpl) UpdateActivity(ctx context.Context, id string, day int, activityID string, req *model.UpdateActivityRequest) (*model.DayPlan, error) {
	return u.edit(ctx, id, day, func(it *model.Itinerary) error {
		_, err := u.editor.UpdateActivity(it, day, activityID, req)
		return err
	})
}

func (u *itineraryEditUseCaseImpl) DeleteActivity(ctx context.Context, id string, day int, activityID string) (*model.DayPlan, error) {
	return u.edit(ctx, id, day, func(it *model.Itinerary) error {
		return u.editor.DeleteActivity(it, day, activityID)
	})
}

func (u *itineraryEditUseCaseImpl) Reorder(ctx context.Context, id string, day int, req *model.ReorderRequest) (*model.DayPlan, error) {
	return u.edit(ctx, id, day, func(it *model.Itinerary) error {
		return u.editor.Reorder(it, day, req)
	})
}

// edit はドラフトを読み込み、変更を適用して保存し直す
func (u *itineraryEditUseCaseImpl) edit(ctx context.Context, id string, day int, apply func(it *model.Itinerary) error) (*model.DayPlan, error) {
	draft, err := u.drafts.Modify(ctx, id, func(draft *model.ItineraryDraft) error {
		if draft.Itinerary == nil {
			return model.ErrItineraryNotFound
		}
		return apply(draft.Itinerary)
	})
	if err != nil {
		return nil, fmt.Errorf("ドラフトの編集に失敗: %w", err)
	}

	plan, err := draft.Itinerary.Day(day)
	if err != nil {
		return nil, err
	}
	return plan, nil
}
