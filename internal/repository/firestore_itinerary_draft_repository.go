package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	gcfirestore "cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
	"goplanner/internal/infrastructure/firestore"
)

// FirestoreItineraryDraftRepository Firestoreを使用した旅程ドラフトのリポジトリ
// 期限切れドキュメントの削除はコレクションのTTLポリシー(expireAt)に任せる
type FirestoreItineraryDraftRepository struct {
	client *firestore.FirestoreClient
	now    func() time.Time
}

// NewFirestoreItineraryDraftRepository 新しいFirestoreItineraryDraftRepositoryインスタンスを作成
func NewFirestoreItineraryDraftRepository(client *firestore.FirestoreClient) repository.ItineraryDraftRepository {
	return &FirestoreItineraryDraftRepository{client: client, now: time.Now}
}

// Save はドラフトを新しいIDで保存し、IDを返す
func (r *FirestoreItineraryDraftRepository) Save(ctx context.Context, draft *model.ItineraryDraft) (string, error) {
	id := uuid.New().String()
	if _, err := r.client.Drafts().Doc(id).Set(ctx, draft.ToFirestoreItineraryDraft()); err != nil {
		log.Printf("❌ Failed to save itinerary draft %s: %v", id, err)
		return "", fmt.Errorf("旅程ドラフトの保存に失敗しました: %w", err)
	}
	draft.ID = id

	log.Printf("✅ Itinerary draft saved: %s (expires at %s)", id, draft.ExpiresAt.Format(time.RFC3339))
	return id, nil
}

// FindByID は指定IDのドラフトを取得する。TTL削除前の期限切れも見つからない扱い
func (r *FirestoreItineraryDraftRepository) FindByID(ctx context.Context, id string) (*model.ItineraryDraft, error) {
	doc, err := r.client.Drafts().Doc(id).Get(ctx)
	return r.toDraft(id, doc, err)
}

// Modify はトランザクション内でドラフトを読み込み、編集して書き戻す（有効期限は変更しない）
func (r *FirestoreItineraryDraftRepository) Modify(ctx context.Context, id string, apply func(draft *model.ItineraryDraft) error) (*model.ItineraryDraft, error) {
	ref := r.client.Drafts().Doc(id)

	var updated *model.ItineraryDraft
	err := r.client.GetClient().RunTransaction(ctx, func(ctx context.Context, tx *gcfirestore.Transaction) error {
		doc, err := tx.Get(ref)
		draft, err := r.toDraft(id, doc, err)
		if err != nil {
			return err
		}
		if err := apply(draft); err != nil {
			return err
		}
		updated = draft
		return tx.Set(ref, draft.ToFirestoreItineraryDraft())
	})
	if err != nil {
		return nil, fmt.Errorf("旅程ドラフトの更新に失敗しました: %w", err)
	}
	return updated, nil
}

func (r *FirestoreItineraryDraftRepository) toDraft(id string, doc *gcfirestore.DocumentSnapshot, err error) (*model.ItineraryDraft, error) {
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, model.ErrItineraryNotFound
		}
		return nil, fmt.Errorf("旅程ドラフトの取得に失敗しました: %w", err)
	}

	var data model.FirestoreItineraryDraft
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	draft := data.ToItineraryDraft(id)
	if !draft.ExpiresAt.IsZero() && r.now().After(draft.ExpiresAt) {
		return nil, model.ErrItineraryNotFound
	}
	return draft, nil
}
