package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
)

// MemoryItineraryDraftRepository はFirestoreを使わない環境向けのドラフト保存
type MemoryItineraryDraftRepository struct {
	mu    sync.Mutex
	store *gocache.Cache
	now   func() time.Time
}

// NewMemoryItineraryDraftRepository は既定TTL付きで作成する
func NewMemoryItineraryDraftRepository(ttl time.Duration) repository.ItineraryDraftRepository {
	return &MemoryItineraryDraftRepository{
		store: gocache.New(ttl, 10*time.Minute),
		now:   time.Now,
	}
}

func (r *MemoryItineraryDraftRepository) Save(_ context.Context, draft *model.ItineraryDraft) (string, error) {
	draft.ID = uuid.New().String()
	r.put(draft)
	return draft.ID, nil
}

func (r *MemoryItineraryDraftRepository) FindByID(_ context.Context, id string) (*model.ItineraryDraft, error) {
	v, ok := r.store.Get(id)
	if !ok {
		return nil, model.ErrItineraryNotFound
	}
	stored := v.(*model.ItineraryDraft)
	// 呼び出し側の編集が保存前に共有されないようコピーを返す
	copied := *stored
	copied.Itinerary = cloneItinerary(stored.Itinerary)
	return &copied, nil
}

// Modify は編集を直列化し、読み込みから書き戻しまでの間に他の編集を挟ませない
func (r *MemoryItineraryDraftRepository) Modify(ctx context.Context, id string, apply func(draft *model.ItineraryDraft) error) (*model.ItineraryDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(draft); err != nil {
		return nil, err
	}
	r.put(draft)
	return draft, nil
}

func (r *MemoryItineraryDraftRepository) put(draft *model.ItineraryDraft) {
	ttl := gocache.DefaultExpiration
	if !draft.ExpiresAt.IsZero() {
		ttl = draft.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			r.store.Delete(draft.ID)
			return
		}
	}
	copied := *draft
	copied.Itinerary = cloneItinerary(draft.Itinerary)
	r.store.Set(draft.ID, &copied, ttl)
}

func cloneItinerary(it *model.Itinerary) *model.Itinerary {
	if it == nil {
		return nil
	}
	c := *it
	c.Interests = append([]string(nil), it.Interests...)
	c.Days = make([]model.DayPlan, len(it.Days))
	for i, d := range it.Days {
		d.Activities = append([]model.Activity(nil), d.Activities...)
		c.Days[i] = d
	}
	return &c
}
