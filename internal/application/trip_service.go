package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
)

// ErrInvalidTrip は保存リクエストの内容が不足している
var ErrInvalidTrip = errors.New("invalid trip")

// TripService 保存済み旅行に関するビジネスロジックを提供するサービス
type TripService interface {
	// SaveTrip ドラフトIDまたは旅程そのものから旅行を保存
	SaveTrip(ctx context.Context, caller model.Caller, req *model.SaveTripRequest) (*model.Trip, error)

	// ListTrips 呼び出しユーザーの旅行一覧を取得
	ListTrips(ctx context.Context, caller model.Caller) ([]model.Trip, error)

	// GetTrip 旅行を1件取得
	GetTrip(ctx context.Context, caller model.Caller, id string) (*model.Trip, error)

	// DeleteTrip 旅行を削除
	DeleteTrip(ctx context.Context, caller model.Caller, id string) error
}

// tripServiceImpl TripServiceの実装
type tripServiceImpl struct {
	tripRepo  repository.TripRepository
	draftRepo repository.ItineraryDraftRepository
	now       func() time.Time
}

// NewTripService TripServiceの新しいインスタンスを作成
func NewTripService(tripRepo repository.TripRepository, draftRepo repository.ItineraryDraftRepository) TripService {
	return &tripServiceImpl{
		tripRepo:  tripRepo,
		draftRepo: draftRepo,
		now:       time.Now,
	}
}

// SaveTrip 旅行を保存
func (s *tripServiceImpl) SaveTrip(ctx context.Context, caller model.Caller, req *model.SaveTripRequest) (*model.Trip, error) {
	if caller.UserID == "" {
		return nil, model.ErrUnauthorized
	}

	trip, err := s.buildTrip(ctx, req)
	if err != nil {
		return nil, err
	}

	// 入力バリデーション
	if err := validateTrip(trip); err != nil {
		return nil, fmt.Errorf("リクエストの検証失敗: %w", err)
	}

	if trip.Interests == nil {
		trip.Interests = []string{}
	}
	// 未知の予算ラベルはフォームの既定値に揃える
	if _, ok := model.ParseBudgetTier(trip.Budget); !ok {
		trip.Budget = model.DefaultBudgetRange
	}
	trip.ID = uuid.New().String()
	trip.UserID = caller.UserID
	trip.Status = model.TripStatusPlanned
	trip.CreatedAt = s.now().UTC()

	saved, err := s.tripRepo.Create(ctx, caller, trip)
	if err != nil {
		return nil, fmt.Errorf("旅行の保存に失敗: %w", err)
	}
	log.Printf("✅ 旅行を保存 (ID: %s, 目的地: %s)", saved.ID, saved.Destination)
	return saved, nil
}

// buildTrip ドラフトIDがあればドラフトの旅程を、なければリクエスト本文を使う
func (s *tripServiceImpl) buildTrip(ctx context.Context, req *model.SaveTripRequest) (*model.Trip, error) {
	if req.DraftID != "" {
		draft, err := s.draftRepo.FindByID(ctx, req.DraftID)
		if err != nil {
			return nil, fmt.Errorf("ドラフトの取得に失敗: %w", err)
		}
		it := draft.Itinerary
		if it == nil {
			return nil, model.ErrItineraryNotFound
		}
		return &model.Trip{
			Destination: it.Destination,
			StartDate:   it.StartDate,
			EndDate:     it.EndDate,
			Budget:      it.Budget,
			Interests:   it.Interests,
			Itinerary:   it.Days,
			Coordinates: it.Coordinates,
		}, nil
	}

	return &model.Trip{
		Destination: strings.TrimSpace(req.Destination),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Interests:   req.Interests,
		Itinerary:   req.Itinerary,
		Coordinates: req.Coordinates,
	}, nil
}

func validateTrip(trip *model.Trip) error {
	if trip.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidTrip)
	}
	if len(trip.Itinerary) == 0 {
		return fmt.Errorf("%w: itinerary must have at least one day", ErrInvalidTrip)
	}
	if len(trip.Itinerary) > model.MaxTripDays {
		return fmt.Errorf("%w: itinerary must have at most %d days", ErrInvalidTrip, model.MaxTripDays)
	}
	if trip.StartDate != "" && trip.EndDate != "" {
		req := model.TripRequest{StartDate: trip.StartDate, EndDate: trip.EndDate}
		if _, err := req.DayCount(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTrip, err)
		}
	}
	return nil
}

// ListTrips 旅行一覧を取得
func (s *tripServiceImpl) ListTrips(ctx context.Context, caller model.Caller) ([]model.Trip, error) {
	if caller.UserID == "" {
		return nil, model.ErrUnauthorized
	}
	trips, err := s.tripRepo.ListByUser(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("旅行一覧の取得に失敗: %w", err)
	}
	if trips == nil {
		trips = []model.Trip{}
	}
	return trips, nil
}

// GetTrip 旅行を取得
func (s *tripServiceImpl) GetTrip(ctx context.Context, caller model.Caller, id string) (*model.Trip, error) {
	if caller.UserID == "" {
		return nil, model.ErrUnauthorized
	}
	trip, err := s.tripRepo.FindByID(ctx, caller, id)
	if err != nil {
		return nil, fmt.Errorf("旅行の取得に失敗: %w", err)
	}
	return trip, nil
}

// DeleteTrip 旅行を削除
func (s *tripServiceImpl) DeleteTrip(ctx context.Context, caller model.Caller, id string) error {
	if caller.UserID == "" {
		return model.ErrUnauthorized
	}
	if err := s.tripRepo.Delete(ctx, caller, id); err != nil {
		return fmt.Errorf("旅行の削除に失敗: %w", err)
	}
	log.Printf("🗑️ 旅行を削除 (ID: %s)", id)
	return nil
}
