package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"goplanner/internal/domain/helper"
	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
	"goplanner/internal/domain/service"
	"goplanner/internal/infrastructure/pdf"

	"github.com/paulmach/orb/geojson"
)

// GenerationObserver は旅程生成の結果（live / fallback）を記録する
type GenerationObserver interface {
	ObserveGeneration(source model.ItinerarySource)
}

type ItineraryUseCase interface {
	// Generate は旅程を生成してドラフトとして保存する。集約に失敗した場合は簡易旅程で代替する
	Generate(ctx context.Context, req *model.TripRequest) (*model.GenerateItineraryResponse, error)

	// Get は保存済みドラフトを取得する
	Get(ctx context.Context, id string) (*model.ItineraryDraft, error)

	// Outline はテーマ別の旅程アウトラインを作る（保存しない）
	Outline(req *model.OutlineRequest) *model.Outline

	// MapFeatures は地図表示用のGeoJSONを返す
	MapFeatures(ctx context.Context, id string) (*geojson.FeatureCollection, error)

	// ExportPDF はドラフトをPDFに出力し、本文とファイル名を返す
	ExportPDF(ctx context.Context, id string) ([]byte, string, error)
}

// itineraryUseCaseImpl はItineraryUseCaseの実装
type itineraryUseCaseImpl struct {
	aggregator service.ItineraryAggregator
	fallback   *service.FallbackGenerator
	outline    *service.OutlineGenerator
	drafts     repository.ItineraryDraftRepository
	renderer   pdf.ItineraryRenderer
	observer   GenerationObserver
	draftTTL   time.Duration
	now        func() time.Time
}

// NewItineraryUseCase は新しいItineraryUseCaseインスタンスを作成
// observer は nil でもよい
func NewItineraryUseCase(
	aggregator service.ItineraryAggregator,
	drafts repository.ItineraryDraftRepository,
	renderer pdf.ItineraryRenderer,
	observer GenerationObserver,
	draftTTL time.Duration,
) ItineraryUseCase {
	return &itineraryUseCaseImpl{
		aggregator: aggregator,
		fallback:   service.NewFallbackGenerator(),
		outline:    service.NewOutlineGenerator(),
		drafts:     drafts,
		renderer:   renderer,
		observer:   observer,
		draftTTL:   draftTTL,
		now:        time.Now,
	}
}

func (u *itineraryUseCaseImpl) Generate(ctx context.Context, req *model.TripRequest) (*model.GenerateItineraryResponse, error) {
	log.Printf("🚀 旅程生成開始 (目的地: %s, %s〜%s)", req.Destination, req.StartDate, req.EndDate)

	// Step 1: 外部データから旅程を組み立てる
	itinerary, err := u.aggregator.Generate(ctx, req)
	if err != nil {
		// Step 1.5: 失敗時は外部データなしの簡易旅程
		log.Printf("⚠️ 旅程の集約に失敗したため簡易旅程で代替します: %v", err)
		itinerary = u.fallback.Generate(req)
	}
	if itinerary == nil {
		return nil, fmt.Errorf("旅程を生成できませんでした: %w", model.ErrAggregationFailed)
	}
	if u.observer != nil {
		u.observer.ObserveGeneration(itinerary.Source)
	}
	log.Printf("✅ %d日分の旅程を生成 (source: %s)", len(itinerary.Days), itinerary.Source)

	// Step 2: 編集・出力用にドラフトとして保存
	now := u.now()
	draft := &model.ItineraryDraft{
		Itinerary: itinerary,
		CreatedAt: now,
		ExpiresAt: now.Add(u.draftTTL),
	}
	id, err := u.drafts.Save(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("ドラフトの保存に失敗: %w", err)
	}
	log.Printf("✅ ドラフトを保存 (ID: %s)", id)

	return &model.GenerateItineraryResponse{
		ID:        id,
		Itinerary: itinerary,
		ExpiresAt: draft.ExpiresAt,
	}, nil
}

func (u *itineraryUseCaseImpl) Get(ctx context.Context, id string) (*model.ItineraryDraft, error) {
	draft, err := u.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ドラフトの取得に失敗: %w", err)
	}
	return draft, nil
}

func (u *itineraryUseCaseImpl) Outline(req *model.OutlineRequest) *model.Outline {
	return u.outline.Generate(req)
}

func (u *itineraryUseCaseImpl) MapFeatures(ctx context.Context, id string) (*geojson.FeatureCollection, error) {
	draft, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ItineraryFeatures(draft.Itinerary), nil
}

// ItineraryFeatures は座標を持つアクティビティを Point として並べ、目的地を含むbboxを付ける
func ItineraryFeatures(it *model.Itinerary) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	var origin *model.LatLng
	points := []model.LatLng{}
	if it.Coordinates != nil {
		c := it.Coordinates.LatLng()
		origin = &c
		points = append(points, c)
	}

	for _, day := range it.Days {
		for _, act := range day.Activities {
			if act.Coordinates == nil || !act.Coordinates.IsValid() {
				continue
			}
			f := geojson.NewFeature(act.Coordinates.Point())
			f.ID = act.ID
			f.Properties["day"] = day.DayNumber
			f.Properties["order"] = act.Order
			f.Properties["time"] = act.Time
			f.Properties["name"] = act.Activity
			f.Properties["type"] = string(act.Type)
			if origin != nil {
				f.Properties["distanceMeters"] = math.Round(helper.DistanceMeters(*origin, *act.Coordinates))
			}
			fc.Append(f)
			points = append(points, *act.Coordinates)
		}
	}

	if len(points) > 0 {
		fc.BBox = geojson.NewBBox(helper.BoundOf(points...))
	}
	return fc
}

func (u *itineraryUseCaseImpl) ExportPDF(ctx context.Context, id string) ([]byte, string, error) {
	draft, err := u.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	log.Printf("📄 PDF出力開始 (ID: %s)", id)
	var buf bytes.Buffer
	if err := u.renderer.Render(&buf, draft.ID, draft.Itinerary); err != nil {
		return nil, "", fmt.Errorf("PDFの生成に失敗: %w", err)
	}
	return buf.Bytes(), pdf.FileName(draft.Itinerary.Destination, u.now()), nil
}
