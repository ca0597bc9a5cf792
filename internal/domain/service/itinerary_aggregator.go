package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"goplanner/internal/domain/helper"
	"goplanner/internal/domain/model"
	"goplanner/internal/domain/strategy"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSourceTimeout     = 12 * time.Second
	DefaultEnrichConcurrency = 5

	sourceAttractions = "attractions"
	sourceRestaurants = "restaurants"
	sourceHotels      = "hotels"
	sourceWeather     = "weather"
)

var tracer = otel.Tracer("goplanner/internal/domain/service")

// DestinationResolver は目的地を座標に解決する
type DestinationResolver interface {
	Resolve(ctx context.Context, query string) (*model.GeoLocation, error)
}

// WeatherProvider は都市の現在の天気を返す。データがない場合は (nil, nil)
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (*model.Weather, error)
}

// SourceObserver は各取得元の結果を記録する
type SourceObserver interface {
	ObserveSource(source string, success bool, elapsed time.Duration)
}

// ItineraryAggregator は外部データから旅程を組み立てるドメインサービス
type ItineraryAggregator interface {
	Generate(ctx context.Context, req *model.TripRequest) (*model.Itinerary, error)
}

// AggregatorDeps は ItineraryAggregator の依存関係
// Weather, Describer, Observer は nil でもよい
type AggregatorDeps struct {
	Geocoder    DestinationResolver
	Attractions strategy.PlaceStrategy
	Restaurants strategy.PlaceStrategy
	Hotels      strategy.PlaceStrategy
	Weather     WeatherProvider
	Describer   strategy.DescriptionStrategy
	Observer    SourceObserver

	SourceTimeout     time.Duration
	EnrichConcurrency int
}

type itineraryAggregator struct {
	deps      AggregatorDeps
	assembler *DayAssembler
}

// NewItineraryAggregator は新しいItineraryAggregatorインスタンスを作成
func NewItineraryAggregator(deps AggregatorDeps) ItineraryAggregator {
	if deps.SourceTimeout <= 0 {
		deps.SourceTimeout = DefaultSourceTimeout
	}
	if deps.EnrichConcurrency <= 0 {
		deps.EnrichConcurrency = DefaultEnrichConcurrency
	}
	return &itineraryAggregator{deps: deps, assembler: NewDayAssembler()}
}

// sourceResult は1つの取得元の結果
type sourceResult struct {
	source  string
	places  []model.PlaceCandidate
	weather *model.Weather
	err     error
	elapsed time.Duration
}

// Generate はジオコーディング→並行取得→説明文補完→日ごとの組み立ての順に旅程を生成する
// 目的地が解決できない場合は model.ErrDestinationNotResolvable、
// それ以外の予期しない失敗は model.ErrAggregationFailed を返す
func (a *itineraryAggregator) Generate(ctx context.Context, req *model.TripRequest) (it *model.Itinerary, err error) {
	ctx, span := tracer.Start(ctx, "ItineraryAggregator.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("destination", req.Destination))

	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ 旅程集約中にpanicが発生: %v", r)
			it = nil
			err = fmt.Errorf("%w: panic: %v", model.ErrAggregationFailed, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	start, end, err := req.DateRange()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrAggregationFailed, err)
	}
	days, err := model.DayCountBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrAggregationFailed, err)
	}

	log.Printf("🚀 旅程生成開始: %s (%d日間)", req.Destination, days)
	began := time.Now()

	// Step 1: 目的地の座標を解決
	location, err := a.deps.Geocoder.Resolve(ctx, req.City())
	if err != nil {
		if errors.Is(err, model.ErrDestinationNotResolvable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: ジオコーディングに失敗: %v", model.ErrAggregationFailed, err)
	}

	// Step 2: 観光地・飲食店・宿泊・天気を並行取得
	query := model.PlaceQuery{
		Destination: req.Destination,
		City:        req.City(),
		Center:      location.LatLng(),
		Budget:      req.BudgetTier(),
	}
	results := a.fetchAll(ctx, query)

	// Step 3: 観光地の説明文を補完
	attractions := a.enrich(ctx, results[sourceAttractions].places, req.Destination)

	// Step 4: 日ごとのスケジュールを組み立て
	weather := results[sourceWeather].weather
	plans := a.assembler.Assemble(AssembleInput{
		Destination: req.Destination,
		Interests:   req.Interests,
		StartDate:   start,
		Days:        days,
		Attractions: attractions,
		Restaurants: results[sourceRestaurants].places,
		Hotels:      results[sourceHotels].places,
		Weather:     weather,
	})

	log.Printf("✅ 旅程生成完了: %v (観光地:%d, 飲食店:%d, 宿泊:%d)",
		time.Since(began), len(attractions), len(results[sourceRestaurants].places), len(results[sourceHotels].places))

	return &model.Itinerary{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.BudgetLabel(),
		Interests:   req.Interests,
		Days:        plans,
		Coordinates: location,
		Weather:     weather,
		TotalDays:   days,
		Source:      model.SourceLive,
	}, nil
}

// fetchAll は4つの取得元を並行実行し、すべての完了を待つ
// 失敗やタイムアウトした取得元は空の結果として扱う
func (a *itineraryAggregator) fetchAll(ctx context.Context, query model.PlaceQuery) map[string]sourceResult {
	type job struct {
		source string
		run    func(ctx context.Context) sourceResult
	}
	jobs := []job{
		{sourceAttractions, a.placeJob(sourceAttractions, a.deps.Attractions, query)},
		{sourceRestaurants, a.placeJob(sourceRestaurants, a.deps.Restaurants, query)},
		{sourceHotels, a.placeJob(sourceHotels, a.deps.Hotels, query)},
		{sourceWeather, a.weatherJob(query.City)},
	}

	results := make(chan sourceResult, len(jobs))
	var wg sync.WaitGroup

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			results <- a.runSource(ctx, j.source, j.run)
		}(j)
	}

	// 別のgoroutineでwaitしてチャンネルを閉じる
	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make(map[string]sourceResult, len(jobs))
	successCount, errorCount := 0, 0
	for res := range results {
		if a.deps.Observer != nil {
			a.deps.Observer.ObserveSource(res.source, res.err == nil, res.elapsed)
		}
		if res.err != nil {
			errorCount++
			log.Printf("⚠️  %s の取得に失敗（空として続行）: %v", res.source, res.err)
			res.places = []model.PlaceCandidate{}
			res.weather = nil
		} else {
			successCount++
		}
		collected[res.source] = res
	}
	log.Printf("📦 並行取得完了 (成功:%d, 失敗:%d)", successCount, errorCount)
	return collected
}

// runSource は取得元ごとのタイムアウトを適用して実行する
// タイムアウトしたgoroutineの結果は捨てる
func (a *itineraryAggregator) runSource(ctx context.Context, source string, run func(ctx context.Context) sourceResult) sourceResult {
	ctx, span := tracer.Start(ctx, "source."+source)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, a.deps.SourceTimeout)
	defer cancel()

	started := time.Now()
	done := make(chan sourceResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- sourceResult{source: source, err: fmt.Errorf("panic: %v", r)}
			}
		}()
		done <- run(ctx)
	}()

	var res sourceResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = sourceResult{source: source, err: fmt.Errorf("タイムアウト (%v): %w", a.deps.SourceTimeout, ctx.Err())}
	}
	res.source = source
	res.elapsed = time.Since(started)
	if res.err != nil {
		span.RecordError(res.err)
		span.SetStatus(codes.Error, res.err.Error())
	}
	span.SetAttributes(attribute.Int("results", len(res.places)))
	return res
}

func (a *itineraryAggregator) placeJob(source string, s strategy.PlaceStrategy, query model.PlaceQuery) func(ctx context.Context) sourceResult {
	return func(ctx context.Context) sourceResult {
		if s == nil {
			return sourceResult{source: source, places: []model.PlaceCandidate{}}
		}
		places, err := s.FindPlaces(ctx, query)
		return sourceResult{source: source, places: places, err: err}
	}
}

func (a *itineraryAggregator) weatherJob(city string) func(ctx context.Context) sourceResult {
	return func(ctx context.Context) sourceResult {
		if a.deps.Weather == nil {
			return sourceResult{source: sourceWeather}
		}
		weather, err := a.deps.Weather.CurrentWeather(ctx, city)
		return sourceResult{source: sourceWeather, weather: weather, err: err}
	}
}

// enrich は先頭の観光地の説明文を並行で取得し、見つかったものだけ置き換える
// 失敗は無視し、元の説明文を残す
func (a *itineraryAggregator) enrich(ctx context.Context, attractions []model.PlaceCandidate, destination string) []model.PlaceCandidate {
	if a.deps.Describer == nil || len(attractions) == 0 {
		return attractions
	}

	ctx, span := tracer.Start(ctx, "enrich.descriptions")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, a.deps.SourceTimeout)
	defer cancel()

	enriched := make([]model.PlaceCandidate, len(attractions))
	copy(enriched, attractions)

	var g errgroup.Group
	g.SetLimit(a.deps.EnrichConcurrency)
	for i := 0; i < len(enriched) && i < model.EnrichedAttractions; i++ {
		i := i
		g.Go(func() error {
			text, err := a.deps.Describer.Describe(ctx, enriched[i].Name, destination)
			if err != nil || text == "" {
				return nil
			}
			enriched[i].Description = helper.Truncate(text, model.MaxDescriptionChars)
			return nil
		})
	}
	_ = g.Wait()

	return enriched
}
