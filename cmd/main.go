package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"goplanner/internal/application"
	"goplanner/internal/chatbot"
	"goplanner/internal/config"
	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
	"goplanner/internal/domain/service"
	"goplanner/internal/domain/strategy"
	"goplanner/internal/handler"
	"goplanner/internal/infrastructure/ai"
	"goplanner/internal/infrastructure/cache"
	"goplanner/internal/infrastructure/database"
	"goplanner/internal/infrastructure/firestore"
	"goplanner/internal/infrastructure/maps"
	"goplanner/internal/infrastructure/observability"
	"goplanner/internal/infrastructure/pdf"
	"goplanner/internal/infrastructure/weather"
	"goplanner/internal/infrastructure/wiki"
	repoImpl "goplanner/internal/repository"
	"goplanner/internal/usecase"
)

const geocodeMemoryTTL = 6 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 設定の読み込みに失敗: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checkers := map[string]handler.HealthChecker{}
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	metrics := observability.NewMetrics()

	// 生成AI（任意）
	var textRepo repository.TextGenerationRepository
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("❌ Geminiクライアント初期化失敗: %v", err)
		}
		closers = append(closers, func() { _ = geminiClient.Close() })
		textRepo = ai.NewGeminiTextRepository(geminiClient)
		log.Printf("🤖 Geminiを有効化 (model: %s)", cfg.GeminiModel)
	}

	// ジオコーディング: Postgresキャッシュ(任意) → Nominatim → OpenRouteService
	var geocodeStore repository.GeocodeCacheRepository
	if cfg.GeocodeCacheDSN != "" {
		pg, err := database.NewPostgreSQLClient(ctx, cfg.GeocodeCacheDSN)
		if err != nil {
			log.Fatalf("❌ PostgreSQL初期化失敗: %v", err)
		}
		closers = append(closers, func() { _ = pg.Close() })
		checkers["postgres"] = pg

		pgCache := repoImpl.NewPostgresGeocodeCacheRepository(pg)
		if err := pgCache.EnsureSchema(ctx); err != nil {
			log.Fatalf("❌ geocode_cache テーブルの作成に失敗: %v", err)
		}
		geocodeStore = pgCache
	}
	geocodeCache := repoImpl.NewLayeredGeocodeCacheRepository(geocodeMemoryTTL, geocodeStore)

	nominatim := maps.NewNominatimProvider(cfg.NominatimURL, maps.NewNominatimLimiter())
	ors := maps.NewOpenRouteServiceProvider(cfg.OpenRouteServiceKey, maps.DefaultOpenRouteServiceURL)
	geocoder := strategy.NewGeocodeChain(geocodeCache, nominatim, ors)

	// スポット検索結果のキャッシュ
	var sourceCache repository.SourceCacheRepository = cache.NewMemoryCache(strategy.DefaultPlaceCacheTTL, 10*time.Minute)
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Redis初期化失敗: %v", err)
		}
		closers = append(closers, func() { _ = redisCache.Close() })
		checkers["redis"] = redisCache
		sourceCache = redisCache
		log.Printf("☁️ Redisをスポットキャッシュとして使用")
	}

	hotelPolicy := service.DefaultHotelTierPolicy()
	hotelPolicy.HighMinStars = cfg.HotelHighMinStars
	hotelPolicy.MidMinStars = cfg.HotelMidMinStars

	overpass := maps.NewOverpassProvider(cfg.OverpassURL)
	placeStrategy := func(kind model.PlaceKind, primary strategy.PlaceStrategy) strategy.PlaceStrategy {
		chain := strategy.NewPlaceChain(kind, primary, maps.NewNominatimPlaceStrategy(nominatim, kind))
		return strategy.NewCachedPlaceStrategy(kind, chain, sourceCache, strategy.DefaultPlaceCacheTTL)
	}

	// 説明文: Wikipedia → Gemini
	describers := []strategy.DescriptionStrategy{wiki.NewWikipediaProvider(cfg.WikipediaURL)}
	if textRepo != nil {
		describers = append(describers, strategy.NewGeneratedDescriptionStrategy(textRepo))
	}

	var weatherProvider service.WeatherProvider
	if cfg.OpenWeatherAPIKey != "" {
		weatherProvider = weather.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey, weather.DefaultBaseURL)
	}

	aggregator := service.NewItineraryAggregator(service.AggregatorDeps{
		Geocoder:      geocoder,
		Attractions:   placeStrategy(model.PlaceKindAttraction, maps.NewOverpassAttractionStrategy(overpass)),
		Restaurants:   placeStrategy(model.PlaceKindRestaurant, maps.NewOverpassRestaurantStrategy(overpass)),
		Hotels:        placeStrategy(model.PlaceKindHotel, maps.NewOverpassHotelStrategy(overpass, hotelPolicy)),
		Weather:       weatherProvider,
		Describer:     strategy.NewDescriptionChain(describers...),
		Observer:      metrics,
		SourceTimeout: cfg.SourceTimeout,
	})

	// ドラフト保存先: Firestore または メモリ
	var drafts repository.ItineraryDraftRepository
	if cfg.FirestoreProjectID != "" {
		firestoreClient, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			log.Fatalf("❌ Firestore初期化失敗: %v", err)
		}
		closers = append(closers, func() { _ = firestoreClient.Close() })
		drafts = repoImpl.NewFirestoreItineraryDraftRepository(firestoreClient)
		log.Printf("☁️ Firestoreをドラフト保存先として使用")
	} else {
		drafts = repoImpl.NewMemoryItineraryDraftRepository(cfg.DraftTTL)
	}

	trips, err := newTripRepository(ctx, cfg, checkers, &closers)
	if err != nil {
		log.Fatalf("❌ 旅行リポジトリ初期化失敗: %v", err)
	}

	knowledge, err := chatbot.LoadKnowledge()
	if err != nil {
		log.Fatalf("❌ チャット知識ベースの読み込みに失敗: %v", err)
	}

	// Dependency injection
	itineraryUseCase := usecase.NewItineraryUseCase(aggregator, drafts, pdf.NewItineraryRenderer(cfg.PublicBaseURL), metrics, cfg.DraftTTL)
	editUseCase := usecase.NewItineraryEditUseCase(drafts)
	placeUseCase := usecase.NewPlaceSearchUseCase(ors)
	chatUseCase := usecase.NewChatUseCase(chatbot.NewAssistant(knowledge, textRepo))
	tripService := application.NewTripService(trips, drafts)

	router := handler.NewRouter(handler.RouterDeps{
		Itinerary:     handler.NewItineraryHandler(itineraryUseCase),
		ItineraryEdit: handler.NewItineraryEditHandler(editUseCase),
		Trip:          handler.NewTripHandler(tripService),
		Place:         handler.NewPlaceHandler(placeUseCase),
		Chat:          handler.NewChatHandler(chatUseCase),
		Health:        handler.NewHealthHandler(checkers),
		Auth:          handler.AuthMiddleware([]byte(cfg.JWTSecret)),
		RateLimiter:   handler.NewIPRateLimiter(cfg.RateLimitPerMinute),
		Metrics:       metrics,
		CORSOrigins:   cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 GoPlanner server starting on :%s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ サーバー起動失敗: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("🛑 シャットダウン開始")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ シャットダウンに失敗: %v", err)
	}
}

// newTripRepository は TRIP_STORE に応じた保存先を作る
func newTripRepository(ctx context.Context, cfg *config.Config, checkers map[string]handler.HealthChecker, closers *[]func()) (repository.TripRepository, error) {
	switch cfg.TripStore {
	case config.TripStoreSupabase:
		client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, err
		}
		checkers["supabase"] = client
		log.Printf("✅ Supabaseを旅行の保存先として使用")
		return repoImpl.NewSupabaseTripsRepository(client), nil

	case config.TripStoreMongo:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Close(closeCtx)
		})
		checkers["mongo"] = client
		log.Printf("✅ MongoDBを旅行の保存先として使用")
		return repoImpl.NewMongoTripsRepository(client), nil

	default:
		log.Printf("✅ GoPlannerバックエンドを旅行の保存先として使用 (%s)", cfg.BackendAPIURL)
		return repoImpl.NewAPITripsRepository(cfg.BackendAPIURL), nil
	}
}
