package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TripStore の種類
const (
	TripStoreSupabase = "supabase"
	TripStoreMongo    = "mongo"
	TripStoreAPI      = "api"
)

// Config はアプリケーション全体の設定
type Config struct {
	Port    string
	GinMode string

	SourceTimeout time.Duration

	NominatimURL        string
	OverpassURL         string
	WikipediaURL        string
	OpenWeatherAPIKey   string
	OpenRouteServiceKey string
	GeminiAPIKey        string
	GeminiModel         string
	GeocodeCacheDSN     string
	RedisURL            string
	FirestoreProjectID  string
	DraftTTL            time.Duration
	TripStore           string
	SupabaseURL         string
	SupabaseAnonKey     string
	MongoURI            string
	MongoDatabase       string
	BackendAPIURL       string
	JWTSecret           string
	PublicBaseURL       string
	CORSOrigins         []string
	HotelHighMinStars   float64
	HotelMidMinStars    float64
	RateLimitPerMinute  int
}

// Load は .env を読み込んだ上で環境変数から設定を組み立てる
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  .env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv は環境変数のみから設定を組み立てる
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		NominatimURL:        getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OverpassURL:         getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		WikipediaURL:        getEnv("WIKIPEDIA_URL", "https://en.wikipedia.org/api/rest_v1"),
		OpenWeatherAPIKey:   os.Getenv("OPENWEATHER_API_KEY"),
		OpenRouteServiceKey: os.Getenv("OPENROUTESERVICE_API_KEY"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeocodeCacheDSN:     os.Getenv("GEOCODE_CACHE_DSN"),
		RedisURL:            os.Getenv("REDIS_URL"),
		FirestoreProjectID:  os.Getenv("FIRESTORE_PROJECT_ID"),
		TripStore:           strings.ToLower(getEnv("TRIP_STORE", TripStoreAPI)),
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:     os.Getenv("SUPABASE_ANON_KEY"),
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDatabase:       getEnv("MONGO_DATABASE", "goplanner"),
		BackendAPIURL:       getEnv("BACKEND_API_URL", "https://goplanner-backend.onrender.com/api"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		PublicBaseURL:       strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.SourceTimeout, err = getDuration("SOURCE_TIMEOUT", 12*time.Second); err != nil {
		return nil, err
	}
	if cfg.SourceTimeout < 10*time.Second || cfg.SourceTimeout > 15*time.Second {
		return nil, fmt.Errorf("SOURCE_TIMEOUT は10秒から15秒の範囲で指定してください: %v", cfg.SourceTimeout)
	}

	ttlHours, err := getInt("DRAFT_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if ttlHours <= 0 {
		return nil, fmt.Errorf("DRAFT_TTL_HOURS は正の整数で指定してください: %d", ttlHours)
	}
	cfg.DraftTTL = time.Duration(ttlHours) * time.Hour

	if cfg.HotelHighMinStars, err = getFloat("HOTEL_HIGH_MIN_STARS", 4); err != nil {
		return nil, err
	}
	if cfg.HotelMidMinStars, err = getFloat("HOTEL_MID_MIN_STARS", 2); err != nil {
		return nil, err
	}
	if cfg.HotelMidMinStars > cfg.HotelHighMinStars {
		return nil, fmt.Errorf("HOTEL_MID_MIN_STARS は HOTEL_HIGH_MIN_STARS 以下にしてください")
	}

	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return nil, err
	}

	switch cfg.TripStore {
	case TripStoreSupabase, TripStoreMongo, TripStoreAPI:
	default:
		return nil, fmt.Errorf("TRIP_STORE は supabase / mongo / api のいずれかを指定してください: %s", cfg.TripStore)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return f, nil
}

// getDuration は "12s" 形式と秒数のみの両方を受け付ける
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
