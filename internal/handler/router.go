package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// RouterDeps はルーターに登録するハンドラーとミドルウェア
// Metrics が nil の場合 /metrics は登録しない
type RouterDeps struct {
	Itinerary     *ItineraryHandler
	ItineraryEdit *ItineraryEditHandler
	Trip          *TripHandler
	Place         *PlaceHandler
	Chat          *ChatHandler
	Health        *HealthHandler

	Auth        gin.HandlerFunc
	RateLimiter *IPRateLimiter
	Metrics     MetricsCollector
	CORSOrigins []string
}

// MetricsCollector はHTTPメトリクスの計測と公開
type MetricsCollector interface {
	GinMiddleware() gin.HandlerFunc
	Handler() http.Handler
}

// NewRouter はgin.EngineにCORSを被せたhttp.Handlerを返す
func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.GET("/health", deps.Health.GetHealth)

	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}

	// 旅程生成・編集・出力
	itineraries := api.Group("/itineraries")
	{
		itineraries.POST("/generate", deps.Itinerary.PostGenerate)
		itineraries.POST("/outline", deps.Itinerary.PostOutline)
		itineraries.GET("/:id", deps.Itinerary.GetItinerary)
		itineraries.GET("/:id/pdf", deps.Itinerary.GetItineraryPDF)
		itineraries.GET("/:id/map", deps.Itinerary.GetItineraryMap)

		itineraries.POST("/:id/days/:day/activities", deps.ItineraryEdit.PostActivity)
		itineraries.PATCH("/:id/days/:day/activities/:activityId", deps.ItineraryEdit.PatchActivity)
		itineraries.DELETE("/:id/days/:day/activities/:activityId", deps.ItineraryEdit.DeleteActivity)
		itineraries.POST("/:id/days/:day/reorder", deps.ItineraryEdit.PostReorder)
	}

	// 保存済み旅行（要認証）
	trips := api.Group("/trips")
	if deps.Auth != nil {
		trips.Use(deps.Auth)
	}
	{
		trips.POST("", deps.Trip.PostTrip)
		trips.GET("", deps.Trip.GetTrips)
		trips.GET("/:id", deps.Trip.GetTrip)
		trips.DELETE("/:id", deps.Trip.DeleteTrip)
	}

	places := api.Group("/places")
	{
		places.GET("/autocomplete", deps.Place.GetAutocomplete)
		places.GET("/reverse", deps.Place.GetReverse)
	}

	api.POST("/chat", deps.Chat.PostChat)

	return newCORS(deps.CORSOrigins).Handler(r)
}

func newCORS(origins []string) *cors.Cors {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		opts.AllowedOrigins = []string{"*"}
	} else {
		opts.AllowedOrigins = origins
		opts.AllowCredentials = true
	}
	return cors.New(opts)
}
