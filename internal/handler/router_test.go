package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"goplanner/internal/application"
	"goplanner/internal/chatbot"
	"goplanner/internal/domain/model"
	"goplanner/internal/infrastructure/observability"
	"goplanner/internal/infrastructure/pdf"
	repoImpl "goplanner/internal/repository"
	"goplanner/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type stubAggregator struct {
	err error
}

func (s *stubAggregator) Generate(_ context.Context, req *model.TripRequest) (*model.Itinerary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Itinerary{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.BudgetLabel(),
		Interests:   req.Interests,
		Coordinates: &model.GeoLocation{Lat: 48.8566, Lng: 2.3522},
		TotalDays:   1,
		Source:      model.SourceLive,
		Days: []model.DayPlan{{
			DayNumber: 1,
			Date:      req.StartDate,
			Activities: []model.Activity{
				{ID: "1-1", Time: model.TimeCheckIn, Activity: "Check-in", Type: model.ActivityAccommodation, Order: 1,
					Coordinates: &model.LatLng{Lat: 48.86, Lng: 2.34}},
				{ID: "1-2", Time: model.TimeDinner, Activity: "Dinner", Type: model.ActivityDining, Order: 2},
			},
		}},
	}, nil
}

type memoryTripRepo struct {
	mu    sync.Mutex
	trips map[string]model.Trip
}

func (r *memoryTripRepo) Create(_ context.Context, _ model.Caller, trip *model.Trip) (*model.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.ID] = *trip
	return trip, nil
}

func (r *memoryTripRepo) ListByUser(_ context.Context, caller model.Caller) ([]model.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Trip
	for _, t := range r.trips {
		if t.UserID == caller.UserID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memoryTripRepo) FindByID(_ context.Context, caller model.Caller, id string) (*model.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok || t.UserID != caller.UserID {
		return nil, model.ErrTripNotFound
	}
	return &t, nil
}

func (r *memoryTripRepo) Delete(_ context.Context, caller model.Caller, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok || t.UserID != caller.UserID {
		return model.ErrTripNotFound
	}
	delete(r.trips, id)
	return nil
}

type stubPlaces struct{}

func (stubPlaces) Autocomplete(_ context.Context, text string, _ int) ([]model.PlaceSuggestion, error) {
	if len(text) < 2 {
		return []model.PlaceSuggestion{}, nil
	}
	return []model.PlaceSuggestion{{Name: "Paris", FullName: "Paris, Ile-de-France, France"}}, nil
}

func (stubPlaces) Reverse(_ context.Context, at model.LatLng) (*model.ReversePlace, error) {
	if at.Lat == 0 && at.Lng == 0 {
		return nil, nil
	}
	return &model.ReversePlace{Name: "Paris", Coordinates: at}, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, ratePerMinute int) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	drafts := repoImpl.NewMemoryItineraryDraftRepository(time.Hour)
	metrics := observability.NewMetrics()
	knowledge, err := chatbot.LoadKnowledge()
	require.NoError(t, err)

	itineraryUC := usecase.NewItineraryUseCase(&stubAggregator{}, drafts, pdf.NewItineraryRenderer("https://goplanner.example"), metrics, time.Hour)
	tripService := application.NewTripService(&memoryTripRepo{trips: map[string]model.Trip{}}, drafts)

	return NewRouter(RouterDeps{
		Itinerary:     NewItineraryHandler(itineraryUC),
		ItineraryEdit: NewItineraryEditHandler(usecase.NewItineraryEditUseCase(drafts)),
		Trip:          NewTripHandler(tripService),
		Place:         NewPlaceHandler(usecase.NewPlaceSearchUseCase(stubPlaces{})),
		Chat:          NewChatHandler(usecase.NewChatUseCase(chatbot.NewAssistant(knowledge, nil))),
		Health:        NewHealthHandler(map[string]HealthChecker{}),
		Auth:          AuthMiddleware(testSecret),
		RateLimiter:   NewIPRateLimiter(ratePerMinute),
		Metrics:       metrics,
		CORSOrigins:   []string{"*"},
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &AuthClaims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func generate(t *testing.T, h http.Handler) model.GenerateItineraryResponse {
	t.Helper()
	w, env := doJSON(t, h, http.MethodPost, "/api/itineraries/generate", model.TripRequest{
		Destination: "Paris, France",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-01",
		Budget:      model.Budget1000To2500,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp model.GenerateItineraryResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func TestItineraryEndpoints(t *testing.T) {
	h := newTestRouter(t, 0)

	t.Run("生成したドラフトを取得できる", func(t *testing.T) {
		resp := generate(t, h)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, model.SourceLive, resp.Itinerary.Source)

		w, env := doJSON(t, h, http.MethodGet, "/api/itineraries/"+resp.ID, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", env.Status)
	})

	t.Run("入力が不正なら400", func(t *testing.T) {
		w, env := doJSON(t, h, http.MethodPost, "/api/itineraries/generate", model.TripRequest{
			Destination: "Paris", StartDate: "2025-05-03", EndDate: "2025-05-01",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "error", env.Status)

		w, _ = doJSON(t, h, http.MethodPost, "/api/itineraries/generate", model.TripRequest{StartDate: "2025-05-01", EndDate: "2025-05-01"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("未知の予算ラベルは400", func(t *testing.T) {
		w, env := doJSON(t, h, http.MethodPost, "/api/itineraries/generate", model.TripRequest{
			Destination: "Paris", StartDate: "2025-05-01", EndDate: "2025-05-01", Budget: "a lot",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "error", env.Status)
		assert.Contains(t, w.Body.String(), "budget")
		assert.Contains(t, w.Body.String(), model.Budget1000To2500)
	})

	t.Run("予算ラベル省略は許可", func(t *testing.T) {
		w, _ := doJSON(t, h, http.MethodPost, "/api/itineraries/generate", model.TripRequest{
			Destination: "Paris", StartDate: "2025-05-01", EndDate: "2025-05-01",
		}, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("上限を超える期間は400", func(t *testing.T) {
		w, _ := doJSON(t, h, http.MethodPost, "/api/itineraries/generate", model.TripRequest{
			Destination: "Paris", StartDate: "0001-01-01", EndDate: "9999-12-31",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("存在しないドラフトは404", func(t *testing.T) {
		w, _ := doJSON(t, h, http.MethodGet, "/api/itineraries/missing", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("アウトライン", func(t *testing.T) {
		w, env := doJSON(t, h, http.MethodPost, "/api/itineraries/outline", model.OutlineRequest{Destination: "Kyoto", Duration: 2}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var outline model.Outline
		require.NoError(t, json.Unmarshal(env.Data, &outline))
		assert.Len(t, outline.Days, 2)

		w, _ = doJSON(t, h, http.MethodPost, "/api/itineraries/outline", model.OutlineRequest{Destination: "Kyoto", Duration: 15}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PDFと地図", func(t *testing.T) {
		resp := generate(t, h)

		req := httptest.NewRequest(http.MethodGet, "/api/itineraries/"+resp.ID+"/pdf", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "GoPlanner_Paris__France_")

		w, env := doJSON(t, h, http.MethodGet, "/api/itineraries/"+resp.ID+"/map", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var fc struct {
			Type     string            `json:"type"`
			Features []json.RawMessage `json:"features"`
			BBox     []float64         `json:"bbox"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &fc))
		assert.Equal(t, "FeatureCollection", fc.Type)
		assert.Len(t, fc.Features, 1)
		assert.Len(t, fc.BBox, 4)
	})
}

func TestItineraryEditEndpoints(t *testing.T) {
	h := newTestRouter(t, 0)
	resp := generate(t, h)
	base := "/api/itineraries/" + resp.ID + "/days/1"

	w, env := doJSON(t, h, http.MethodPost, base+"/activities", nil, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var day model.DayPlan
	require.NoError(t, json.Unmarshal(env.Data, &day))
	require.Len(t, day.Activities, 3)
	added := day.Activities[2]
	assert.Equal(t, "New activity", added.Activity)

	notes := "Bring camera"
	w, env = doJSON(t, h, http.MethodPatch, base+"/activities/"+added.ID, model.UpdateActivityRequest{Notes: &notes}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &day))
	assert.Equal(t, notes, day.Activities[2].Notes)

	w, env = doJSON(t, h, http.MethodPost, base+"/reorder", model.ReorderRequest{ActivityID: added.ID, TargetID: "1-1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &day))
	assert.Equal(t, added.ID, day.Activities[0].ID)
	assert.Equal(t, 1, day.Activities[0].Order)

	w, _ = doJSON(t, h, http.MethodPost, base+"/reorder", model.ReorderRequest{ActivityID: added.ID, Direction: "sideways"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, h, http.MethodDelete, base+"/activities/"+added.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &day))
	assert.Len(t, day.Activities, 2)

	w, _ = doJSON(t, h, http.MethodDelete, base+"/activities/"+added.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, h, http.MethodPost, "/api/itineraries/"+resp.ID+"/days/zero/activities", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTripEndpoints(t *testing.T) {
	h := newTestRouter(t, 0)
	token := signToken(t, "user-1")

	t.Run("トークンなしは401", func(t *testing.T) {
		w, _ := doJSON(t, h, http.MethodGet, "/api/trips", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w, _ = doJSON(t, h, http.MethodGet, "/api/trips", nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ドラフトから保存して一覧・取得・削除", func(t *testing.T) {
		draft := generate(t, h)

		w, env := doJSON(t, h, http.MethodPost, "/api/trips", model.SaveTripRequest{DraftID: draft.ID}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var saved struct {
			Trip model.Trip `json:"trip"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &saved))
		assert.Equal(t, model.TripStatusPlanned, saved.Trip.Status)
		assert.Equal(t, "user-1", saved.Trip.UserID)

		w, env = doJSON(t, h, http.MethodGet, "/api/trips", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var list model.TripListResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list.Trips, 1)

		other := signToken(t, "user-2")
		w, _ = doJSON(t, h, http.MethodGet, "/api/trips/"+saved.Trip.ID, nil, other)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = doJSON(t, h, http.MethodDelete, "/api/trips/"+saved.Trip.ID, nil, token)
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = doJSON(t, h, http.MethodGet, "/api/trips/"+saved.Trip.ID, nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("旅程のない保存は400", func(t *testing.T) {
		w, _ := doJSON(t, h, http.MethodPost, "/api/trips", model.SaveTripRequest{Destination: "Paris"}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPlaceAndChatEndpoints(t *testing.T) {
	h := newTestRouter(t, 0)

	w, env := doJSON(t, h, http.MethodGet, "/api/places/autocomplete?q=Par&limit=3", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Paris, Ile-de-France, France")

	w, _ = doJSON(t, h, http.MethodGet, "/api/places/autocomplete?q=Par&limit=x", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, h, http.MethodGet, "/api/places/reverse?lat=48.85&lng=2.35", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, h, http.MethodGet, "/api/places/reverse?lat=0&lng=0", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, h, http.MethodGet, "/api/places/reverse?lat=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, h, http.MethodPost, "/api/chat", model.ChatRequest{Message: "Hello"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var chat model.ChatResponse
	require.NoError(t, json.Unmarshal(env.Data, &chat))
	assert.Contains(t, chat.Response, "travel planning assistant")
	assert.Equal(t, model.IntentGreeting, chat.Context.LastIntent)

	w, _ = doJSON(t, h, http.MethodPost, "/api/chat", model.ChatRequest{Message: "  "}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t, 0)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"goplanner"`)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goplanner_http_requests_total")
}

func TestRateLimit(t *testing.T) {
	h := newTestRouter(t, 1)

	w, _ := doJSON(t, h, http.MethodGet, "/api/itineraries/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, h, http.MethodGet, "/api/itineraries/missing", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// ヘルスチェックは制限しない
	w, _ = doJSON(t, h, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseToken(t *testing.T) {
	_, err := ParseToken(nil, "x")
	assert.Error(t, err)

	claims, err := ParseToken(testSecret, signToken(t, "user-9"))
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.CallerID())

	// ユーザーIDがないトークン
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "user"})
	s, err := token.SignedString(testSecret)
	require.NoError(t, err)
	_, err = ParseToken(testSecret, s)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
