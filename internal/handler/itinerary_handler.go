package handler

import (
	"net/http"
	"strings"

	"goplanner/internal/domain/model"
	"goplanner/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ItineraryHandler は旅程生成・取得・出力APIのハンドラー
type ItineraryHandler struct {
	itineraryUseCase usecase.ItineraryUseCase
}

// NewItineraryHandler は新しいItineraryHandlerインスタンスを作成
func NewItineraryHandler(itineraryUseCase usecase.ItineraryUseCase) *ItineraryHandler {
	return &ItineraryHandler{itineraryUseCase: itineraryUseCase}
}

// PostGenerate は旅程を生成するエンドポイント
// POST /api/itineraries/generate
func (h *ItineraryHandler) PostGenerate(c *gin.Context) {
	var req model.TripRequest

	// リクエストボディのバインド
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}

	// バリデーション
	if err := validateTripRequest(&req); err != nil {
		respondDomainError(c, "", err)
		return
	}

	response, err := h.itineraryUseCase.Generate(c.Request.Context(), &req)
	if err != nil {
		respondDomainError(c, "旅程の生成に失敗しました", err)
		return
	}

	respondOK(c, http.StatusOK, response)
}

// validateTripRequest は旅程作成フォームの入力を検証する
func validateTripRequest(req *model.TripRequest) error {
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		return &ValidationError{Field: "destination", Message: "目的地は必須です"}
	}
	if req.StartDate == "" || req.EndDate == "" {
		return &ValidationError{Field: "startDate", Message: "開始日と終了日は必須です"}
	}
	if _, err := req.DayCount(); err != nil {
		return &ValidationError{Field: "endDate", Message: err.Error()}
	}
	req.Budget = strings.TrimSpace(req.Budget)
	if req.Budget != "" {
		if _, ok := model.ParseBudgetTier(req.Budget); !ok {
			return &ValidationError{
				Field:   "budget",
				Message: "予算は次のいずれかを指定してください: " + strings.Join(model.BudgetOptions(), " / "),
			}
		}
	}
	if req.Interests == nil {
		req.Interests = []string{}
	}
	return nil
}

// GetItinerary は保存済みドラフトを取得するエンドポイント
// GET /api/itineraries/:id
func (h *ItineraryHandler) GetItinerary(c *gin.Context) {
	draft, err := h.itineraryUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, "旅程の取得に失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, draft)
}

// PostOutline はテーマ別アウトラインを生成するエンドポイント
// POST /api/itineraries/outline
func (h *ItineraryHandler) PostOutline(c *gin.Context) {
	var req model.OutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}

	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		respondDomainError(c, "", &ValidationError{Field: "destination", Message: "目的地は必須です"})
		return
	}
	if req.Duration < model.MinOutlineDays || req.Duration > model.MaxOutlineDays {
		respondDomainError(c, "", &ValidationError{Field: "duration", Message: "日数は1から14の範囲で指定してください"})
		return
	}

	respondOK(c, http.StatusOK, h.itineraryUseCase.Outline(&req))
}

// GetItineraryPDF は旅程をPDFでダウンロードするエンドポイント
// GET /api/itineraries/:id/pdf
func (h *ItineraryHandler) GetItineraryPDF(c *gin.Context) {
	body, fileName, err := h.itineraryUseCase.ExportPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, "PDFの生成に失敗しました", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}

// GetItineraryMap は地図表示用のGeoJSONを返すエンドポイント
// GET /api/itineraries/:id/map
func (h *ItineraryHandler) GetItineraryMap(c *gin.Context) {
	fc, err := h.itineraryUseCase.MapFeatures(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, "地図データの生成に失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, fc)
}
