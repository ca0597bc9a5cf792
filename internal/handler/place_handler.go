package handler

import (
	"net/http"
	"strconv"

	"goplanner/internal/domain/model"
	"goplanner/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PlaceHandler は地名検索APIのハンドラー
type PlaceHandler struct {
	placeUseCase usecase.PlaceSearchUseCase
}

// NewPlaceHandler は新しいPlaceHandlerインスタンスを作成
func NewPlaceHandler(placeUseCase usecase.PlaceSearchUseCase) *PlaceHandler {
	return &PlaceHandler{placeUseCase: placeUseCase}
}

// GetAutocomplete は目的地入力の候補を返す
// GET /api/places/autocomplete?q=&limit=
func (h *PlaceHandler) GetAutocomplete(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondDomainError(c, "", &ValidationError{Field: "limit", Message: "limitは0以上の整数で指定してください"})
			return
		}
		limit = n
	}

	suggestions, err := h.placeUseCase.Autocomplete(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondDomainError(c, "候補の取得に失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetReverse は座標から地名を返す
// GET /api/places/reverse?lat=&lng=
func (h *PlaceHandler) GetReverse(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	at := model.LatLng{Lat: lat, Lng: lng}
	if errLat != nil || errLng != nil || !at.IsValid() {
		respondDomainError(c, "", &ValidationError{Field: "lat,lng", Message: "緯度経度が正しくありません"})
		return
	}

	place, err := h.placeUseCase.Reverse(c.Request.Context(), at)
	if err != nil {
		respondDomainError(c, "逆ジオコーディングに失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, place)
}
