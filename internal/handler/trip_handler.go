package handler

import (
	"net/http"

	"goplanner/internal/application"
	"goplanner/internal/domain/model"

	"github.com/gin-gonic/gin"
)

// TripHandler は保存済み旅行APIのハンドラー
type TripHandler struct {
	tripService application.TripService
}

// NewTripHandler は新しいTripHandlerインスタンスを作成
func NewTripHandler(tripService application.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// PostTrip は旅行を保存する
// POST /api/trips
func (h *TripHandler) PostTrip(c *gin.Context) {
	var req model.SaveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}

	trip, err := h.tripService.SaveTrip(c.Request.Context(), callerFrom(c), &req)
	if err != nil {
		respondDomainError(c, "旅行の保存に失敗しました", err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"trip": trip})
}

// GetTrips は旅行一覧を返す
// GET /api/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondDomainError(c, "旅行一覧の取得に失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, model.TripListResponse{Trips: trips})
}

// GetTrip は旅行を1件返す
// GET /api/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondDomainError(c, "旅行の取得に失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"trip": trip})
}

// DeleteTrip は旅行を削除する
// DELETE /api/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripService.DeleteTrip(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondDomainError(c, "旅行の削除に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "Trip deleted successfully",
	})
}
