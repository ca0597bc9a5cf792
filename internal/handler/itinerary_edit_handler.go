package handler

import (
	"net/http"
	"strconv"

	"goplanner/internal/domain/model"
	"goplanner/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ItineraryEditHandler はドラフト編集APIのハンドラー
type ItineraryEditHandler struct {
	editUseCase usecase.ItineraryEditUseCase
}

// NewItineraryEditHandler は新しいItineraryEditHandlerインスタンスを作成
func NewItineraryEditHandler(editUseCase usecase.ItineraryEditUseCase) *ItineraryEditHandler {
	return &ItineraryEditHandler{editUseCase: editUseCase}
}

// PostActivity はアクティビティを追加する
// POST /api/itineraries/:id/days/:day/activities
func (h *ItineraryEditHandler) PostActivity(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	// 本文は省略可能
	var req model.AddActivityRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
			return
		}
	}

	plan, err := h.editUseCase.AddActivity(c.Request.Context(), c.Param("id"), day, &req)
	if err != nil {
		respondDomainError(c, "アクティビティの追加に失敗しました", err)
		return
	}
	respondOK(c, http.StatusCreated, plan)
}

// PatchActivity はアクティビティを更新する
// PATCH /api/itineraries/:id/days/:day/activities/:activityId
func (h *ItineraryEditHandler) PatchActivity(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req model.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}

	plan, err := h.editUseCase.UpdateActivity(c.Request.Context(), c.Param("id"), day, c.Param("activityId"), &req)
	if err != nil {
		respondDomainError(c, "アクティビティの更新に失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, plan)
}

// DeleteActivity はアクティビティを削除する
// DELETE /api/itineraries/:id/days/:day/activities/:activityId
func (h *ItineraryEditHandler) DeleteActivity(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	plan, err := h.editUseCase.DeleteActivity(c.Request.Context(), c.Param("id"), day, c.Param("activityId"))
	if err != nil {
		respondDomainError(c, "アクティビティの削除に失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, plan)
}

// PostReorder はアクティビティを並べ替える
// POST /api/itineraries/:id/days/:day/reorder
func (h *ItineraryEditHandler) PostReorder(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req model.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "リクエストの形式が正しくありません", err)
		return
	}
	if req.ActivityID == "" {
		respondDomainError(c, "", &ValidationError{Field: "activityId", Message: "activityIdは必須です"})
		return
	}

	plan, err := h.editUseCase.Reorder(c.Request.Context(), c.Param("id"), day, &req)
	if err != nil {
		respondDomainError(c, "並べ替えに失敗しました", err)
		return
	}
	respondOK(c, http.StatusOK, plan)
}

func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		respondDomainError(c, "", &ValidationError{Field: "day", Message: "日番号は1以上の整数で指定してください"})
		return 0, false
	}
	return day, true
}
