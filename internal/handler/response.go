package handler

import (
	"errors"
	"net/http"

	"goplanner/internal/application"
	"goplanner/internal/domain/model"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func respondOK(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{
		"status": statusSuccess,
		"data":   data,
	})
}

func respondError(c *gin.Context, code int, message string, err error) {
	body := gin.H{
		"status":  statusError,
		"message": message,
	}
	if err != nil {
		body["details"] = err.Error()
	}
	c.AbortWithStatusJSON(code, body)
}

// respondDomainError はドメインエラーをHTTPステータスに変換して返す
func respondDomainError(c *gin.Context, fallbackMessage string, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, "バリデーションエラー", err)
	case errors.Is(err, model.ErrItineraryNotFound):
		respondError(c, http.StatusNotFound, "旅程が見つからないか、有効期限切れです", err)
	case errors.Is(err, model.ErrTripNotFound):
		respondError(c, http.StatusNotFound, "旅行が見つかりません", err)
	case errors.Is(err, model.ErrDayNotFound), errors.Is(err, model.ErrActivityNotFound):
		respondError(c, http.StatusNotFound, "指定された日またはアクティビティが見つかりません", err)
	case errors.Is(err, model.ErrPlaceNotFound):
		respondError(c, http.StatusNotFound, "場所が見つかりません", err)
	case errors.Is(err, model.ErrInvalidMove), errors.Is(err, model.ErrInvalidActivityType), errors.Is(err, application.ErrInvalidTrip):
		respondError(c, http.StatusBadRequest, "リクエストの内容が正しくありません", err)
	case errors.Is(err, model.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "認証が必要です", err)
	default:
		respondError(c, http.StatusInternalServerError, fallbackMessage, err)
	}
}
