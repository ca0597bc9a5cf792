package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"goplanner/internal/domain/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const callerKey = "caller"

// AuthClaims はGoPlannerバックエンドが発行するトークンのクレーム
// ユーザーIDは id / userId / sub のいずれかに入る
type AuthClaims struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// CallerID はユーザーIDを返す
func (c *AuthClaims) CallerID() string {
	switch {
	case c.ID != "":
		return c.ID
	case c.UserID != "":
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}

// AuthMiddleware は Bearer トークンを検証し、呼び出しユーザーをコンテキストに入れる
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			respondError(c, http.StatusUnauthorized, "認証が必要です", model.ErrUnauthorized)
			return
		}

		claims, err := ParseToken(secret, token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "トークンが無効です", err)
			return
		}

		c.Set(callerKey, model.Caller{UserID: claims.CallerID(), Token: token})
		c.Next()
	}
}

// ParseToken はHS256で署名されたトークンを検証する
func ParseToken(secret []byte, tokenString string) (*AuthClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("JWT_SECRET が設定されていません")
	}
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("トークンの検証に失敗: %w", err)
	}
	if !token.Valid || claims.CallerID() == "" {
		return nil, fmt.Errorf("トークンにユーザーIDがありません: %w", model.ErrUnauthorized)
	}
	return claims, nil
}

func callerFrom(c *gin.Context) model.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(model.Caller); ok {
			return caller
		}
	}
	return model.Caller{}
}

// IPRateLimiter はクライアントIPごとのレート制限
type IPRateLimiter struct {
	visitors *gocache.Cache
	limit    rate.Limit
	burst    int
}

// NewIPRateLimiter は1分あたりperMinute回までのリミッターを作成する
// perMinute が0以下なら制限しない。10分アクセスのないIPは破棄する
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors: gocache.New(10*time.Minute, 10*time.Minute),
		limit:    rate.Inf,
		burst:    1,
	}
	if perMinute > 0 {
		rl.limit = rate.Every(time.Minute / time.Duration(perMinute))
		rl.burst = perMinute
	}
	return rl
}

func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := rl.visitors.Get(ip); ok {
		limiter := v.(*rate.Limiter)
		rl.visitors.SetDefault(ip, limiter)
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	if err := rl.visitors.Add(ip, limiter, gocache.DefaultExpiration); err != nil {
		// 同時に作られた場合は先に登録された方を使う
		if v, ok := rl.visitors.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

// Middleware は上限を超えたリクエストに429を返す
func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getLimiter(c.ClientIP()).Allow() {
			respondError(c, http.StatusTooManyRequests, "リクエストが多すぎます。しばらくしてから再度お試しください", nil)
			return
		}
		c.Next()
	}
}
