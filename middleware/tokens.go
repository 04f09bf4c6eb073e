package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeKey = "typ"

	// AccessToken dùng cho header Authorization
	AccessToken = "access"
	// RefreshToken chỉ dùng để đổi lấy cặp token mới tại /auth/refresh
	RefreshToken = "refresh"
)

// ErrInvalidToken là lỗi chung khi token không dùng được
var ErrInvalidToken = errors.New("invalid or expired token")

// Tokens tạo access token và refresh token
type Tokens struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func (t Tokens) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// GenerateJWT tạo token loại kind với user_id và exp
func (t Tokens) GenerateJWT(userID int64, kind string, ttl time.Duration) (string, error) {
	// Tạo claims cho JWT
	claims := jwt.MapClaims{
		userIDKey:    userID,
		tokenTypeKey: kind,
		"exp":        t.now().Add(ttl).Unix(),
	}

	// Tạo token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

// Pair tạo access token và refresh token
func (t Tokens) Pair(userID int64) (access, refresh string, err error) {
	access, err = t.GenerateJWT(userID, AccessToken, t.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.GenerateJWT(userID, RefreshToken, t.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Parse kiểm tra chữ ký HS256, hạn dùng và loại token, trả về user ID
func (t Tokens) Parse(tokenString, kind string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	if typ, _ := claims[tokenTypeKey].(string); typ != kind {
		return 0, ErrInvalidToken
	}
	// JSON number được giải mã thành float64
	id, ok := claims[userIDKey].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return int64(id), nil
}
