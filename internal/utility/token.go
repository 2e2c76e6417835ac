package utility

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims là claims tùy chỉnh nhúng trong JWT.
// UserID là hex string của ObjectID user, Session là mã phiên ngẫu nhiên
// để hai lần đăng nhập liên tiếp sinh ra token khác nhau.
type TokenClaims struct {
	UserID  string `json:"userId"`
	Session string `json:"session"`
	jwt.RegisteredClaims
}

// CreateToken sinh JWT ký HS256 cho user.
// Trả về map có key "token" để caller lưu vào document user.
func CreateToken(secret string, userID string, session string, nonce string, expireHours int) (map[string]string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:  userID,
		Session: session + nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("không ký được token: %w", err)
	}

	return map[string]string{"token": signed}, nil
}

// ParseToken kiểm tra chữ ký và hạn của JWT, trả về claims nếu hợp lệ.
func ParseToken(secret string, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("thuật toán ký không hợp lệ: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token không hợp lệ")
	}
	return claims, nil
}
