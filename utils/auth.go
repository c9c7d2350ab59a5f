package utils

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL token有效期
const TokenTTL = 30 * 24 * time.Hour

// TokenClaims 从token中解析出的用户信息
type TokenClaims struct {
	TokenID   string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// HashPassword 哈希密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("密码哈希失败: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(password string, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// GenerateToken 生成JWT令牌
func GenerateToken(secret []byte, userID, email string, now time.Time) (string, error) {
	// 创建JWT Claims
	claims := jwt.MapClaims{
		"jti":   ulid.Make().String(),
		"id":    userID,
		"email": email,
		"exp":   now.Add(TokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	// 创建token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名token
	tokenString, err := token.SignedString(secret)
	if err != nil {
		Logger.Error().Err(err).Msg("生成token失败")
		return "", err
	}

	Logger.Info().
		Str("userId", userID).
		Int("length", len(tokenString)).
		Msg("Token生成成功")

	return tokenString, nil
}

// ParseToken 解析和验证JWT令牌
func ParseToken(secret []byte, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("无效的token")
	}

	// 检查必要字段
	jti, _ := claims["jti"].(string)
	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	if jti == "" || id == "" || email == "" {
		return nil, fmt.Errorf("Token缺少必要字段")
	}

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return &TokenClaims{
		TokenID:   jti,
		UserID:    id,
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}
