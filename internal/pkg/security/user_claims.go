package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Parley"
	JWTExpirationTime        = time.Hour * 24 * 7
)

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
