package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// ErrInvalidToken 令牌无效
var ErrInvalidToken = errors.New("invalid token")

// AuthMiddleware 认证中间件
// 配置了 secret 时只认有效的 JWT（HS256，claim user_id），携带无效令牌直接返回 401；
// 未配置 secret 时使用 X-User-ID 头。
// 无法识别用户时不设置用户，由需要用户的路由自行拒绝。
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			if userID := strings.TrimSpace(c.GetHeader("X-User-ID")); userID != "" {
				c.Set(userIDKey, userID)
			}
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			abortUnauthorized(c, "invalid authorization header")
			return
		}
		userID, err := ParseUserID(tokenString, secret)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    -1,
		"message": message,
	})
}

// RequireUser 要求已识别用户，否则返回 401
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			abortUnauthorized(c, "user not identified")
			return
		}
		c.Next()
	}
}

// ParseUserID 校验令牌并取出 user_id
func ParseUserID(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	return userID, nil
}

// GetUserID 从上下文获取当前用户ID
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
