// auth.go - Login tokens and request identity
//
// Routes are not protected. Identity only attaches the caller's user id to the
// context when a valid "Authorization: Bearer <token>" header is present, so the
// access log can attribute requests. Missing or invalid tokens are ignored.

package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key holding the authenticated user id (uint).
const UserIDKey = "user_id"

// IssueToken signs an HS256 token for userID that expires ttl after now.
func IssueToken(userID uint, secret string, ttl time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken validates tokenStr and returns the user id it was issued for.
func ParseToken(tokenStr, secret string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	// JWT numbers decode as float64
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("invalid user id claim")
	}
	return uint(id), nil
}

// Identity stores the token's user id under UserIDKey when the request carries a valid token.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if id, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret); err == nil {
				c.Set(UserIDKey, id)
			}
		}
		c.Next()
	}
}
