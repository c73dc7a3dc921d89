package middleware

import (
	"net/http"
	"strings"
	"time"

	"dinedash-api/config"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID   uint            `json:"user_id"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"user_type"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user
func GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// AuthRequired validates the JWT and injects claims into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("userType", string(claims.UserType))
		c.Next()
	}
}

// AuthOptional injects claims when a valid token is present but never rejects
// the request. Used by public endpoints that personalize for signed-in users.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return config.JWTSecret, nil
			})
			if err == nil && token.Valid {
				c.Set("userID", claims.UserID)
				c.Set("email", claims.Email)
				c.Set("userType", string(claims.UserType))
			}
		}
		c.Next()
	}
}

// UserTypeRequired enforces that the caller's account type matches exactly.
// The account type is fixed at registration, so a single equality check is
// the whole authorization decision.
func UserTypeRequired(t models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		typeVal, exists := c.Get("userType")
		if !exists || models.UserType(typeVal.(string)) != t {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied. Required account type: " + string(t),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AnonymousOnly rejects requests that carry a valid token. Registration and
// login are only for signed-out callers.
func AnonymousOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return config.JWTSecret, nil
			})
			if err == nil && token.Valid {
				c.JSON(http.StatusForbidden, gin.H{"error": "Already signed in"})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	return val.(uint)
}

// GetUserType extracts caller account type from context
func GetUserType(c *gin.Context) models.UserType {
	val, _ := c.Get("userType")
	return models.UserType(val.(string))
}
