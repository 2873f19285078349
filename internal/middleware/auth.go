package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/magda-composer/internal/config"
	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	bearerPrefix = "Bearer"
)

// Claims carried by access tokens
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth middleware validates HS256 tokens and attaches the caller to the context
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := ParseToken(tokenString, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		setCaller(c, claims)
		c.Next()
	}
}

// ParseToken validates a token string and returns its claims
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SignToken issues an HS256 token for the given claims
func SignToken(claims *Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// extractToken reads "Authorization: Bearer <token>", then the access_token cookie
func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == bearerPrefix {
			return parts[1]
		}
	}

	tokenString, _ := c.Cookie("access_token")
	return tokenString
}

func setCaller(c *gin.Context, claims *Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_id_str", strconv.FormatUint(uint64(claims.UserID), 10))
	c.Set("user_email", claims.Email)
	c.Set("user_role", models.NormalizeRole(claims.Role))
}

// GetCurrentUser retrieves the caller's ID as set by any auth mode
func GetCurrentUser(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id_str")
	return userID, userID != ""
}

// GetCurrentRole retrieves the caller's role, defaulting to a plain user
func GetCurrentRole(c *gin.Context) string {
	return models.NormalizeRole(c.GetString("user_role"))
}
