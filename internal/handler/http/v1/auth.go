package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_reporting_system/internal/auth"
)

const claimsContextKey = "claims"

// bearerToken извлекает токен из заголовка Authorization или параметра token.
// Параметр нужен для EventSource, который не умеет задавать заголовки.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// AuthMiddleware - middleware для аутентификации по JWT
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			h.logger.Warn("Authorization token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		claims, err := h.tokens.Parse(tokenString)
		if err != nil {
			h.logger.WithError(err).Warn("Token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// optionalAuth сохраняет данные пользователя, если передан валидный токен,
// и пропускает анонимный запрос
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := h.tokens.Parse(tokenString); err == nil {
				c.Set(claimsContextKey, claims)
			}
		}
		c.Next()
	}
}

// RequirePermission пропускает запрос, если роль пользователя имеет право action над object
func (h *Handler) RequirePermission(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		allowed, err := h.policy.Allowed(claims.Role, object, action)
		if err != nil {
			h.logger.WithError(err).Error("Failed to evaluate access policy")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !allowed {
			h.logger.WithField("role", claims.Role).
				WithField("object", object).
				WithField("action", action).
				Warn("Access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}
