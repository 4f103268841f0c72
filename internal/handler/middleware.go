// 인증/권한 미들웨어 정의
//
// AuthMiddleware가 Bearer 토큰을 검증해 운영자를 컨텍스트에 싣고,
// RequireRole이 역할 기반으로 접근을 제한한다 (예: 지식 시드는 admin 전용).

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finops-engine/backend/internal/model"
	"github.com/finops-engine/backend/internal/service"
)

const authOperatorKey = "auth_operator"

func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		operator, err := authService.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(authOperatorKey, operator)
		c.Next()
	}
}

// RequireRole - 해당 역할의 운영자만 통과 (AuthMiddleware 이후에 사용)
func RequireRole(role model.OperatorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := GetAuthOperator(c)
		if operator == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if operator.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func GetAuthOperator(c *gin.Context) *model.AuthOperator {
	if value, ok := c.Get(authOperatorKey); ok {
		if operator, ok := value.(*model.AuthOperator); ok {
			return operator
		}
	}
	return nil
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			originMap[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
