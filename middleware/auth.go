package middleware

import (
	"net/http"
	"strings"

	"github.com/BerniceZTT/gwsample_end/service"
	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// sessionKey gin 上下文中保存会话的键
const sessionKey = "session"

// AuthMiddleware 校验会话令牌并加载会话
func AuthMiddleware(registry *service.SessionRegistry, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		utils.Logger.Debug().
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("authorization", getShortAuthHeader(authHeader)).
			Msg("验证请求")

		// 检查Authorization头
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "未授权访问",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		claims, err := utils.ParseToken(secret, token)
		if err != nil {
			utils.Logger.Warn().Err(err).Msg("Token验证失败")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "无效的token: " + err.Error(),
				"code":    "INVALID_TOKEN",
			})
			return
		}

		session, ok := registry.Get(claims.SessionID)
		if !ok {
			utils.Logger.Info().Str("sessionId", claims.SessionID).Msg("会话不存在或已过期")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "会话不存在或已过期",
				"code":    "SESSION_EXPIRED",
			})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// CurrentSession 取出认证中间件加载的会话
func CurrentSession(c *gin.Context) (*service.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*service.Session)
	return session, ok
}

// getShortAuthHeader 获取截断的授权头，保护敏感信息
func getShortAuthHeader(header string) string {
	if len(header) > 15 {
		return header[:15] + "..."
	}
	return header
}
