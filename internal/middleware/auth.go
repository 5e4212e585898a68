package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"text2learn_backend/internal/config"
	"text2learn_backend/internal/util"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// UserActivityRepo 记录用户活跃时间，避免 middleware 直接依赖 repository 包
type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// ActivityMiddleware 请求结束后异步刷新用户最后活跃时间
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		user := util.GetUserFromContext(c)
		if user == nil {
			return
		}
		go repo.UpdateLastSeen(user.UserID)
	}
}
