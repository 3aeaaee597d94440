package middleware

import (
	"icsq_backend/internal/config"
	"icsq_backend/internal/model"
	"icsq_backend/internal/util"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 依次尝试 HttpOnly Cookie、Authorization 头、token 查询参数。
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if cookie, err := c.Cookie(cfg.JWT.CookieName); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
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

// RoleMiddleware 管理员直接放行，其余角色须在允许列表中。
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == model.RoleAdmin {
				hasRole = true
				break
			}
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// 同一用户的 last_seen 写入间隔，避免高频请求放大 DB 写入
const activityWriteInterval = time.Minute

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	var mu sync.Mutex
	lastSeen := make(map[uint]time.Time)

	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			mu.Lock()
			now := time.Now()
			due := now.Sub(lastSeen[claims.UserID]) >= activityWriteInterval
			if due {
				lastSeen[claims.UserID] = now
			}
			mu.Unlock()

			if due {
				// 异步更新，不阻塞主流程
				go repo.UpdateLastSeen(claims.UserID)
			}
		}
		c.Next()
	}
}
