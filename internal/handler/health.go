package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings postgres and redis with a short deadline and reports each
// dependency separately, so a probe can tell which side is down.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		deps := gin.H{
			"postgres": pingDB(ctx, db),
			"redis":    rdb.Ping(ctx).Err() == nil,
		}

		healthy := true
		for _, up := range deps {
			healthy = healthy && up.(bool)
		}

		code := http.StatusOK
		overall := "ok"
		if !healthy {
			code = http.StatusServiceUnavailable
			overall = "degraded"
		}
		c.JSON(code, gin.H{"status": overall, "dependencies": deps})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
