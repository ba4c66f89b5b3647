package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/car-collection/internal/interface/middleware"
)

// DebugModule serves expvar, including the signup counters, at /debug/vars.
type DebugModule struct {
	RDB    *redis.Client
	Logger *logrus.Logger
}

func NewDebugModule(rdb *redis.Client, logger *logrus.Logger) *DebugModule {
	return &DebugModule{RDB: rdb, Logger: logger}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, middleware.RateLimitOptions{
		Limit:  120,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Logger: m.Logger,
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
