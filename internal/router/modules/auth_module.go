package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/car-collection/internal/interface/http"
	"github.com/oksasatya/car-collection/internal/interface/middleware"
)

const (
	AuthPrefix        = "/auth"
	SignupPath        = AuthPrefix + "/signup"
	SignupSuccessPath = AuthPrefix + "/signup-success"
)

// SignupModule registers
// GET  /auth/signup, POST /auth/signup (rate limited when Redis is configured)
// GET  /auth/signup-success
type SignupModule struct {
	Handler *handlers.SignupHandler
	RDB     *redis.Client
	Limit   int
	Window  time.Duration
	Logger  *logrus.Logger
}

func NewSignupModule(h *handlers.SignupHandler, rdb *redis.Client, limit int, window time.Duration, logger *logrus.Logger) *SignupModule {
	return &SignupModule{Handler: h, RDB: rdb, Limit: limit, Window: window, Logger: logger}
}

func (m *SignupModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group(AuthPrefix)

	submitLimiter := middleware.RateLimit(m.RDB, middleware.RateLimitOptions{
		Limit:  m.Limit,
		Window: m.Window,
		Key:    middleware.KeyByIPAndPath(),
		Logger: m.Logger,
	})

	auth.GET("/signup", m.Handler.ShowForm)
	auth.POST("/signup", submitLimiter, m.Handler.Submit)
	auth.GET("/signup-success", m.Handler.Success)
}
