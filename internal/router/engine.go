package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/car-collection/internal/container"
	"github.com/oksasatya/car-collection/internal/interface/middleware"
	"github.com/oksasatya/car-collection/web"
)

// NewEngine builds the gin engine with global middleware, templates and every module.
func NewEngine(c *container.Container) (*gin.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cfg := c.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r, nil
}
