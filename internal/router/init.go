package router

import (
	"github.com/oksasatya/car-collection/internal/application"
	"github.com/oksasatya/car-collection/internal/container"
	handlers "github.com/oksasatya/car-collection/internal/interface/http"
	"github.com/oksasatya/car-collection/internal/router/modules"
)

type SignupModuleDeps struct {
	Service *application.Service
	Handler *handlers.SignupHandler
}

func buildSignupDeps(c *container.Container) SignupModuleDeps {
	service := application.NewService(
		c.Users,
		application.NewPasswordEncoder(c.Config.PasswordHashing),
		c.Logger,
	)

	handler := handlers.NewSignupHandler(
		service,
		handlers.NewSignupValidator(nil),
		c.Logger,
		modules.SignupSuccessPath,
	)

	return SignupModuleDeps{
		Service: service,
		Handler: handler,
	}
}

// InitModules builds every module from the container and adds it to the registry.
// The forgery guard is registered first so it wraps all routes.
func InitModules(r *Registry, c *container.Container) {
	r.Use(c.CSRF)

	signupDeps := buildSignupDeps(c)
	r.Add(modules.NewSignupModule(signupDeps.Handler, c.Redis, c.Config.SignupRateLimit, c.Config.SignupRateWindow, c.Logger))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.DB)))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis, c.Logger))
	}
}
