package container

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/car-collection/config"
	repouser "github.com/oksasatya/car-collection/internal/domain/repository"
	handlers "github.com/oksasatya/car-collection/internal/interface/http"
)

// Container carries the process-wide handles built at startup, in order:
// config, logger, storage, forgery guard. It is handed to the router explicitly.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users repouser.UserRepository
	DB    handlers.Pinger

	// optional, nil disables signup rate limiting
	Redis *redis.Client

	CSRF gin.HandlerFunc
}

// Validate checks the handles every module relies on are present.
func (c *Container) Validate() error {
	switch {
	case c == nil:
		return errors.New("container is nil")
	case c.Config == nil:
		return errors.New("container: config is nil")
	case c.Logger == nil:
		return errors.New("container: logger is nil")
	case c.Users == nil:
		return errors.New("container: user repository is nil")
	case c.CSRF == nil:
		return errors.New("container: csrf guard is nil")
	}
	return nil
}
