package app

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/eslsoft/flashdeck/internal/infrastructure/config"
	"github.com/eslsoft/flashdeck/internal/infrastructure/server"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *gorm.DB
	Server *server.Server
}
