package app

import (
	"todo-app/internal/config"
	"todo-app/internal/repository/db"
)

// Config bundles the shared dependencies handed to the HTTP layer: the
// storage backend and the loaded environment configuration.
type Config struct {
	DB        db.Database
	AppConfig *config.AppConfig
}

// NewConfig creates the dependency container
func NewConfig(database db.Database, appConfig *config.AppConfig) *Config {
	return &Config{
		DB:        database,
		AppConfig: appConfig,
	}
}
