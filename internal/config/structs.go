package config

import (
	"github.com/linkdeck/linkdeck/internal/logger"
)

// Auth holds the settings for the signed auth token cookie.
type Auth struct {
	TokenSecret     string // secret used to sign auth tokens
	TokenTTLMinutes int    // lifetime of an issued auth token, 0 uses the default
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Auth      Auth
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
