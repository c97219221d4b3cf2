package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies LogLevel and LogJSON to the global logrus logger.
func (c *Config) ConfigureLogging() {
	log.SetOutput(os.Stdout)
	if c.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
