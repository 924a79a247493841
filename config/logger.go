package config

import (
	"github.com/sirupsen/logrus"
)

// Logger is the shared application logger. Usable before InitLogger runs;
// InitLogger only adjusts formatting and level.
var Logger = logrus.New()

func InitLogger() {
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Logger.SetLevel(logrus.InfoLevel)
}
