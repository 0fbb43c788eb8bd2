package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. It emits structured JSON so log
// lines from the chat agent, the task API, and migrations aggregate cleanly.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))

	if os.Getenv("LOG_FORMAT") == "text" {
		// Plain text is easier on the eyes during local development
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}

	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

func parseLevel(s string) logrus.Level {
	switch s {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
