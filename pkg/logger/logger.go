package logger

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	log.SetOutput(os.Stdout)

	if os.Getenv("ENVIRONMENT") == "development" {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

type Fields = log.Fields

func Debug(message string, fields Fields) {
	log.WithFields(fields).Debug(message)
}

func Info(message string, fields Fields) {
	log.WithFields(fields).Info(message)
}

func Warn(message string, fields Fields) {
	log.WithFields(fields).Warn(message)
}

func Error(message string, fields Fields) {
	log.WithFields(fields).Error(message)
}

func Fatal(message string, fields Fields) {
	log.WithFields(fields).Fatal(message)
}
