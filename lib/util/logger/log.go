package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *Logger
	once sync.Once
)

type Logger struct {
	*logrus.Logger
}

type Entry struct {
	entry *logrus.Entry
}

func (l *Logger) Warn(args ...interface{}) {
	warnFatal(args)
	l.Logger.Warn(args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	warnFatalf(format, args...)
	l.Logger.Warnf(format, args...)
}

func (l *Logger) Error(args ...interface{}) {
	warnFatal(args)
	l.Logger.Error(args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	warnFatalf(format, args...)
	l.Logger.Errorf(format, args...)
}

func (l *Logger) WithField(key string, value interface{}) *Entry {
	return &Entry{l.Logger.WithField(key, value)}
}

func (l *Logger) WithFields(fields logrus.Fields) *Entry {
	return &Entry{l.Logger.WithFields(fields)}
}

func (l *Logger) WithError(err error) *Entry {
	return &Entry{l.Logger.WithError(err)}
}

func (e *Entry) WithField(key string, value interface{}) *Entry {
	return &Entry{e.entry.WithField(key, value)}
}

func (e *Entry) Debug(args ...interface{}) {
	e.entry.Debug(args...)
}

func (e *Entry) Debugf(format string, args ...interface{}) {
	e.entry.Debugf(format, args...)
}

func (e *Entry) Warn(args ...interface{}) {
	warnFatal(args)
	e.entry.Warn(args...)
}

func (e *Entry) Warnf(format string, args ...interface{}) {
	warnFatalf(format, args...)
	e.entry.Warnf(format, args...)
}

func (e *Entry) Error(args ...interface{}) {
	warnFatal(args)
	e.entry.Error(args...)
}

func (e *Entry) Errorf(format string, args ...interface{}) {
	warnFatalf(format, args...)
	e.entry.Errorf(format, args...)
}

func warnFatal(args ...interface{}) {
	if failFast != "" {
		log.Fatal(args)
	}
}

func warnFatalf(format string, args ...interface{}) {
	if failFast != "" {
		log.Fatalf(format, args...)
	}
}

var failFast string

func InitializeConfKeepLogger() {
	once.Do(func() {
		log = &Logger{}
		log.Logger = logrus.New()
		// We do not want to log by default
		log.SetOutput(io.Discard)
		log.SetLevel(logrus.PanicLevel)
		// Check if DEBUG_CONFKEEP is set
		if logLevel := os.Getenv("DEBUG_CONFKEEP"); logLevel != "" {
			failFast = os.Getenv("WARNFAIL_CONFKEEP")
			if failFast != "" {
				logLevel = "debug"
			}
			// Logs go to stderr so they never interleave with the wrapped
			// application's terminal output or the merge summary on stdout.
			log.SetOutput(os.Stderr)
			switch strings.ToLower(logLevel) {
			case "debug":
				log.SetLevel(logrus.DebugLevel)
			case "warn":
				log.SetLevel(logrus.WarnLevel)
			case "error":
				log.SetLevel(logrus.ErrorLevel)
			default:
				log.SetLevel(logrus.DebugLevel)
			}
			log.WithField("level", log.GetLevel()).Debug("Logging enabled.")
		}
	})
}

// GetConfKeepLogger returns the initialized Logger
func GetConfKeepLogger() *Logger {
	if log == nil {
		InitializeConfKeepLogger()
	}
	return log
}

func init() {
	InitializeConfKeepLogger()
}
