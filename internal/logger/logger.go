package logger

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Options controls where and how much the process logs.
type Options struct {
	Level  string
	File   string
	Stdout bool
}

// Setup points logrus at a rotating file, optionally mirrored to stdout, and
// returns the writer so the HTTP access log can share it.
func Setup(opts Options) (io.Writer, error) {
	var out io.Writer = io.Discard
	if opts.File != "" {
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		}
	}
	if opts.Stdout {
		if opts.File != "" {
			out = io.MultiWriter(out, os.Stdout)
		} else {
			out = os.Stdout
		}
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetLevel(level)
	return out, nil
}

// GormLogger routes gorm's SQL logging through logrus. Queries slower than
// slow are logged as warnings; everything else only at debug level.
func GormLogger(slow time.Duration) gormlogger.Interface {
	level := gormlogger.Warn
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
