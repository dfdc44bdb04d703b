// Package log provides the renderer's singleton structured logger,
// grounded on spaghettifunk-anima/engine/core/logging.go's
// sync.Once-guarded *log.Logger wrapper, renamed for this domain and
// without that file's emoji prefix.
package log

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once
var singleton *log.Logger

func logger() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "iris",
		})
		singleton.SetLevel(log.InfoLevel)
	})
	return singleton
}

// SetLevel adjusts the singleton's verbosity, e.g. to log.DebugLevel
// for per-sample roulette diagnostics during development renders.
func SetLevel(level log.Level) { logger().SetLevel(level) }

func Debug(msg string, kv ...interface{}) { logger().Debug(msg, kv...) }
func Info(msg string, kv ...interface{})  { logger().Info(msg, kv...) }
func Warn(msg string, kv ...interface{})  { logger().Warn(msg, kv...) }
func Error(msg string, kv ...interface{}) { logger().Error(msg, kv...) }
