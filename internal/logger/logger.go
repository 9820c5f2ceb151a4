package logger

import (
	"fmt"
	"log"
	"os"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

var (
	defaultLogger = log.New(os.Stderr, "", log.LstdFlags)
	minLevel      = INFO
)

func SetOutput(w *os.File) {
	defaultLogger.SetOutput(w)
}

// SetLevel suppresses messages below the given level.
func SetLevel(level LogLevel) {
	minLevel = level
}

func emit(level LogLevel, format string, args ...interface{}) {
	if level < minLevel {
		return
	}

	msg := fmt.Sprintf(format, args...)
	defaultLogger.Printf("[%s] [STEWARD] %s", levelNames[level], msg)
}

func Debug(format string, args ...interface{}) {
	emit(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	emit(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	emit(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	emit(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	defaultLogger.Fatalf("[FATAL] [STEWARD] %s", msg)
}
