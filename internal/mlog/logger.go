// Package mlog holds the process-wide logger used by the qtest
// command.
package mlog

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

var l = initLogger(os.Stderr)

func initLogger(out io.Writer) zerolog.Logger {
	if ok, _ := strconv.ParseBool(os.Getenv("TEXTQ_JSONLOGGER")); !ok {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// L returns the global logger.
func L() *zerolog.Logger {
	return &l
}

// SetLvl changes the minimum level of the global logger.
func SetLvl(lvl zerolog.Level) {
	l = l.Level(lvl)
}

// SetOutput redirects the global logger to w, keeping its level.
func SetOutput(w io.Writer) {
	lvl := l.GetLevel()
	l = initLogger(w).Level(lvl)
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	nop := zerolog.Nop()
	return &nop
}
