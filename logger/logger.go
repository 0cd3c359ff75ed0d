// logger.go - Application logger mirroring errors to rollbar when configured

package logger

import (
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
	rollbarerrors "github.com/rollbar/rollbar-go/errors"
)

// Logger writes to a std *log.Logger and, when enabled, reports to rollbar.
// Args are printed one per line after the message; errors and
// map[string]interface{} values are forwarded to rollbar as-is.
type Logger struct {
	std     *log.Logger
	rollbar bool
}

// New returns a Logger writing to std. An empty token leaves rollbar disabled.
func New(std *log.Logger, token, env string) *Logger {
	if std == nil {
		std = log.New(os.Stderr, "", log.LstdFlags)
	}
	l := &Logger{std: std}
	if token != "" {
		rollbar.SetToken(token)
		rollbar.SetEnvironment(env)
		rollbar.SetStackTracer(rollbarerrors.StackTracer)
		rollbar.SetEnabled(true)
		l.rollbar = true
	}
	return l
}

func (l *Logger) print(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *Logger) report(level, msg string, args []interface{}) {
	if !l.rollbar {
		return
	}
	items := append([]interface{}{msg}, args...)
	switch level {
	case rollbar.ERR:
		rollbar.Error(items...)
	case rollbar.WARN:
		rollbar.Warning(items...)
	default:
		rollbar.Info(items...)
	}
}

// Printf writes a formatted line to the std logger only.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.std.Printf(format, v...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.print(msg, args)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.WARN, msg, args)
	l.print(msg, args)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.report(rollbar.ERR, msg, args)
	l.print(msg, args)
}

// Close flushes pending rollbar items.
func (l *Logger) Close() {
	if l.rollbar {
		rollbar.Close()
	}
}
