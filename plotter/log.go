package plotter

import (
	"io"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

var loggerPtr atomic.Pointer[log.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

func newNopLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	l.SetLevel(log.PanicLevel)
	return l
}

// SetLogger configures the logger of the plotter. By default nothing is
// logged; pass nil to restore that.
//
// Mask runs log their start and end at Info level and every visited
// target at Debug level.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

func Logger() *log.Logger {
	return loggerPtr.Load()
}
