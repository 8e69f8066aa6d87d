package conduit

import (
	"io"

	"github.com/sirupsen/logrus"
)

// log is the package-wide logger. Select lock-order tracing and waiter
// registration are only emitted at debug level, so production use pays
// no formatting cost at the default info level.
var log = logrus.New()

func init() {
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the verbosity of Conduit's internal logger. Set it to
// logrus.DebugLevel to trace select waiter registration/deregistration and
// WorkerPool/Race lifecycle events.
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// SetLogOutput redirects Conduit's internal logger, e.g. to silence it in
// tests with io.Discard.
func SetLogOutput(w io.Writer) {
	log.SetOutput(w)
}
