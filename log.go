package rchan

import "github.com/sirupsen/logrus"

// packageLogger is used only for the two things this package ever
// logs on its own: a double-close and an internal invariant
// violation, both of which panic immediately afterward. Everything
// else is silent — a channel library has no business writing to a
// caller's log stream on the hot path. Replace it with SetLogger to
// route those two events into an application's own logger.
var packageLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}()

// SetLogger replaces the logger used for double-close and invariant-
// violation diagnostics. Pass a *logrus.Logger configured the way
// pkg/config.Config.NewLogger builds one, to keep formatting
// consistent with the rest of an application built on this package.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		packageLogger = l
	}
}

func logDoubleClose(chanID uint64) {
	packageLogger.WithField("chan_id", chanID).Error("rchan: Close called on an already-closed channel")
}
