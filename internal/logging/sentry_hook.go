package logging

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

var _ logrus.Hook = (*SentryHook)(nil)

// SentryHook forwards log entries of the given levels to Sentry.
type SentryHook struct {
	levels  []logrus.Level
	capture func(entry *logrus.Entry)
}

func NewSentryHook(levels []logrus.Level) *SentryHook {
	return &SentryHook{
		levels:  levels,
		capture: captureEntry,
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	h.capture(entry)
	return nil
}

func captureEntry(entry *logrus.Entry) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(entry.Level))

		extras := make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			extras[k] = v
		}
		scope.SetExtras(extras)

		var err error
		if e, ok := entry.Data[logrus.ErrorKey].(error); ok {
			err = e
		}
		if err != nil {
			sentry.CaptureException(errors.Join(errors.New(entry.Message), err))
			return
		}
		sentry.CaptureMessage(entry.Message)
	})
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
