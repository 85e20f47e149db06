package contact

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Meta describes where a submission came from.
type Meta struct {
	ID         string // reference for finding the submission in the logs
	IP         string
	UserAgent  string
	ReceivedAt time.Time
}

//go:generate mockgen -source=$GOFILE -destination=sink_mocks_test.go -package=contact_test
type Sink interface {
	Record(ctx context.Context, submission Submission, meta Meta) error
}

// LogSink records submissions as structured log entries. Nothing is persisted or mailed.
type LogSink struct {
	logger logrus.FieldLogger
}

func NewLogSink(logger logrus.FieldLogger) *LogSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogSink{
		logger: logger,
	}
}

func (s *LogSink) Record(ctx context.Context, submission Submission, meta Meta) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"name":        submission.Name,
		"email":       submission.Email,
		"subject":     submission.Subject,
		"message":     submission.Message,
		"ip":          meta.IP,
		"user_agent":  meta.UserAgent,
		"received_at": meta.ReceivedAt.Format(time.RFC3339),
		"submission":  meta.ID,
	}).Info("contact form submission")

	return nil
}
