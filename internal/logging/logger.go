package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/portfolio/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
	// ContactLogFileName, when set, gets contact submissions as JSON lines,
	// apart from the service log and regardless of its level.
	ContactLogFileName string
}

// Setup configures the standard logger and returns the logger that contact
// submissions are written to. Without a contact log file that is the standard logger.
func Setup(params LoggerSetupParams) *logrus.Logger {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	switch {
	case params.LogFileName == "":
		logrus.SetOutput(os.Stdout)
		logrus.Println("writing logs only to STDOUT")
	case params.LogToStdout:
		logrus.Println("writing logs to file and STDOUT")
		logrus.SetOutput(pkg.NewCombinedWriter(os.Stdout, rotatingFile(params.LogFileName)))
	default:
		logrus.SetOutput(rotatingFile(params.LogFileName))
	}

	if params.ContactLogFileName == "" {
		return logrus.StandardLogger()
	}
	logrus.Infof("writing contact submissions to [%s]", params.ContactLogFileName)
	return NewContactLogger(rotatingFile(params.ContactLogFileName))
}

// NewContactLogger writes every entry at info level and above as JSON.
// Nothing is hooked to it, so submissions never reach sentry.
func NewContactLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "event",
		},
	})
	return logger
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("Sentry set up successfully")
}

// rotatingFile never deletes rotated files.
func rotatingFile(fileName string) *lumberjack.Logger {
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	return &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // false -> use UTC
		Compress:  true,
	}
}

// GetLevel falls back to trace for empty or unknown levels.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}
