package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/portfolio/internal"
	"github.com/2beens/portfolio/internal/config"
	"github.com/2beens/portfolio/internal/contact"
	"github.com/2beens/portfolio/internal/logging"
	"github.com/2beens/portfolio/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	contentDir := flag.String("content-dir", "", "serve content TOML files from this dir instead of the embedded ones")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	contactLogger := logging.Setup(logging.LoggerSetupParams{
		LogFileName:        cfg.LogsPath,
		LogToStdout:        cfg.LogToStdout,
		LogLevel:           cfg.LogLevel,
		LogFormatJSON:      false,
		Environment:        cfg.Environment,
		SentryEnabled:      cfg.SentryEnabled,
		SentryDSN:          sentryDSN,
		SentryServerName:   "portfolio-service",
		ContactLogFileName: cfg.ContactLogPath,
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("allowed origins: %v", cfg.AllowedOrigins)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		versionInfo = "unknown"
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	var contentFS fs.FS
	if *contentDir != "" {
		exists, err := pkg.PathExists(*contentDir, true)
		if err != nil {
			log.Fatalf("check content dir: %s", err)
		}
		if !exists {
			log.Fatalf("content dir not found: %s", *contentDir)
		}
		log.Printf("serving content from dir: %s", *contentDir)
		contentFS = os.DirFS(*contentDir)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			HoneycombTracingEnabled: honeycombEnabled,
			ContentFS:               contentFS,
			ContactSink:             contact.NewLogSink(contactLogger),
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	// go to sleep 🥱
	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
