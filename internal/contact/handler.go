package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/2beens/portfolio/internal/telemetry/metrics"
	"github.com/2beens/portfolio/internal/telemetry/tracing"
	"github.com/2beens/portfolio/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	MessageReceived       = "Message received successfully"
	MessageFieldsRequired = "All fields are required"
	MessageInvalidEmail   = "Invalid email address"
	MessageInternalError  = "Internal server error"

	DefaultMaxBodyBytes = 64 * 1024
)

type Handler struct {
	sink           Sink
	maxBodyBytes   int64
	metricsManager *metrics.Manager
}

func NewHandler(sink Sink, maxBodyBytes int64, metricsManager *metrics.Manager) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		sink:           sink,
		maxBodyBytes:   maxBodyBytes,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/contact", handler.HandleSubmit).Methods("POST", "OPTIONS").Name("contact")
}

func (handler *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "contactHandler.submit")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			span.SetStatus(codes.Error, fmt.Sprintf("panic: %v", rec))
			log.Errorf("contact submission panic: %v", rec)
			handler.fail(w)
		}
	}()

	submission, err := handler.decodeSubmission(w, r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("contact submission, decode body: %s", err)
		handler.fail(w)
		return
	}

	if err := submission.Validate(); err != nil {
		span.SetAttributes(attribute.String("contact.rejected", err.Error()))
		handler.metricsManager.CounterContactSubmissions.WithLabelValues(metrics.ContactResultRejected).Inc()
		switch {
		case errors.Is(err, ErrInvalidEmail):
			pkg.WriteJSONStatus(w, http.StatusBadRequest, false, MessageInvalidEmail)
		default:
			pkg.WriteJSONStatus(w, http.StatusBadRequest, false, MessageFieldsRequired)
		}
		return
	}

	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Debugf("contact submission, read user ip: %s", err)
		ip = "unknown"
	}
	span.SetAttributes(attribute.String("user.ip", ip))

	meta := Meta{
		ID:         uuid.New().String(),
		IP:         ip,
		UserAgent:  r.UserAgent(),
		ReceivedAt: time.Now().UTC(),
	}
	if err := handler.sink.Record(ctx, submission, meta); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("contact submission, record: %s", err)
		handler.fail(w)
		return
	}

	handler.metricsManager.CounterContactSubmissions.WithLabelValues(metrics.ContactResultAccepted).Inc()
	span.SetStatus(codes.Ok, "submission accepted")
	pkg.WriteJSONStatus(w, http.StatusOK, true, MessageReceived)
}

// decodeSubmission reads a JSON or form body. Other content types are not
// read at all and yield an empty submission, which fails the presence check.
// Missing keys decode to empty strings.
func (handler *Handler) decodeSubmission(w http.ResponseWriter, r *http.Request) (Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, handler.maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return Submission{}, fmt.Errorf("parse form: %w", err)
		}
		return Submission{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Subject: r.PostForm.Get("subject"),
			Message: r.PostForm.Get("message"),
		}, nil
	case "application/json":
		var submission Submission
		decoder := json.NewDecoder(r.Body)
		if err := decoder.Decode(&submission); err != nil {
			return Submission{}, fmt.Errorf("unmarshal json: %w", err)
		}
		// exactly one JSON value per body
		if err := decoder.Decode(&struct{}{}); err == nil {
			return Submission{}, errors.New("unmarshal json: more than one value in body")
		} else if !errors.Is(err, io.EOF) {
			return Submission{}, fmt.Errorf("unmarshal json: trailing data: %w", err)
		}
		return submission, nil
	default:
		log.Debugf("contact submission, unsupported content type [%s], body ignored", r.Header.Get("Content-Type"))
		return Submission{}, nil
	}
}

func (handler *Handler) fail(w http.ResponseWriter) {
	handler.metricsManager.CounterContactSubmissions.WithLabelValues(metrics.ContactResultFailed).Inc()
	pkg.WriteJSONStatus(w, http.StatusInternalServerError, false, MessageInternalError)
}
