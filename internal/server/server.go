package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/internal/telemetry"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// RequestIDHeader carries the request correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	metrics       *telemetry.Metrics
	tracer        trace.Tracer
}

type calculateOptions struct {
	Schedule bool
}

// NewHandler constructs the HTTP handler that serves the calculation API,
// health and version probes, and Prometheus metrics.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg, _ = LoadConfig("")
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: cfg.UploadSizeBytes(),
		version:       trimmedVersion,
		metrics:       telemetry.NewMetrics(),
		tracer:        telemetry.Tracer("github.com/iwvelando/loan-calculator/internal/server"),
	}

	mux := http.NewServeMux()

	// Calculation from a JSON request body
	mux.HandleFunc("/api/calculate", h.instrument("/api/calculate", h.handleCalculate))

	// Calculation from an uploaded YAML configuration
	mux.HandleFunc("/api/calculate/upload", h.instrument("/api/calculate/upload", h.handleUpload))

	mux.HandleFunc("/api/version", h.instrument("/api/version", h.handleVersion))
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle(cfg.MetricsPath, h.metrics.Handler())

	return mux
}

type calculateResponse struct {
	RequestID  string                 `json:"requestId"`
	Report     calculator.Report      `json:"report"`
	CSV        string                 `json:"csv"`
	YearlyCSV  string                 `json:"yearlyCsv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument assigns a request ID, opens a server span and counts the
// response by route and status.
func (h *handler) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx, span := h.tracer.Start(r.Context(), r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("request.id", id),
			),
		)
		defer span.End()
		ctx = context.WithValue(ctx, requestIDKey{}, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
		h.metrics.ObserveRequest(route, rec.status)
	}
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "invalid config payload: expected object", op)
			return
		}
		configPayload = cfgMap
	}

	options := calculateOptions{Schedule: true}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "invalid options payload: expected object", op)
			return
		}
		if scheduleVal, ok := optsMap["schedule"]; ok {
			options.Schedule = coerceBool(scheduleVal)
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), op)
		return
	}

	h.runCalculation(w, r, configBytes, configMap, start, op, options)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	options := calculateOptions{Schedule: true}
	if raw := r.FormValue("schedule"); raw != "" {
		options.Schedule = coerceBool(raw)
	}

	h.runCalculation(w, r, configBytes, configMap, start, op, options)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) runCalculation(w http.ResponseWriter, r *http.Request, configBytes []byte, configMap map[string]interface{}, start time.Time, op string, opts calculateOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.metrics.ObserveCalculation("", telemetry.StatusInvalid, time.Since(start))
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	_, span := h.tracer.Start(r.Context(), "calculator.Run",
		trace.WithAttributes(
			attribute.String("loan.type", cfg.Loan.Type()),
			attribute.Float64("loan.amount", cfg.Loan.LoanAmount()),
		),
	)
	report, err := calculator.Run(h.logger.With(zap.String("requestId", requestID(r.Context()))), *cfg)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.End()
		status, outcome := http.StatusInternalServerError, telemetry.StatusError
		if errors.Is(err, validation.ErrInvalidInput) {
			status, outcome = http.StatusBadRequest, telemetry.StatusInvalid
		}
		h.metrics.ObserveCalculation(cfg.Loan.Type(), outcome, elapsed)
		h.respondErrorWithOp(w, r, status, fmt.Sprintf("failed to compute report: %v", err), op)
		return
	}
	span.SetAttributes(attribute.Int("schedule.months", report.Schedule.Len()))
	span.End()
	h.metrics.ObserveCalculation(report.LoanType, telemetry.StatusOK, elapsed)

	csv := output.CsvString(report.Schedule)
	if !opts.Schedule {
		report.Schedule.Rows = nil
	}
	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := calculateResponse{
		RequestID:  requestID(r.Context()),
		Report:     report,
		CSV:        csv,
		YearlyCSV:  output.YearlyCsvString(report.Yearly),
		Warnings:   append(warnings, report.Warnings...),
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("report computed",
		zap.String("op", op),
		zap.String("requestId", response.RequestID),
		zap.String("loanType", report.LoanType),
		zap.Int("months", report.Schedule.Len()),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.String("requestId", requestID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	}
	return false
}
