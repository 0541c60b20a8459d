// Package server exposes the dossier pipeline over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/iefp-dossier/internal/config"
	"github.com/iwvelando/iefp-dossier/internal/dossier"
	"github.com/iwvelando/iefp-dossier/internal/textgen"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Content types of the rendered artifacts.
const (
	ContentTypeWorkbook = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeReport   = "text/html; charset=utf-8"
)

type handler struct {
	logger        *zap.Logger
	settings      *Config
	maxUploadSize int64
	version       string
	generator     *textgen.Generator
}

// NewHandler constructs the HTTP handler serving the dossier API. A nil
// settings means DefaultConfig. gen may be nil, in which case every
// generation request yields a placeholder.
func NewHandler(logger *zap.Logger, settings *Config, version string, gen *textgen.Generator) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings == nil {
		settings = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		settings:      settings,
		maxUploadSize: settings.UploadSizeBytes(),
		version:       trimmedVersion,
		generator:     gen,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/dossier", h.handleDossier)

		r.Route("/editor", func(r chi.Router) {
			r.Post("/dossier", h.handleDossierEditor)
			r.Post("/export", h.handleConfigExport)
		})

		r.Route("/export", func(r chi.Router) {
			r.Post("/workbook", h.handleWorkbook)
			r.Post("/report", h.handleReport)
		})

		r.Post("/generate", h.handleGenerate)
		r.Get("/generate/status", h.handleGenerateStatus)

		r.Get("/version", h.handleVersion)
	})

	return r
}

type dossierResponse struct {
	*dossier.Dossier
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type generateRequest struct {
	Label       string                 `json:"label"`
	Instruction string                 `json:"instruction"`
	Context     map[string]interface{} `json:"context"`
	Limit       int                    `json:"limit"`
}

type generateResponse struct {
	Text        string `json:"text"`
	Available   bool   `json:"available"`
	Placeholder bool   `json:"placeholder"`
}

func (h *handler) handleDossier(w http.ResponseWriter, r *http.Request) {
	configBytes, ok := h.readUpload(w, r, "server.handleDossier")
	if !ok {
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleDossier")
		return
	}

	h.runDossier(w, r, configBytes, configMap, "server.handleDossier")
}

func (h *handler) handleDossierEditor(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleDossierEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleDossierEditor")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleDossierEditor")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), "server.handleDossierEditor")
		return
	}

	h.runDossier(w, r, configBytes, configMap, "server.handleDossierEditor")
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	h.exportArtifact(w, r, "server.handleWorkbook", ContentTypeWorkbook, ".xlsx", (*dossier.Dossier).Workbook)
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	h.exportArtifact(w, r, "server.handleReport", ContentTypeReport, ".html", (*dossier.Dossier).Report)
}

func (h *handler) exportArtifact(w http.ResponseWriter, r *http.Request, op, contentType, extension string, render func(*dossier.Dossier) ([]byte, error)) {
	configBytes, ok := h.readUpload(w, r, op)
	if !ok {
		return
	}

	d, ok := h.buildDossier(w, r, configBytes, op)
	if !ok {
		return
	}

	data, err := render(d)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.logger.Info("artifact rendered",
		zap.String("op", op),
		zap.String("runId", d.RunID),
		zap.Int("bytes", len(data)),
	)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.DefaultArtifactPrefix+extension))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write artifact",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode generation request: %v", err), "server.handleGenerate")
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "label is required", "server.handleGenerate")
		return
	}

	text := h.generator.Generate(r.Context(), req.Label, req.Instruction, req.Context)
	text = textgen.Truncate(text, req.Limit)

	h.writeJSON(w, http.StatusOK, generateResponse{
		Text:        text,
		Available:   h.generator.Available(),
		Placeholder: textgen.IsPlaceholder(text),
	})
}

func (h *handler) handleGenerateStatus(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{
		"available": h.generator.Available(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// readUpload reads the multipart "file" field. It answers the request itself
// and returns false on failure.
func (h *handler) readUpload(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing dossier file", op)
		return nil, false
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
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read dossier: %v", err), op)
		return nil, false
	}
	return buf.Bytes(), true
}

func (h *handler) buildDossier(w http.ResponseWriter, r *http.Request, configBytes []byte, op string) (*dossier.Dossier, bool) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	cfg.Generator = h.settings.GeneratorFor(cfg.Generator)

	logger := h.logger.With(zap.String("requestId", middleware.GetReqID(r.Context())))
	d, err := dossier.Build(r.Context(), logger, cfg, h.generator)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return nil, false
	}
	return d, true
}

func (h *handler) runDossier(w http.ResponseWriter, r *http.Request, configBytes []byte, configMap map[string]interface{}, op string) {
	d, ok := h.buildDossier(w, r, configBytes, op)
	if !ok {
		return
	}

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	h.writeJSON(w, http.StatusOK, dossierResponse{
		Dossier:    d,
		Config:     configMap,
		ConfigYAML: string(configBytes),
	})
}

// configKeyOrder is the key order of exported dossier files.
var configKeyOrder = []string{
	"logging", "output", "identification", "years", "assumptions", "loan", "initialEquity",
	"sales", "staff", "investments", "sections", "generator", "strict",
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range configKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
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

func (h *handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Info("http request",
			zap.String("op", "server.loggingMiddleware"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestId", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("dossier request failed",
		zap.String("op", op),
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
