// File: handler.go
// Title: HTTP API Handler
// Description: JSON endpoints for parsing, tokenizing and listing locales.
//              The locale of a request comes from the request itself, then
//              from Accept-Language, then from the configured default.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	dterror "github.com/msto63/dtparse/core/error"
	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/datetime"
)

// ParseRequest is the body of POST /api/v1/parse
type ParseRequest struct {
	Text       string `json:"text"`
	Locale     string `json:"locale,omitempty"`
	FieldOrder string `json:"field_order,omitempty"`
}

// ParseResponse is the outcome of one parse
type ParseResponse struct {
	OK        bool             `json:"ok"`
	Locale    string           `json:"locale,omitempty"`
	Result    *datetime.Result `json:"result,omitempty"`
	Canonical string           `json:"canonical,omitempty"`
	Local     string           `json:"local,omitempty"`
	Error     *ErrorBody       `json:"error,omitempty"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TokenizeResponse is the body returned by GET /api/v1/tokenize
type TokenizeResponse struct {
	Text   string           `json:"text"`
	Locale string           `json:"locale"`
	Tokens []datetime.Token `json:"tokens"`
}

// LocaleInfo describes one registered locale
type LocaleInfo struct {
	Tag        string   `json:"tag"`
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases,omitempty"`
	FieldOrder string   `json:"field_order,omitempty"`
}

// LocalesResponse is the body returned by GET /api/v1/locales
type LocalesResponse struct {
	Default string       `json:"default"`
	Locales []LocaleInfo `json:"locales"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Locales int    `json:"locales"`
}

// Handler serves the HTTP API
type Handler struct {
	parsers *Parsers
	version string
	maxBody int64
	started time.Time
	logger  *dtlog.Logger
}

// NewHandler creates a new handler
func NewHandler(parsers *Parsers, version string, maxBody int64, logger *dtlog.Logger) *Handler {
	if logger == nil {
		logger = dtlog.GetDefault()
	}
	return &Handler{
		parsers: parsers,
		version: version,
		maxBody: maxBody,
		started: time.Now(),
		logger:  logger.WithName("handler"),
	}
}

// ServeHTTP handles HTTP requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language, X-Request-ID")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	path = strings.Trim(path, "/")

	switch path {
	case "health":
		h.handleHealth(w, r)
	case "parse":
		h.handleParse(w, r)
	case "tokenize":
		h.handleTokenize(w, r)
	case "locales":
		h.handleLocales(w, r)
	default:
		h.writeError(w, http.StatusNotFound, dterror.CodeNotFound, "no such endpoint: "+r.URL.Path)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Locales: len(h.parsers.Registry().Tags()),
	})
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) {
		return
	}

	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, dterror.CodeInvalidInput, "invalid request body: "+err.Error())
		return
	}

	resp, status := h.Parse(req, r.Header.Get("Accept-Language"))
	if !resp.OK {
		loggerFrom(r, h.logger).Debug("parse rejected", dtlog.Fields{
			"code":   resp.Error.Code,
			"locale": resp.Locale,
		})
	}
	h.writeJSON(w, status, resp)
}

// Parse runs one parse request and returns the response with its HTTP
// status. Rejected inputs are reported in the response, never as a Go error.
func (h *Handler) Parse(req ParseRequest, acceptLanguage string) (ParseResponse, int) {
	var order []datetime.Field
	if req.FieldOrder != "" {
		var err error
		if order, err = datetime.ParseFieldOrder(req.FieldOrder); err != nil {
			return failure("", err)
		}
	}

	tag := h.resolveLocale(req.Locale, acceptLanguage)
	parser, err := h.parsers.Get(tag, order)
	if err != nil {
		return failure(tag, err)
	}

	result, err := parser.ParseDetailed(req.Text)
	if err != nil {
		return failure(parser.Locale(), err)
	}
	return ParseResponse{
		OK:        true,
		Locale:    parser.Locale(),
		Result:    &result,
		Canonical: result.String(),
		Local:     result.Local(),
	}, http.StatusOK
}

func (h *Handler) handleTokenize(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	tag := h.resolveLocale(q.Get("locale"), r.Header.Get("Accept-Language"))
	parser, err := h.parsers.Get(tag, nil)
	if err != nil {
		resp, status := failure(tag, err)
		h.writeJSON(w, status, resp)
		return
	}

	text := q.Get("text")
	tokens := parser.Tokenize(text)
	if tokens == nil {
		tokens = []datetime.Token{}
	}
	h.writeJSON(w, http.StatusOK, TokenizeResponse{
		Text:   text,
		Locale: parser.Locale(),
		Tokens: tokens,
	})
}

func (h *Handler) handleLocales(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}

	resp := LocalesResponse{Default: h.parsers.DefaultLocale()}
	for _, l := range h.parsers.Registry().Locales() {
		resp.Locales = append(resp.Locales, LocaleInfo{
			Tag:        l.Tag,
			Name:       l.Name,
			Aliases:    l.Aliases,
			FieldOrder: l.FieldOrder,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// resolveLocale picks the explicit tag, else the best Accept-Language
// match, else "" for the configured default
func (h *Handler) resolveLocale(explicit, acceptLanguage string) string {
	if explicit != "" {
		return explicit
	}
	if acceptLanguage != "" {
		return h.parsers.Registry().Match(acceptLanguage)
	}
	return ""
}

func (h *Handler) allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	h.writeError(w, http.StatusMethodNotAllowed, dterror.CodeInvalidInput, "method not allowed")
	return false
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WarnWithErr("Failed to encode response", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code dterror.Code, message string) {
	h.writeJSON(w, status, ParseResponse{
		Error: &ErrorBody{Code: code.String(), Message: message},
	})
}

// failure converts an error into a response and its HTTP status
func failure(tag string, err error) (ParseResponse, int) {
	body := errorBody(err)
	return ParseResponse{Locale: tag, Error: body}, dterror.Code(body.Code).HTTPStatus()
}

func errorBody(err error) *ErrorBody {
	var e *dterror.Error
	if errors.As(err, &e) {
		return &ErrorBody{Code: e.Code().String(), Message: e.Error()}
	}
	return &ErrorBody{Code: dterror.CodeInternal.String(), Message: err.Error()}
}
