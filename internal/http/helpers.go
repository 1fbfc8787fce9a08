package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"costconnect/internal/core"
)

type requestIDKey struct{}

// errorBody is the structured error shape all failure responses share.
type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: invalid
// arguments and storage validation are the caller's fault (400), anything
// else is a storage-side 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidArgument),
		errors.Is(err, core.ErrZeroDate),
		errors.Is(err, core.ErrNegativeAmount),
		errors.Is(err, core.ErrDescriptionLong):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Storage error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseMonthYear extracts the required month and year query parameters.
// Both must be present and integers; there are no defaults, a missing one
// is the caller's error.
func parseMonthYear(r *http.Request) (year, month int, err error) {
	monthStr := strings.TrimSpace(r.URL.Query().Get("month"))
	yearStr := strings.TrimSpace(r.URL.Query().Get("year"))
	if monthStr == "" || yearStr == "" {
		return 0, 0, fmt.Errorf("%w: month and year are required", core.ErrInvalidArgument)
	}
	month, err = strconv.Atoi(monthStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month %q is not a number", core.ErrInvalidArgument, monthStr)
	}
	year, err = strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year %q is not a number", core.ErrInvalidArgument, yearStr)
	}
	return year, month, nil
}

func monthKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// clientAddr extracts the client IP, honoring proxy headers.
func clientAddr(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
