package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via core.MapError to get a coded message
//  4. Technical error is logged with the request ID for correlation
//  5. The coded message is written as JSON or plain text

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/JonMunkholm/shopfixtures/internal/logging"
	"github.com/JonMunkholm/shopfixtures/internal/report"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// respondError logs the technical error and writes the mapped message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		writeJSONStatus(w, statusCode, ErrorResponse{
			Error:  userMsg.Message,
			Action: userMsg.Action,
			Code:   userMsg.Code,
		})
		return
	}
	http.Error(w, userMsg.Message+" ("+userMsg.Code+")", statusCode)
}

// statusFor picks the HTTP status for a reporter or store error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, report.ErrStoreNotFound):
		return http.StatusServiceUnavailable
	case errors.Is(err, report.ErrQueryNotFound), errors.Is(err, report.ErrQueryEmpty):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
