package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fornello/payment-service/internal/application"
)

type ErrorDetails struct {
	Code      string `json:"code"`
	RequestID string `json:"requestId"`
}

type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Details ErrorDetails `json:"details"`
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondWithError writes the sanitized error envelope. The raw error is
// logged with the generated request id so support can correlate.
func respondWithError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := application.ToHTTPStatus(err)
	code := application.ToErrorCode(err)
	requestID := uuid.NewString()

	logger.Error("payment request failed",
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"code", code,
		"category", application.CategorizeError(err),
		"error", err,
	)

	respondWithJSON(w, status, ErrorResponse{
		Success: false,
		Error:   application.UserFacingMessage(err),
		Details: ErrorDetails{
			Code:      code,
			RequestID: requestID,
		},
	})
}
