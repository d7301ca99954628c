package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	pkgerrors "github.com/personal/coffee-catalog-backend/pkg/errors"
	"github.com/personal/coffee-catalog-backend/pkg/logger"
)

const timestampLayout = "2006-01-02T15:04:05"

// Envelope is the success body: the payload plus a human-readable message.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// ErrorBody is the structured error response shared by every endpoint.
// FieldErrors is only present for validation failures.
type ErrorBody struct {
	Timestamp   string            `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	Path        string            `json:"path"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

func WriteSuccess(w http.ResponseWriter, data any, message string) {
	WriteSuccessStatus(w, http.StatusOK, data, message)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Envelope{Data: data, Message: message})
}

// WriteData writes the payload without the envelope (auth endpoints).
func WriteData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

// WriteError translates any error into the structured error body. Untyped
// errors become an opaque 500; causes are logged, never surfaced.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeInternal, pkgerrors.CodeDependency:
		// never leak infrastructure detail
	default:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	path := ""
	if r != nil {
		path = r.URL.Path
	}
	body := ErrorBody{
		Timestamp: time.Now().UTC().Format(timestampLayout),
		Status:    meta.HTTPStatus,
		Error:     http.StatusText(meta.HTTPStatus),
		Message:   msg,
		Path:      path,
	}
	if meta.DetailsAllowed {
		body.FieldErrors = typed.FieldErrors()
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code": string(typed.Code()),
			"status":     meta.HTTPStatus,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
