package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/validate"
)

const maxBodyBytes = 1 << 20

type jsonResponse map[string]interface{}

// errBadRequest marks a request the handlers could not decode
var errBadRequest = errors.New("bad request")

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		var tooLarge *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d): %w", syntaxError.Offset, errBadRequest)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return fmt.Errorf("body contains badly-formed JSON: %w", errBadRequest)
		case errors.As(err, &typeError):
			return fmt.Errorf("body contains incorrect JSON type for field %q: %w", typeError.Field, errBadRequest)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("body must not be empty: %w", errBadRequest)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s: %w", strings.TrimPrefix(err.Error(), "json: unknown field "), errBadRequest)
		case errors.As(err, &tooLarge):
			return fmt.Errorf("body must not be larger than %d bytes: %w", maxBodyBytes, errBadRequest)
		default:
			return fmt.Errorf("%v: %w", err, errBadRequest)
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("body must only contain a single JSON value: %w", errBadRequest)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	js, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(js, '\n'))
}

// statusFor maps the error classes of the core to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrNoSelection):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNoDatabase):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := jsonResponse{"error": err.Error()}

	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
		body["reason"] = verr.Reason
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "uri", r.RequestURI, "error", err)
		body["error"] = "the server encountered a problem and could not process your request"
	}
	writeJSON(w, status, body)
}

// idParam parses the {id} URL parameter
func idParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id %q: %w", raw, errBadRequest)
	}
	return id, nil
}
