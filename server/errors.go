package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ashenafi-pixel/lotto-sphere/draw"
	"github.com/Ashenafi-pixel/lotto-sphere/reference"
	"github.com/Ashenafi-pixel/lotto-sphere/session"

	log "github.com/sirupsen/logrus"
)

// ErrorCode names a lotto failure in API responses.
type ErrorCode string

const (
	CodeInvalidSessionID    ErrorCode = "INVALID_SESSION_ID"
	CodeSessionNotFound     ErrorCode = "SESSION_NOT_FOUND"
	CodeReferenceLoading    ErrorCode = "REFERENCE_LOADING"
	CodeReferenceSuperseded ErrorCode = "REFERENCE_SUPERSEDED"
	CodeInvalidDraw         ErrorCode = "INVALID_DRAW"
	CodeInternal            ErrorCode = "INTERNAL"
)

// APIError is the error response body.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Session string    `json:"session,omitempty"`
}

// lottoErrors maps domain sentinels to their HTTP status and code. Anything
// else is an internal error.
var lottoErrors = []struct {
	err     error
	status  int
	code    ErrorCode
	message string
}{
	{session.ErrNotFound, http.StatusNotFound, CodeSessionNotFound, "session not found"},
	{session.ErrReshuffleInFlight, http.StatusConflict, CodeReferenceLoading, "reference draw is loading"},
	{reference.ErrSuperseded, http.StatusConflict, CodeReferenceSuperseded, "superseded by a newer shuffle"},
	{draw.ErrInvalidDraw, http.StatusUnprocessableEntity, CodeInvalidDraw, "invalid draw"},
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, msg string) {
	writeJSON(w, status, APIError{Code: code, Message: msg})
}

// writeSessionError reports err for the session sid. Unrecognised errors are
// logged with op and answered with a 500.
func writeSessionError(w http.ResponseWriter, sid, op string, err error) {
	for _, e := range lottoErrors {
		if errors.Is(err, e.err) {
			writeJSON(w, e.status, APIError{Code: e.code, Message: e.message, Session: sid})
			return
		}
	}
	log.WithError(err).WithField("session", sid).Errorf("%s failed", op)
	writeJSON(w, http.StatusInternalServerError, APIError{Code: CodeInternal, Message: op + " failed", Session: sid})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
