package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP statuses. Unknown errors are
// attached to the context for the request logger and never shown to the client.
func respondError(c *gin.Context, err error) {
	status, sentinel := classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, errorResponse{Error: "internal server error"})
		return
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: publicMessage(err, sentinel)})
}

func classify(err error) (int, error) {
	for _, m := range []struct {
		sentinel error
		status   int
	}{
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrInsufficientSeats, http.StatusBadRequest},
		{domain.ErrConflict, http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
	} {
		if errors.Is(err, m.sentinel) {
			return m.status, m.sentinel
		}
	}
	return http.StatusInternalServerError, nil
}

// publicMessage drops the sentinel prefix: "not found: flight not found"
// becomes "Flight not found".
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		msg = rest
	}
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
