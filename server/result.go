package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spektr-org/sleepscope/engine"
)

// Result is the JSON envelope of every API response.
//   - code: ResultSuccess or ResultError
//   - type: "success" | "error"
//   - message: "ok" or a human-readable error
//   - result: the payload, null on error
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the envelope. Internal errors are logged and
// reported without detail.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("❌ request failed",
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, Fail(message))
}
