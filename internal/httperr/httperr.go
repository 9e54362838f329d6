package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as JSON. Business outcomes are routine and only logged at
// debug; everything else is an infrastructure failure.
func Respond(c *gin.Context, logger *zap.Logger, err error) {
	if be, ok := AsBusiness(err); ok {
		message := be.Message
		if message == "" {
			message = be.Code
		}
		logger.Debug("request rejected",
			zap.String("path", c.FullPath()),
			zap.String("error_code", be.Code),
		)
		Write(c, StatusFor(be.Kind), be.Code, message)
		return
	}

	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Internal(c, CodeInternal, "Something went wrong, please try again later.")
}
