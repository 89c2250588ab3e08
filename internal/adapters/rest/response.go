// internal/adapters/rest/response.go
package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type APIResponse struct {
	Data  interface{}    `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *AppError      `json:"error,omitempty"`
}

func Success(data interface{}, meta map[string]any) APIResponse {
	return APIResponse{Data: data, Meta: meta}
}

func Failure(status int, msg string) APIResponse {
	return APIResponse{Error: &AppError{Code: status, Message: msg}}
}

// StatusFor maps store errors onto HTTP statuses.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes err with the status StatusFor picks. Internal errors are
// logged and their detail withheld from the client.
func HandleError(c *gin.Context, log logger.Logger, err error, msg string) {
	status := StatusFor(err)
	requestID := c.GetString(requestIDKey)
	resp := Failure(status, msg+": "+err.Error())
	if status == http.StatusInternalServerError {
		log.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
		resp = Failure(status, msg)
	} else {
		log.Debugf("[request_id=%s] %s: %v", requestID, msg, err)
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Error.Field = verr.Field
	}
	c.JSON(status, resp)
}

func HandleSuccess(c *gin.Context, status int, data interface{}, meta map[string]any) {
	c.JSON(status, Success(data, meta))
}
