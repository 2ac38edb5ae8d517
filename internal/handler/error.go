package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/blitz-entry/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch code := domain.MapErrorToCode(err); {
	case code == domain.CodeBadRequest:
		RespondWithError(w, r, http.StatusBadRequest, string(code), err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		RespondWithError(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", "request cancelled")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
	}
}
