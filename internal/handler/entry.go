package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/aidar/blitz-entry/internal/domain"
	"github.com/aidar/blitz-entry/internal/service"
)

// EntryHandler обрабатывает эндпоинт заявки на соревнование
type EntryHandler struct {
	entryService *service.EntryService
	logger       *zap.Logger
}

// NewEntryHandler создает новый EntryHandler
func NewEntryHandler(entryService *service.EntryService, logger *zap.Logger) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		logger:       logger,
	}
}

// Answer обрабатывает POST /CoveoBlitz
func (h *EntryHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		message := "invalid request body"
		if errors.Is(err, io.EOF) {
			message = "request body is empty"
		}
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), message)
		return
	}

	// Без q абзацы не разбираются
	if req.Q == nil {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), domain.ErrMissingQuery.Error())
		return
	}

	entry, err := h.entryService.Answer(r.Context(), &req)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := RespondWithRawJSON(w, http.StatusOK, entry); err != nil {
		h.logger.Error("Failed to write entry response", zap.Error(err))
	}
}

// Health обрабатывает GET /health
func (h *EntryHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
