package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondWithRawJSON отправляет JSON без экранирования HTML символов,
// чтобы текст абзацев и имена возвращались как есть
func RespondWithRawJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write(buf.Bytes())
	return err
}
