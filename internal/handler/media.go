package handler

import (
	"log/slog"
	"net/http"

	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/service"
)

// MediaHandler exposes the media workflows under /medias.
type MediaHandler struct {
	medias *service.MediaService
	logger *slog.Logger
}

func NewMediaHandler(medias *service.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{medias: medias, logger: logger}
}

// HandleCreate registers a media.
//
// HTTP: POST /medias
// REQUEST BODY: {"title": "Instagram", "username": "@postify"}
func (h *MediaHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.MediaInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	media, err := h.medias.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, media)
}

// HandleList returns every media.
//
// HTTP: GET /medias
func (h *MediaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	medias, err := h.medias.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, medias)
}

// HandleGet returns one media wrapped in a single-element array.
//
// HTTP: GET /medias/{id}
func (h *MediaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	media, err := h.medias.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, media)
}

// HandleUpdate replaces a media.
//
// HTTP: PUT /medias/{id}
func (h *MediaHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in model.MediaInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	media, err := h.medias.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, media)
}

// HandleDelete removes a media that no publication references.
//
// HTTP: DELETE /medias/{id}
func (h *MediaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.medias.Remove(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
