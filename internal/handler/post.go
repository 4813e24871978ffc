package handler

import (
	"log/slog"
	"net/http"

	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/service"
)

// PostHandler exposes the post workflows under /posts.
type PostHandler struct {
	posts  *service.PostService
	logger *slog.Logger
}

func NewPostHandler(posts *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

// HTTP: POST /posts
// REQUEST BODY: {"title": "...", "text": "...", "image": "https://..."}
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.PostInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// HTTP: GET /posts
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// HTTP: GET /posts/{id}
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HTTP: PUT /posts/{id}
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in model.PostInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HTTP: DELETE /posts/{id}
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.posts.Remove(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
