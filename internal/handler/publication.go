package handler

import (
	"log/slog"
	"net/http"

	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/service"
)

// PublicationHandler exposes the publication workflows under /publications.
type PublicationHandler struct {
	publications *service.PublicationService
	logger       *slog.Logger
}

func NewPublicationHandler(publications *service.PublicationService, logger *slog.Logger) *PublicationHandler {
	return &PublicationHandler{publications: publications, logger: logger}
}

// HandleCreate schedules a post on a media.
//
// HTTP: POST /publications
// REQUEST BODY: {"mediaId": 1, "postId": 1, "date": "2023-08-21T13:25:17.352Z"}
func (h *PublicationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.PublicationInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	pub, err := h.publications.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pub)
}

// HandleList returns publications ordered by date.
//
// HTTP: GET /publications?published=true&after=2023-05-03
//
// published=true keeps dates before now, published=false keeps the rest.
// after keeps dates strictly later than the given day and, unless
// published=false, before now.
func (h *PublicationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	published, err := queryBool(r, "published")
	if err != nil {
		writeError(w, err)
		return
	}
	after, err := queryDay(r, "after")
	if err != nil {
		h.logger.Debug("rejected publication filter", slog.String("after", r.URL.Query().Get("after")))
		writeError(w, err)
		return
	}

	pubs, err := h.publications.FindAll(r.Context(), service.PublicationQuery{
		Published: published,
		After:     after,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pubs)
}

// HTTP: GET /publications/{id}
func (h *PublicationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	pub, err := h.publications.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pub)
}

// HandleUpdate reschedules a publication that is not yet published.
//
// HTTP: PUT /publications/{id}
func (h *PublicationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in model.PublicationInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	pub, err := h.publications.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pub)
}

// HTTP: DELETE /publications/{id}
func (h *PublicationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.publications.Remove(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
