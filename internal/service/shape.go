package service

import "github.com/VinicciusWirz/social-postify/internal/model"

func toMediaResponse(m *model.Media) model.MediaResponse {
	return model.MediaResponse{
		ID:       m.ID,
		Title:    m.Title,
		Username: m.Username,
	}
}

func toPostResponse(p *model.Post) model.PostResponse {
	resp := model.PostResponse{
		ID:    p.ID,
		Title: p.Title,
		Text:  p.Text,
	}
	if p.Image != nil && *p.Image != "" {
		img := *p.Image
		resp.Image = &img
	}
	return resp
}

func toPublicationResponse(p *model.Publication) model.PublicationResponse {
	return model.PublicationResponse{
		ID:      p.ID,
		MediaID: p.MediaID,
		PostID:  p.PostID,
		Date:    p.Date.UTC(),
	}
}

// optional maps "" to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
