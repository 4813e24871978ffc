package model

import "time"

// Post is a content item. Image is nil when the post has none.
type Post struct {
	ID        int64
	Title     string
	Text      string
	Image     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostInput is the body of POST /posts and PUT /posts/{id}.
// An empty image is accepted and means "no image".
type PostInput struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text"  validate:"required"`
	Image string `json:"image" validate:"omitempty,url"`
}

// PostResponse omits the image key entirely when there is no image.
type PostResponse struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Text  string  `json:"text"`
	Image *string `json:"image,omitempty"`
}
