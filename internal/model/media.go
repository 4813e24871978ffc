// Package model defines the entities stored by the service, the request
// payloads accepted by the API and the response shapes it returns.
//
// THREE KINDS OF STRUCTS PER ENTITY:
//   - the entity (Media, Post, Publication) mirrors a database row, including
//     the internal CreatedAt/UpdatedAt timestamps
//   - the input (MediaInput, ...) is what a client sends; its `validate` tags
//     are checked by internal/validation before any workflow runs
//   - the response (MediaResponse, ...) is what a client receives; it never
//     carries the internal timestamps
package model

import "time"

// Media is a named outlet a post can be published to.
// The (Title, Username) pair is unique.
type Media struct {
	ID        int64
	Title     string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MediaInput is the body of POST /medias and PUT /medias/{id}.
type MediaInput struct {
	Title    string `json:"title"    validate:"required"`
	Username string `json:"username" validate:"required"`
}

// MediaResponse is a Media with its internal timestamps stripped.
type MediaResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username"`
}
