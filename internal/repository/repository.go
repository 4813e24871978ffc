// Package repository declares the Store capability the services depend on.
//
// Implementations live in sub-packages (sqlite, postgres). They share these
// rules:
//   - a missing id is reported as apperror.NotFound
//   - a rejected UNIQUE constraint wraps ErrUniqueViolation
//   - a rejected FOREIGN KEY constraint wraps ErrForeignKeyViolation
//   - no other driver error is translated; it bubbles up wrapped with context
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/model"
)

var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

type MediaRepository interface {
	CreateMedia(ctx context.Context, media *model.Media) error
	GetMediaByID(ctx context.Context, id int64) (*model.Media, error)
	// FindMediaByKey returns the media with the given (title, username) pair,
	// or apperror.NotFound.
	FindMediaByKey(ctx context.Context, title, username string) (*model.Media, error)
	ListMedia(ctx context.Context) ([]model.Media, error)
	UpdateMedia(ctx context.Context, media *model.Media) error
	DeleteMedia(ctx context.Context, id int64) error
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id int64) error
}

// PublicationFilter narrows ListPublications. Nil bounds are ignored;
// all set bounds are exclusive and combined with AND.
type PublicationFilter struct {
	Before *time.Time // date < Before
	After  *time.Time // date > After
	// NotBefore keeps date >= NotBefore (scheduled publications).
	NotBefore *time.Time
}

type PublicationRepository interface {
	CreatePublication(ctx context.Context, pub *model.Publication) error
	GetPublicationByID(ctx context.Context, id int64) (*model.Publication, error)
	ListPublications(ctx context.Context, filter PublicationFilter) ([]model.Publication, error)
	UpdatePublication(ctx context.Context, pub *model.Publication) error
	DeletePublication(ctx context.Context, id int64) error
}

// Store is everything a backend provides to the server.
type Store interface {
	MediaRepository
	PostRepository
	PublicationRepository
	Ping(ctx context.Context) error
	Close() error
}
