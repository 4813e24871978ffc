// Package service contains the business workflows of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → decodes requests, writes responses
//	Service (Business layer) → validates, enforces rules, shapes responses
//	Repository (Data layer)  → reads/writes the relational store
//
// Each service receives its repository as an interface, so tests inject the
// in-memory mocks from the _test files and production injects sqlite or
// postgres.
//
// ERROR CONTRACT:
// Services only ever return apperror kinds (validation, not found, conflict,
// forbidden) or wrapped unexpected errors. Store constraint sentinels
// (repository.ErrUniqueViolation, repository.ErrForeignKeyViolation) are
// translated here and never leak to the handler.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
	"github.com/VinicciusWirz/social-postify/internal/validation"
)

// MediaService handles business logic for media outlets.
type MediaService struct {
	repo     repository.MediaRepository
	validate *validation.Validator
	logger   *slog.Logger
}

func NewMediaService(repo repository.MediaRepository, validate *validation.Validator, logger *slog.Logger) *MediaService {
	return &MediaService{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

// Create registers a new media. The (title, username) pair must be free.
func (s *MediaService) Create(ctx context.Context, in model.MediaInput) (*model.MediaResponse, error) {
	in = normalizeMedia(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	// Advisory probe; the UNIQUE constraint below is the final word.
	if err := s.ensureFree(ctx, in, 0); err != nil {
		return nil, err
	}

	media := &model.Media{Title: in.Title, Username: in.Username}
	if err := s.repo.CreateMedia(ctx, media); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, duplicateMedia()
		}
		s.logger.Error("failed to create media",
			slog.String("title", in.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating media: %w", err)
	}

	s.logger.Info("media created", slog.Int64("id", media.ID))

	resp := toMediaResponse(media)
	return &resp, nil
}

// FindAll returns every media. The result is never nil.
func (s *MediaService) FindAll(ctx context.Context) ([]model.MediaResponse, error) {
	medias, err := s.repo.ListMedia(ctx)
	if err != nil {
		s.logger.Error("failed to list medias", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing medias: %w", err)
	}

	out := make([]model.MediaResponse, 0, len(medias))
	for i := range medias {
		out = append(out, toMediaResponse(&medias[i]))
	}
	return out, nil
}

// FindOne returns the media wrapped in a single-element slice.
func (s *MediaService) FindOne(ctx context.Context, id int64) ([]model.MediaResponse, error) {
	media, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return []model.MediaResponse{toMediaResponse(media)}, nil
}

// Update replaces title and username. Updating a media to its own current
// values is allowed; colliding with another media is a conflict.
func (s *MediaService) Update(ctx context.Context, id int64, in model.MediaInput) (*model.MediaResponse, error) {
	in = normalizeMedia(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	media, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, in, id); err != nil {
		return nil, err
	}

	media.Title = in.Title
	media.Username = in.Username
	if err := s.repo.UpdateMedia(ctx, media); err != nil {
		switch {
		case errors.Is(err, repository.ErrUniqueViolation):
			return nil, duplicateMedia()
		case errors.Is(err, apperror.ErrNotFound):
			return nil, err
		}
		s.logger.Error("failed to update media",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating media: %w", err)
	}

	s.logger.Info("media updated", slog.Int64("id", id))

	resp := toMediaResponse(media)
	return &resp, nil
}

// Remove deletes the media unless a publication still points at it.
func (s *MediaService) Remove(ctx context.Context, id int64) (string, error) {
	if err := s.repo.DeleteMedia(ctx, id); err != nil {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return "", err
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return "", apperror.Forbidden(fmt.Sprintf("media %d is used by a publication", id))
		}
		s.logger.Error("failed to delete media",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("deleting media: %w", err)
	}

	s.logger.Info("media deleted", slog.Int64("id", id))
	return fmt.Sprintf("Media %d deleted", id), nil
}

// ensureFree fails with Conflict when another media (id != selfID) already
// owns the pair. Pass selfID 0 on create.
func (s *MediaService) ensureFree(ctx context.Context, in model.MediaInput, selfID int64) error {
	existing, err := s.repo.FindMediaByKey(ctx, in.Title, in.Username)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("checking media uniqueness: %w", err)
	case existing.ID != selfID:
		return duplicateMedia()
	}
	return nil
}

func duplicateMedia() error {
	return apperror.Conflict("media", "title and username combination already registered")
}

func normalizeMedia(in model.MediaInput) model.MediaInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Username = strings.TrimSpace(in.Username)
	return in
}
