package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
	"github.com/VinicciusWirz/social-postify/internal/validation"
)

// MediaFinder resolves a media id; MediaService satisfies it.
type MediaFinder interface {
	FindOne(ctx context.Context, id int64) ([]model.MediaResponse, error)
}

// PostFinder resolves a post id; PostService satisfies it.
type PostFinder interface {
	FindOne(ctx context.Context, id int64) ([]model.PostResponse, error)
}

// PublicationQuery holds the optional filters of GET /publications.
type PublicationQuery struct {
	Published *bool
	After     *time.Time
}

// PublicationService handles business logic for publications.
type PublicationService struct {
	repo     repository.PublicationRepository
	medias   MediaFinder
	posts    PostFinder
	validate *validation.Validator
	logger   *slog.Logger
	now      func() time.Time
}

func NewPublicationService(
	repo repository.PublicationRepository,
	medias MediaFinder,
	posts PostFinder,
	validate *validation.Validator,
	logger *slog.Logger,
) *PublicationService {
	return &PublicationService{
		repo:     repo,
		medias:   medias,
		posts:    posts,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

// Create schedules a post on a media. Both ids must resolve first.
func (s *PublicationService) Create(ctx context.Context, in model.PublicationInput) (*model.PublicationResponse, error) {
	date, err := s.parse(in)
	if err != nil {
		return nil, err
	}

	if err := s.ensureReferences(ctx, in.MediaID, in.PostID); err != nil {
		return nil, err
	}

	pub := &model.Publication{MediaID: in.MediaID, PostID: in.PostID, Date: date}
	if err := s.repo.CreatePublication(ctx, pub); err != nil {
		// A referenced row vanished between the probe and the insert.
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, apperror.NotFoundBy("media or post", fmt.Sprintf("mediaId %d and postId %d", in.MediaID, in.PostID))
		}
		s.logger.Error("failed to create publication",
			slog.Int64("media_id", in.MediaID),
			slog.Int64("post_id", in.PostID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating publication: %w", err)
	}

	s.logger.Info("publication created",
		slog.Int64("id", pub.ID),
		slog.Time("date", pub.Date),
	)

	resp := toPublicationResponse(pub)
	return &resp, nil
}

// FindAll lists publications ordered by date.
//
//	published=true         date < now
//	published=false        date >= now
//	after=D                date > D (and date < now unless published=false)
//	published=false&after  date >= now and date > D
func (s *PublicationService) FindAll(ctx context.Context, q PublicationQuery) ([]model.PublicationResponse, error) {
	var filter repository.PublicationFilter
	now := s.now()

	switch {
	case q.Published != nil && !*q.Published:
		filter.NotBefore = &now
	case q.Published != nil || q.After != nil:
		filter.Before = &now
	}
	if q.After != nil {
		after := q.After.UTC()
		filter.After = &after
	}

	pubs, err := s.repo.ListPublications(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list publications", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing publications: %w", err)
	}

	out := make([]model.PublicationResponse, 0, len(pubs))
	for i := range pubs {
		out = append(out, toPublicationResponse(&pubs[i]))
	}
	return out, nil
}

func (s *PublicationService) FindOne(ctx context.Context, id int64) (*model.PublicationResponse, error) {
	pub, err := s.repo.GetPublicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPublicationResponse(pub)
	return &resp, nil
}

// Update reschedules a publication. Once its date has passed it is read-only.
func (s *PublicationService) Update(ctx context.Context, id int64, in model.PublicationInput) (*model.PublicationResponse, error) {
	date, err := s.parse(in)
	if err != nil {
		return nil, err
	}

	if err := s.ensureReferences(ctx, in.MediaID, in.PostID); err != nil {
		return nil, err
	}

	pub, err := s.repo.GetPublicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if pub.IsPublished(s.now()) {
		s.logger.Warn("rejected update of published publication", slog.Int64("id", id))
		return nil, apperror.Forbidden(fmt.Sprintf("publication %d is already published", id))
	}

	pub.MediaID = in.MediaID
	pub.PostID = in.PostID
	pub.Date = date
	if err := s.repo.UpdatePublication(ctx, pub); err != nil {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return nil, err
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return nil, apperror.NotFoundBy("media or post", fmt.Sprintf("mediaId %d and postId %d", in.MediaID, in.PostID))
		}
		s.logger.Error("failed to update publication",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating publication: %w", err)
	}

	s.logger.Info("publication updated", slog.Int64("id", id))

	resp := toPublicationResponse(pub)
	return &resp, nil
}

// Remove deletes a publication in either state.
func (s *PublicationService) Remove(ctx context.Context, id int64) (string, error) {
	if err := s.repo.DeletePublication(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", err
		}
		s.logger.Error("failed to delete publication",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("deleting publication: %w", err)
	}

	s.logger.Info("publication deleted", slog.Int64("id", id))
	return fmt.Sprintf("Publication %d deleted", id), nil
}

func (s *PublicationService) parse(in model.PublicationInput) (time.Time, error) {
	in.Date = strings.TrimSpace(in.Date)
	if err := s.validate.Struct(in); err != nil {
		return time.Time{}, err
	}
	date, err := in.ParsedDate()
	if err != nil {
		return time.Time{}, apperror.ValidationFailed("date", "date must be a valid ISO 8601 date string")
	}
	return date, nil
}

func (s *PublicationService) ensureReferences(ctx context.Context, mediaID, postID int64) error {
	if _, err := s.medias.FindOne(ctx, mediaID); err != nil {
		return err
	}
	if _, err := s.posts.FindOne(ctx, postID); err != nil {
		return err
	}
	return nil
}
