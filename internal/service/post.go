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

// PostService handles business logic for posts.
type PostService struct {
	repo     repository.PostRepository
	validate *validation.Validator
	logger   *slog.Logger
}

func NewPostService(repo repository.PostRepository, validate *validation.Validator, logger *slog.Logger) *PostService {
	return &PostService{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

func (s *PostService) Create(ctx context.Context, in model.PostInput) (*model.PostResponse, error) {
	in = normalizePost(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	post := &model.Post{Title: in.Title, Text: in.Text, Image: optional(in.Image)}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("title", in.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created", slog.Int64("id", post.ID))

	resp := toPostResponse(post)
	return &resp, nil
}

func (s *PostService) FindAll(ctx context.Context) ([]model.PostResponse, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	out := make([]model.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	return out, nil
}

// FindOne returns the post wrapped in a single-element slice.
func (s *PostService) FindOne(ctx context.Context, id int64) ([]model.PostResponse, error) {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return []model.PostResponse{toPostResponse(post)}, nil
}

// Update replaces every field. Sending no image removes the stored one.
func (s *PostService) Update(ctx context.Context, id int64, in model.PostInput) (*model.PostResponse, error) {
	in = normalizePost(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Text = in.Text
	post.Image = optional(in.Image)
	if err := s.repo.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update post",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating post: %w", err)
	}

	s.logger.Info("post updated", slog.Int64("id", id))

	resp := toPostResponse(post)
	return &resp, nil
}

// Remove deletes the post unless a publication still points at it.
func (s *PostService) Remove(ctx context.Context, id int64) (string, error) {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return "", err
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return "", apperror.Forbidden(fmt.Sprintf("post %d is used by a publication", id))
		}
		s.logger.Error("failed to delete post",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("deleting post: %w", err)
	}

	s.logger.Info("post deleted", slog.Int64("id", id))
	return fmt.Sprintf("Post %d deleted", id), nil
}

func normalizePost(in model.PostInput) model.PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Text = strings.TrimSpace(in.Text)
	in.Image = strings.TrimSpace(in.Image)
	return in
}
