package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
)

var _ repository.PostRepository = (*DB)(nil)

const postColumns = `id, title, text, image, created_at, updated_at`

// CreatePost inserts post; pgx writes a nil Image as NULL.
func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	err := db.pool.QueryRow(ctx,
		`INSERT INTO posts (title, text, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		post.Title, post.Text, post.Image, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("postgres: creating post: %w", translate(err))
	}
	return nil
}

func (db *DB) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := scanPost(db.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id,
	))
	if isNoRows(err) {
		return nil, apperror.NotFound("post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: getting post %d: %w", id, err)
	}
	return post, nil
}

func (db *DB) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scanning post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating posts: %w", err)
	}
	return posts, nil
}

func (db *DB) UpdatePost(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now().UTC()

	tag, err := db.pool.Exec(ctx,
		`UPDATE posts SET title = $1, text = $2, image = $3, updated_at = $4 WHERE id = $5`,
		post.Title, post.Text, post.Image, post.UpdatedAt, post.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: updating post %d: %w", post.ID, translate(err))
	}
	return checkAffected(tag, "post", post.ID)
}

func (db *DB) DeletePost(ctx context.Context, id int64) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting post %d: %w", id, translate(err))
	}
	return checkAffected(tag, "post", id)
}

func scanPost(s scanner) (*model.Post, error) {
	var p model.Post
	if err := s.Scan(&p.ID, &p.Title, &p.Text, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
