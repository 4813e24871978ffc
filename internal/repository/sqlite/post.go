package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
)

var _ repository.PostRepository = (*DB)(nil)

const postColumns = `id, title, text, image, created_at, updated_at`

// CreatePost inserts post. A nil Image is stored as NULL.
func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (title, text, image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		post.Title,
		post.Text,
		nullString(post.Image),
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating post: %w", translate(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading post id: %w", err)
	}
	post.ID = id

	return nil
}

func (db *DB) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`,
		id,
	)

	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting post %d: %w", id, err)
	}
	return post, nil
}

func (db *DB) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}

	return posts, nil
}

// UpdatePost overwrites title, text and image. A nil Image clears it.
func (db *DB) UpdatePost(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE posts
		 SET title = ?, text = ?, image = ?, updated_at = ?
		 WHERE id = ?`,
		post.Title,
		post.Text,
		nullString(post.Image),
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating post %d: %w", post.ID, translate(err))
	}

	return checkAffected(result, "post", post.ID)
}

// DeletePost removes the post. A post still referenced by a publication
// wraps repository.ErrForeignKeyViolation.
func (db *DB) DeletePost(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %d: %w", id, translate(err))
	}

	return checkAffected(result, "post", id)
}

func scanPost(s scanner) (*model.Post, error) {
	var (
		p     model.Post
		image sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Text, &image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if image.Valid {
		p.Image = &image.String
	}
	return &p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
