package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
)

var _ repository.MediaRepository = (*DB)(nil)

const mediaColumns = `id, title, username, created_at, updated_at`

func (db *DB) CreateMedia(ctx context.Context, media *model.Media) error {
	now := time.Now().UTC()
	media.CreatedAt = now
	media.UpdatedAt = now

	err := db.pool.QueryRow(ctx,
		`INSERT INTO medias (title, username, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		media.Title, media.Username, media.CreatedAt, media.UpdatedAt,
	).Scan(&media.ID)
	if err != nil {
		return fmt.Errorf("postgres: creating media: %w", translate(err))
	}
	return nil
}

func (db *DB) GetMediaByID(ctx context.Context, id int64) (*model.Media, error) {
	media, err := scanMedia(db.pool.QueryRow(ctx,
		`SELECT `+mediaColumns+` FROM medias WHERE id = $1`, id,
	))
	if isNoRows(err) {
		return nil, apperror.NotFound("media", id)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: getting media %d: %w", id, err)
	}
	return media, nil
}

func (db *DB) FindMediaByKey(ctx context.Context, title, username string) (*model.Media, error) {
	media, err := scanMedia(db.pool.QueryRow(ctx,
		`SELECT `+mediaColumns+` FROM medias WHERE title = $1 AND username = $2`,
		title, username,
	))
	if isNoRows(err) {
		return nil, apperror.NotFoundBy("media", fmt.Sprintf("title %q and username %q", title, username))
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: finding media by title and username: %w", err)
	}
	return media, nil
}

func (db *DB) ListMedia(ctx context.Context) ([]model.Media, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+mediaColumns+` FROM medias ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing medias: %w", err)
	}
	defer rows.Close()

	medias := []model.Media{}
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scanning media row: %w", err)
		}
		medias = append(medias, *media)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating medias: %w", err)
	}
	return medias, nil
}

func (db *DB) UpdateMedia(ctx context.Context, media *model.Media) error {
	media.UpdatedAt = time.Now().UTC()

	tag, err := db.pool.Exec(ctx,
		`UPDATE medias SET title = $1, username = $2, updated_at = $3 WHERE id = $4`,
		media.Title, media.Username, media.UpdatedAt, media.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: updating media %d: %w", media.ID, translate(err))
	}
	return checkAffected(tag, "media", media.ID)
}

func (db *DB) DeleteMedia(ctx context.Context, id int64) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM medias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting media %d: %w", id, translate(err))
	}
	return checkAffected(tag, "media", id)
}

func scanMedia(s scanner) (*model.Media, error) {
	var m model.Media
	if err := s.Scan(&m.ID, &m.Title, &m.Username, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
