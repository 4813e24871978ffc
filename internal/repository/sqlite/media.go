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

var _ repository.MediaRepository = (*DB)(nil)

const mediaColumns = `id, title, username, created_at, updated_at`

// CreateMedia inserts media and fills in its ID and timestamps.
// A duplicate (title, username) pair wraps repository.ErrUniqueViolation.
func (db *DB) CreateMedia(ctx context.Context, media *model.Media) error {
	now := time.Now().UTC()
	media.CreatedAt = now
	media.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO medias (title, username, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		media.Title,
		media.Username,
		media.CreatedAt,
		media.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating media: %w", translate(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading media id: %w", err)
	}
	media.ID = id

	return nil
}

// GetMediaByID returns apperror.NotFound when no row has the id.
func (db *DB) GetMediaByID(ctx context.Context, id int64) (*model.Media, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM medias WHERE id = ?`,
		id,
	)

	media, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("media", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting media %d: %w", id, err)
	}
	return media, nil
}

// FindMediaByKey looks a media up by its unique (title, username) pair.
func (db *DB) FindMediaByKey(ctx context.Context, title, username string) (*model.Media, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM medias WHERE title = ? AND username = ?`,
		title, username,
	)

	media, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFoundBy("media", fmt.Sprintf("title %q and username %q", title, username))
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: finding media by title and username: %w", err)
	}
	return media, nil
}

// ListMedia returns every media ordered by id.
func (db *DB) ListMedia(ctx context.Context) ([]model.Media, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM medias ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing medias: %w", err)
	}
	defer rows.Close()

	medias := []model.Media{}
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning media row: %w", err)
		}
		medias = append(medias, *media)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating medias: %w", err)
	}

	return medias, nil
}

// UpdateMedia overwrites title and username. created_at is immutable.
func (db *DB) UpdateMedia(ctx context.Context, media *model.Media) error {
	media.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE medias
		 SET title = ?, username = ?, updated_at = ?
		 WHERE id = ?`,
		media.Title,
		media.Username,
		media.UpdatedAt,
		media.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating media %d: %w", media.ID, translate(err))
	}

	return checkAffected(result, "media", media.ID)
}

// DeleteMedia removes the media. A media still referenced by a publication
// wraps repository.ErrForeignKeyViolation.
func (db *DB) DeleteMedia(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM medias WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting media %d: %w", id, translate(err))
	}

	return checkAffected(result, "media", id)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMedia(s scanner) (*model.Media, error) {
	var m model.Media
	if err := s.Scan(&m.ID, &m.Title, &m.Username, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// checkAffected turns "zero rows matched" into apperror.NotFound.
func checkAffected(result sql.Result, resource string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
