package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
)

var _ repository.PublicationRepository = (*DB)(nil)

const publicationColumns = `id, media_id, post_id, date, created_at, updated_at`

// CreatePublication inserts pub. An unknown media or post id wraps
// repository.ErrForeignKeyViolation.
func (db *DB) CreatePublication(ctx context.Context, pub *model.Publication) error {
	now := time.Now().UTC()
	pub.Date = pub.Date.UTC()
	pub.CreatedAt = now
	pub.UpdatedAt = now

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO publications (media_id, post_id, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		pub.MediaID,
		pub.PostID,
		pub.Date,
		pub.CreatedAt,
		pub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating publication: %w", translate(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading publication id: %w", err)
	}
	pub.ID = id

	return nil
}

func (db *DB) GetPublicationByID(ctx context.Context, id int64) (*model.Publication, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+publicationColumns+` FROM publications WHERE id = ?`,
		id,
	)

	pub, err := scanPublication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("publication", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting publication %d: %w", id, err)
	}
	return pub, nil
}

// ListPublications returns the publications matching filter, oldest date first.
func (db *DB) ListPublications(ctx context.Context, filter repository.PublicationFilter) ([]model.Publication, error) {
	var (
		where []string
		args  []any
	)
	if filter.Before != nil {
		where = append(where, "date < ?")
		args = append(args, filter.Before.UTC())
	}
	if filter.After != nil {
		where = append(where, "date > ?")
		args = append(args, filter.After.UTC())
	}
	if filter.NotBefore != nil {
		where = append(where, "date >= ?")
		args = append(args, filter.NotBefore.UTC())
	}

	query := `SELECT ` + publicationColumns + ` FROM publications`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing publications: %w", err)
	}
	defer rows.Close()

	pubs := []model.Publication{}
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning publication row: %w", err)
		}
		pubs = append(pubs, *pub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating publications: %w", err)
	}

	return pubs, nil
}

func (db *DB) UpdatePublication(ctx context.Context, pub *model.Publication) error {
	pub.Date = pub.Date.UTC()
	pub.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE publications
		 SET media_id = ?, post_id = ?, date = ?, updated_at = ?
		 WHERE id = ?`,
		pub.MediaID,
		pub.PostID,
		pub.Date,
		pub.UpdatedAt,
		pub.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating publication %d: %w", pub.ID, translate(err))
	}

	return checkAffected(result, "publication", pub.ID)
}

func (db *DB) DeletePublication(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM publications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting publication %d: %w", id, err)
	}

	return checkAffected(result, "publication", id)
}

func scanPublication(s scanner) (*model.Publication, error) {
	var p model.Publication
	if err := s.Scan(&p.ID, &p.MediaID, &p.PostID, &p.Date, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Date = p.Date.UTC()
	return &p, nil
}
