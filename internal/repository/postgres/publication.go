package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
)

var _ repository.PublicationRepository = (*DB)(nil)

const publicationColumns = `id, media_id, post_id, date, created_at, updated_at`

func (db *DB) CreatePublication(ctx context.Context, pub *model.Publication) error {
	now := time.Now().UTC()
	pub.Date = pub.Date.UTC()
	pub.CreatedAt = now
	pub.UpdatedAt = now

	err := db.pool.QueryRow(ctx,
		`INSERT INTO publications (media_id, post_id, date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		pub.MediaID, pub.PostID, pub.Date, pub.CreatedAt, pub.UpdatedAt,
	).Scan(&pub.ID)
	if err != nil {
		return fmt.Errorf("postgres: creating publication: %w", translate(err))
	}
	return nil
}

func (db *DB) GetPublicationByID(ctx context.Context, id int64) (*model.Publication, error) {
	pub, err := scanPublication(db.pool.QueryRow(ctx,
		`SELECT `+publicationColumns+` FROM publications WHERE id = $1`, id,
	))
	if isNoRows(err) {
		return nil, apperror.NotFound("publication", id)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: getting publication %d: %w", id, err)
	}
	return pub, nil
}

func (db *DB) ListPublications(ctx context.Context, filter repository.PublicationFilter) ([]model.Publication, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, t *time.Time) {
		if t == nil {
			return
		}
		args = append(args, t.UTC())
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	add("date < $%d", filter.Before)
	add("date > $%d", filter.After)
	add("date >= $%d", filter.NotBefore)

	query := `SELECT ` + publicationColumns + ` FROM publications`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, id`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing publications: %w", err)
	}
	defer rows.Close()

	pubs := []model.Publication{}
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scanning publication row: %w", err)
		}
		pubs = append(pubs, *pub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating publications: %w", err)
	}
	return pubs, nil
}

func (db *DB) UpdatePublication(ctx context.Context, pub *model.Publication) error {
	pub.Date = pub.Date.UTC()
	pub.UpdatedAt = time.Now().UTC()

	tag, err := db.pool.Exec(ctx,
		`UPDATE publications SET media_id = $1, post_id = $2, date = $3, updated_at = $4 WHERE id = $5`,
		pub.MediaID, pub.PostID, pub.Date, pub.UpdatedAt, pub.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: updating publication %d: %w", pub.ID, translate(err))
	}
	return checkAffected(tag, "publication", pub.ID)
}

func (db *DB) DeletePublication(ctx context.Context, id int64) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting publication %d: %w", id, err)
	}
	return checkAffected(tag, "publication", id)
}

func scanPublication(s scanner) (*model.Publication, error) {
	var p model.Publication
	if err := s.Scan(&p.ID, &p.MediaID, &p.PostID, &p.Date, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Date = p.Date.UTC()
	return &p, nil
}
