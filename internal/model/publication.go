package model

import "time"

// Publication schedules one Post on one Media at Date.
// It counts as published once Date is before the current time.
type Publication struct {
	ID        int64
	MediaID   int64
	PostID    int64
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPublished reports whether the publication date has already passed at now.
func (p *Publication) IsPublished(now time.Time) bool {
	return p.Date.Before(now)
}

// PublicationInput is the body of POST /publications and PUT /publications/{id}.
// Date must be an RFC 3339 timestamp such as "2023-08-21T13:25:17.352Z".
type PublicationInput struct {
	MediaID int64  `json:"mediaId" validate:"required,gt=0"`
	PostID  int64  `json:"postId"  validate:"required,gt=0"`
	Date    string `json:"date"    validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// ParsedDate returns Date as a UTC time. Call it only after validation.
func (in PublicationInput) ParsedDate() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, in.Date)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type PublicationResponse struct {
	ID      int64     `json:"id"`
	MediaID int64     `json:"mediaId"`
	PostID  int64     `json:"postId"`
	Date    time.Time `json:"date"`
}
