package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
)

// newTestDB opens a fresh in-memory database with the schema applied.
// t.Cleanup closes it when the test (or subtest) finishes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestMedia(t *testing.T, db *DB, title, username string) *model.Media {
	t.Helper()
	media := &model.Media{Title: title, Username: username}
	if err := db.CreateMedia(context.Background(), media); err != nil {
		t.Fatalf("failed to create test media: %v", err)
	}
	return media
}

func createTestPost(t *testing.T, db *DB, title string) *model.Post {
	t.Helper()
	image := "https://img.example.com/" + title + ".png"
	post := &model.Post{Title: title, Text: "body of " + title, Image: &image}
	if err := db.CreatePost(context.Background(), post); err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

func createTestPublication(t *testing.T, db *DB, date time.Time) *model.Publication {
	t.Helper()
	media := createTestMedia(t, db, "media-"+date.Format(time.RFC3339Nano), "user")
	post := createTestPost(t, db, "post-"+date.Format("20060102150405"))
	pub := &model.Publication{MediaID: media.ID, PostID: post.ID, Date: date}
	if err := db.CreatePublication(context.Background(), pub); err != nil {
		t.Fatalf("failed to create test publication: %v", err)
	}
	return pub
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// =========================================================================
// MIGRATION TESTS
// =========================================================================

func TestMigrations_UpDownUp(t *testing.T) {
	db := newTestDB(t)

	version, dirty, err := db.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// Running up again is a no-op, not an error.
	require.NoError(t, db.MigrateUp())

	require.NoError(t, db.MigrateDown())
	version, _, err = db.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)

	_, err = db.ListMedia(context.Background())
	assert.Error(t, err, "medias table should be gone after rolling back")

	require.NoError(t, db.MigrateUp())
	medias, err := db.ListMedia(context.Background())
	require.NoError(t, err)
	assert.Empty(t, medias)
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}

// =========================================================================
// MEDIA TESTS
// =========================================================================

func TestCreateMedia(t *testing.T) {
	db := newTestDB(t)

	media := &model.Media{Title: "Instagram", Username: "@postify"}
	require.NoError(t, db.CreateMedia(context.Background(), media))

	assert.NotZero(t, media.ID)
	assert.False(t, media.CreatedAt.IsZero())
	assert.False(t, media.UpdatedAt.IsZero())

	found, err := db.GetMediaByID(context.Background(), media.ID)
	require.NoError(t, err)
	assert.Equal(t, "Instagram", found.Title)
	assert.Equal(t, "@postify", found.Username)
}

func TestCreateMedia_DuplicatePair(t *testing.T) {
	db := newTestDB(t)
	createTestMedia(t, db, "Instagram", "@postify")

	err := db.CreateMedia(context.Background(), &model.Media{Title: "Instagram", Username: "@postify"})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrUniqueViolation)

	// Same title with another username is a different pair.
	assert.NoError(t, db.CreateMedia(context.Background(), &model.Media{Title: "Instagram", Username: "@other"}))
}

func TestGetMediaByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetMediaByID(context.Background(), 999)

	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetMediaByID() error = %v, want ErrNotFound", err)
	}
}

func TestFindMediaByKey(t *testing.T) {
	db := newTestDB(t)
	created := createTestMedia(t, db, "Twitter", "@postify")

	found, err := db.FindMediaByKey(context.Background(), "Twitter", "@postify")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = db.FindMediaByKey(context.Background(), "Twitter", "@nobody")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListMedia(t *testing.T) {
	db := newTestDB(t)

	medias, err := db.ListMedia(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, medias, "empty list should be [] not nil")
	assert.Empty(t, medias)

	first := createTestMedia(t, db, "a", "1")
	second := createTestMedia(t, db, "b", "2")

	medias, err = db.ListMedia(context.Background())
	require.NoError(t, err)
	require.Len(t, medias, 2)
	assert.Equal(t, first.ID, medias[0].ID)
	assert.Equal(t, second.ID, medias[1].ID)
}

func TestUpdateMedia(t *testing.T) {
	db := newTestDB(t)
	media := createTestMedia(t, db, "old title", "old user")

	media.Title = "new title"
	media.Username = "new user"
	require.NoError(t, db.UpdateMedia(context.Background(), media))

	found, err := db.GetMediaByID(context.Background(), media.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", found.Title)
	assert.Equal(t, "new user", found.Username)
}

func TestUpdateMedia_Errors(t *testing.T) {
	db := newTestDB(t)
	createTestMedia(t, db, "taken", "pair")
	media := createTestMedia(t, db, "free", "pair")

	media.Title = "taken"
	err := db.UpdateMedia(context.Background(), media)
	assert.ErrorIs(t, err, repository.ErrUniqueViolation)

	err = db.UpdateMedia(context.Background(), &model.Media{ID: 999, Title: "x", Username: "y"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteMedia(t *testing.T) {
	db := newTestDB(t)
	media := createTestMedia(t, db, "bye", "user")

	require.NoError(t, db.DeleteMedia(context.Background(), media.ID))

	_, err := db.GetMediaByID(context.Background(), media.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = db.DeleteMedia(context.Background(), media.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteMedia_Referenced(t *testing.T) {
	db := newTestDB(t)
	pub := createTestPublication(t, db, day("2030-01-01"))

	err := db.DeleteMedia(context.Background(), pub.MediaID)

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	_, err = db.GetMediaByID(context.Background(), pub.MediaID)
	assert.NoError(t, err, "referenced media must survive the failed delete")
}

// =========================================================================
// POST TESTS
// =========================================================================

func TestCreatePost_WithAndWithoutImage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	withImage := createTestPost(t, db, "pic")
	withoutImage := &model.Post{Title: "plain", Text: "no picture"}
	require.NoError(t, db.CreatePost(ctx, withoutImage))

	found, err := db.GetPostByID(ctx, withImage.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Image)
	assert.Equal(t, *withImage.Image, *found.Image)

	found, err = db.GetPostByID(ctx, withoutImage.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Image)
}

func TestUpdatePost_ClearsImage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	post := createTestPost(t, db, "pic")

	post.Image = nil
	post.Text = "edited"
	require.NoError(t, db.UpdatePost(ctx, post))

	found, err := db.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Image)
	assert.Equal(t, "edited", found.Text)

	err = db.UpdatePost(ctx, &model.Post{ID: 999, Title: "x", Text: "y"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListPosts(t *testing.T) {
	db := newTestDB(t)
	createTestPost(t, db, "one")
	createTestPost(t, db, "two")

	posts, err := db.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestDeletePost(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	free := createTestPost(t, db, "free")
	pub := createTestPublication(t, db, day("2030-01-01"))

	assert.NoError(t, db.DeletePost(ctx, free.ID))
	assert.ErrorIs(t, db.DeletePost(ctx, free.ID), apperror.ErrNotFound)
	assert.ErrorIs(t, db.DeletePost(ctx, pub.PostID), repository.ErrForeignKeyViolation)
}

// =========================================================================
// PUBLICATION TESTS
// =========================================================================

func TestCreatePublication_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	date := time.Date(2023, 8, 21, 13, 25, 17, 352000000, time.UTC)

	pub := createTestPublication(t, db, date)

	found, err := db.GetPublicationByID(context.Background(), pub.ID)
	require.NoError(t, err)
	assert.Equal(t, pub.MediaID, found.MediaID)
	assert.Equal(t, pub.PostID, found.PostID)
	assert.True(t, found.Date.Equal(date), "date = %v, want %v", found.Date, date)
}

func TestCreatePublication_UnknownReferences(t *testing.T) {
	db := newTestDB(t)

	err := db.CreatePublication(context.Background(), &model.Publication{
		MediaID: 1, PostID: 1, Date: day("2030-01-01"),
	})

	assert.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	pubs, err := db.ListPublications(context.Background(), repository.PublicationFilter{})
	require.NoError(t, err)
	assert.Empty(t, pubs)
}

func TestGetPublicationByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetPublicationByID(context.Background(), 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListPublications_Filters(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	publishedAfter := createTestPublication(t, db, day("2023-05-05"))
	publishedBefore := createTestPublication(t, db, day("2023-05-02"))
	scheduled := createTestPublication(t, db, day("9999-05-02"))

	after := day("2023-05-03")

	tests := []struct {
		name    string
		filter  repository.PublicationFilter
		wantIDs []int64
	}{
		{
			name:    "no filter returns everything",
			filter:  repository.PublicationFilter{},
			wantIDs: []int64{publishedBefore.ID, publishedAfter.ID, scheduled.ID},
		},
		{
			name:    "before now returns published",
			filter:  repository.PublicationFilter{Before: &now},
			wantIDs: []int64{publishedBefore.ID, publishedAfter.ID},
		},
		{
			name:    "before now and after 2023-05-03",
			filter:  repository.PublicationFilter{Before: &now, After: &after},
			wantIDs: []int64{publishedAfter.ID},
		},
		{
			name:    "not before now returns scheduled",
			filter:  repository.PublicationFilter{NotBefore: &now},
			wantIDs: []int64{scheduled.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pubs, err := db.ListPublications(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]int64, 0, len(pubs))
			for _, p := range pubs {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestUpdatePublication(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pub := createTestPublication(t, db, day("2030-01-01"))

	pub.Date = day("2031-02-02")
	require.NoError(t, db.UpdatePublication(ctx, pub))

	found, err := db.GetPublicationByID(ctx, pub.ID)
	require.NoError(t, err)
	assert.True(t, found.Date.Equal(day("2031-02-02")))

	pub.MediaID = 999
	assert.ErrorIs(t, db.UpdatePublication(ctx, pub), repository.ErrForeignKeyViolation)

	err = db.UpdatePublication(ctx, &model.Publication{ID: 999, MediaID: found.MediaID, PostID: found.PostID, Date: found.Date})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeletePublication_ReleasesReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pub := createTestPublication(t, db, day("2030-01-01"))

	require.NoError(t, db.DeletePublication(ctx, pub.ID))
	assert.ErrorIs(t, db.DeletePublication(ctx, pub.ID), apperror.ErrNotFound)

	// With the publication gone, media and post can be deleted.
	assert.NoError(t, db.DeleteMedia(ctx, pub.MediaID))
	assert.NoError(t, db.DeletePost(ctx, pub.PostID))
}
