package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
	"github.com/VinicciusWirz/social-postify/internal/repository"
	"github.com/VinicciusWirz/social-postify/internal/validation"
)

// =========================================================================
// MOCK STORE
// =========================================================================
//
// mockStore implements all three repository interfaces in memory and
// enforces the same constraints as the real schema: the (title, username)
// pair is unique and publications block deletion of what they reference.
// failNext lets a test make the next call fail with an arbitrary error.

type mockStore struct {
	medias       map[int64]*model.Media
	posts        map[int64]*model.Post
	publications map[int64]*model.Publication
	nextID       int64
	failNext     error
}

func newMockStore() *mockStore {
	return &mockStore{
		medias:       make(map[int64]*model.Media),
		posts:        make(map[int64]*model.Post),
		publications: make(map[int64]*model.Publication),
	}
}

func (m *mockStore) fail() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *mockStore) CreateMedia(_ context.Context, media *model.Media) error {
	if err := m.fail(); err != nil {
		return err
	}
	for _, existing := range m.medias {
		if existing.Title == media.Title && existing.Username == media.Username {
			return repository.ErrUniqueViolation
		}
	}
	m.nextID++
	media.ID = m.nextID
	stored := *media
	m.medias[media.ID] = &stored
	return nil
}

func (m *mockStore) GetMediaByID(_ context.Context, id int64) (*model.Media, error) {
	media, ok := m.medias[id]
	if !ok {
		return nil, apperror.NotFound("media", id)
	}
	result := *media
	return &result, nil
}

func (m *mockStore) FindMediaByKey(_ context.Context, title, username string) (*model.Media, error) {
	for _, media := range m.medias {
		if media.Title == title && media.Username == username {
			result := *media
			return &result, nil
		}
	}
	return nil, apperror.NotFoundBy("media", "title "+title)
}

func (m *mockStore) ListMedia(_ context.Context) ([]model.Media, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	result := make([]model.Media, 0, len(m.medias))
	for _, media := range m.medias {
		result = append(result, *media)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStore) UpdateMedia(_ context.Context, media *model.Media) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.medias[media.ID]; !ok {
		return apperror.NotFound("media", media.ID)
	}
	for id, existing := range m.medias {
		if id != media.ID && existing.Title == media.Title && existing.Username == media.Username {
			return repository.ErrUniqueViolation
		}
	}
	stored := *media
	m.medias[media.ID] = &stored
	return nil
}

func (m *mockStore) DeleteMedia(_ context.Context, id int64) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.medias[id]; !ok {
		return apperror.NotFound("media", id)
	}
	for _, pub := range m.publications {
		if pub.MediaID == id {
			return repository.ErrForeignKeyViolation
		}
	}
	delete(m.medias, id)
	return nil
}

func (m *mockStore) CreatePost(_ context.Context, post *model.Post) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.nextID++
	post.ID = m.nextID
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockStore) GetPostByID(_ context.Context, id int64) (*model.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", id)
	}
	result := *post
	return &result, nil
}

func (m *mockStore) ListPosts(_ context.Context) ([]model.Post, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	result := make([]model.Post, 0, len(m.posts))
	for _, post := range m.posts {
		result = append(result, *post)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStore) UpdatePost(_ context.Context, post *model.Post) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.posts[post.ID]; !ok {
		return apperror.NotFound("post", post.ID)
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockStore) DeletePost(_ context.Context, id int64) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.posts[id]; !ok {
		return apperror.NotFound("post", id)
	}
	for _, pub := range m.publications {
		if pub.PostID == id {
			return repository.ErrForeignKeyViolation
		}
	}
	delete(m.posts, id)
	return nil
}

func (m *mockStore) references(pub *model.Publication) error {
	if _, ok := m.medias[pub.MediaID]; !ok {
		return repository.ErrForeignKeyViolation
	}
	if _, ok := m.posts[pub.PostID]; !ok {
		return repository.ErrForeignKeyViolation
	}
	return nil
}

func (m *mockStore) CreatePublication(_ context.Context, pub *model.Publication) error {
	if err := m.fail(); err != nil {
		return err
	}
	if err := m.references(pub); err != nil {
		return err
	}
	m.nextID++
	pub.ID = m.nextID
	stored := *pub
	m.publications[pub.ID] = &stored
	return nil
}

func (m *mockStore) GetPublicationByID(_ context.Context, id int64) (*model.Publication, error) {
	pub, ok := m.publications[id]
	if !ok {
		return nil, apperror.NotFound("publication", id)
	}
	result := *pub
	return &result, nil
}

func (m *mockStore) ListPublications(_ context.Context, f repository.PublicationFilter) ([]model.Publication, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	result := make([]model.Publication, 0, len(m.publications))
	for _, pub := range m.publications {
		if f.Before != nil && !pub.Date.Before(*f.Before) {
			continue
		}
		if f.After != nil && !pub.Date.After(*f.After) {
			continue
		}
		if f.NotBefore != nil && pub.Date.Before(*f.NotBefore) {
			continue
		}
		result = append(result, *pub)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID < result[j].ID
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *mockStore) UpdatePublication(_ context.Context, pub *model.Publication) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.publications[pub.ID]; !ok {
		return apperror.NotFound("publication", pub.ID)
	}
	if err := m.references(pub); err != nil {
		return err
	}
	stored := *pub
	m.publications[pub.ID] = &stored
	return nil
}

func (m *mockStore) DeletePublication(_ context.Context, id int64) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.publications[id]; !ok {
		return apperror.NotFound("publication", id)
	}
	delete(m.publications, id)
	return nil
}

var errDatabaseDown = errors.New("database is down")

// =========================================================================
// TEST HELPERS
// =========================================================================

// fixedNow is the wall clock every publication test runs at.
var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testServices struct {
	store        *mockStore
	medias       *MediaService
	posts        *PostService
	publications *PublicationService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	store := newMockStore()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	v := validation.New()

	medias := NewMediaService(store, v, logger)
	posts := NewPostService(store, v, logger)
	publications := NewPublicationService(store, medias, posts, v, logger)
	publications.now = func() time.Time { return fixedNow }

	return &testServices{
		store:        store,
		medias:       medias,
		posts:        posts,
		publications: publications,
	}
}

func (ts *testServices) mustMedia(t *testing.T, title, username string) int64 {
	t.Helper()
	m, err := ts.medias.Create(context.Background(), model.MediaInput{Title: title, Username: username})
	if err != nil {
		t.Fatalf("setup: create media: %v", err)
	}
	return m.ID
}

func (ts *testServices) mustPost(t *testing.T, title string) int64 {
	t.Helper()
	p, err := ts.posts.Create(context.Background(), model.PostInput{Title: title, Text: "body"})
	if err != nil {
		t.Fatalf("setup: create post: %v", err)
	}
	return p.ID
}

// mustPublication inserts directly into the store so past dates are allowed.
func (ts *testServices) mustPublication(t *testing.T, mediaID, postID int64, date time.Time) int64 {
	t.Helper()
	pub := &model.Publication{MediaID: mediaID, PostID: postID, Date: date}
	if err := ts.store.CreatePublication(context.Background(), pub); err != nil {
		t.Fatalf("setup: create publication: %v", err)
	}
	return pub.ID
}
