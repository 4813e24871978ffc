package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VinicciusWirz/social-postify/internal/apperror"
	"github.com/VinicciusWirz/social-postify/internal/model"
)

func TestPostCreate(t *testing.T) {
	tests := []struct {
		name      string
		input     model.PostInput
		wantErr   error
		wantImage *string
	}{
		{
			name:  "without image",
			input: model.PostInput{Title: "Why you should have a guinea pig?", Text: "https://www.guineapigs.com/why-you-should-guinea"},
		},
		{
			name:      "with image",
			input:     model.PostInput{Title: "t", Text: "x", Image: "https://example.com/pig.png"},
			wantImage: optional("https://example.com/pig.png"),
		},
		{
			name:  "blank image means none",
			input: model.PostInput{Title: "t", Text: "x", Image: "   "},
		},
		{
			name:    "image is not a URL",
			input:   model.PostInput{Title: "t", Text: "x", Image: "not a url"},
			wantErr: apperror.ErrValidation,
		},
		{
			name:    "missing text",
			input:   model.PostInput{Title: "t"},
			wantErr: apperror.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServices(t)

			post, err := ts.posts.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			switch {
			case tt.wantImage == nil && post.Image != nil:
				t.Errorf("Image = %q, want none", *post.Image)
			case tt.wantImage != nil && (post.Image == nil || *post.Image != *tt.wantImage):
				t.Errorf("Image = %v, want %q", post.Image, *tt.wantImage)
			}
		})
	}
}

func TestPostRoundTrip(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	created, err := ts.posts.Create(ctx, model.PostInput{Title: "t", Text: "x", Image: "https://example.com/a.png"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := ts.posts.FindOne(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindOne() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("FindOne() returned %d items, want 1", len(found))
	}
	got := found[0]
	if got.ID != created.ID || got.Title != "t" || got.Text != "x" || got.Image == nil || *got.Image != "https://example.com/a.png" {
		t.Errorf("FindOne() = %+v, want %+v", got, created)
	}
}

func TestPostUpdate_ClearsImage(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	created, err := ts.posts.Create(ctx, model.PostInput{Title: "t", Text: "x", Image: "https://example.com/a.png"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := ts.posts.Update(ctx, created.ID, model.PostInput{Title: "t2", Text: "x2"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "t2" || updated.Text != "x2" || updated.Image != nil {
		t.Errorf("Update() = %+v", updated)
	}
	if ts.store.posts[created.ID].Image != nil {
		t.Error("stored image should be cleared")
	}

	if _, err := ts.posts.Update(ctx, created.ID+100, model.PostInput{Title: "t", Text: "x"}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestPostFindAll_StoreError(t *testing.T) {
	ts := newTestServices(t)
	ts.store.failNext = errDatabaseDown

	if _, err := ts.posts.FindAll(context.Background()); !errors.Is(err, errDatabaseDown) {
		t.Errorf("FindAll() error = %v, want wrapped store error", err)
	}
}

func TestPostRemove(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	media := ts.mustMedia(t, "Instagram", "@postify")
	used := ts.mustPost(t, "used")
	free := ts.mustPost(t, "free")
	ts.mustPublication(t, media, used, fixedNow.Add(-time.Hour))

	if _, err := ts.posts.Remove(ctx, used); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Remove(referenced) error = %v, want ErrForbidden", err)
	}

	msg, err := ts.posts.Remove(ctx, free)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if msg != "Post 3 deleted" {
		t.Errorf("Remove() = %q", msg)
	}

	if _, err := ts.posts.Remove(ctx, free); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Remove(deleted) error = %v, want ErrNotFound", err)
	}
}
