package blog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type repoStub struct {
	posts map[uuid.UUID]*Post
}

func newRepoStub() *repoStub {
	return &repoStub{posts: map[uuid.UUID]*Post{}}
}

func (r *repoStub) Create(_ context.Context, p *Post) error {
	for _, existing := range r.posts {
		if existing.Slug == p.Slug {
			return ErrSlugTaken
		}
	}
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *repoStub) GetBySlug(_ context.Context, slug string) (*Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *repoStub) List(_ context.Context, publishedOnly bool) ([]*Post, error) {
	var out []*Post
	for _, p := range r.posts {
		if publishedOnly && !p.Published {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *repoStub) Update(_ context.Context, p *Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return ErrPostNotFound
	}
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *repoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func TestCreateRendersMarkdown(t *testing.T) {
	svc := NewService(newRepoStub())

	p, err := svc.Create(context.Background(), CreateRequest{
		Title:        "Buying Your First Turboprop",
		BodyMarkdown: "# Engines\n\nSome **bold** advice.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(p.BodyHTML, "<h1") {
		t.Errorf("heading not rendered: %s", p.BodyHTML)
	}
	if !strings.Contains(p.BodyHTML, "<strong>bold</strong>") {
		t.Errorf("emphasis not rendered: %s", p.BodyHTML)
	}
	if p.Slug != "buying-your-first-turboprop" {
		t.Errorf("slug not derived from title: %s", p.Slug)
	}
}

func TestUpdateRerendersBody(t *testing.T) {
	svc := NewService(newRepoStub())
	p, _ := svc.Create(context.Background(), CreateRequest{Title: "Annual Inspections", BodyMarkdown: "old"})

	body := "new *text*"
	updated, err := svc.Update(context.Background(), p.Slug, UpdateRequest{BodyMarkdown: &body})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(updated.BodyHTML, "<em>text</em>") {
		t.Errorf("body not re-rendered: %s", updated.BodyHTML)
	}

	if err := svc.Delete(context.Background(), p.Slug); err != nil {
		t.Fatalf("delete by slug failed: %v", err)
	}
	if _, err := svc.Update(context.Background(), p.Slug, UpdateRequest{}); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound after delete, got %v", err)
	}
}

func TestPublishedVisibility(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), CreateRequest{Title: "Draft Post", BodyMarkdown: "x"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	published, err := svc.Create(context.Background(), CreateRequest{Title: "Live Post", BodyMarkdown: "x", Published: true})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	t.Run("public list hides drafts", func(t *testing.T) {
		posts, err := svc.List(context.Background(), true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(posts) != 1 || posts[0].ID != published.ID {
			t.Errorf("expected only the published post, got %d posts", len(posts))
		}
	})

	t.Run("admin list shows all", func(t *testing.T) {
		posts, err := svc.List(context.Background(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(posts) != 2 {
			t.Errorf("expected both posts, got %d", len(posts))
		}
	})

	t.Run("draft invisible by slug", func(t *testing.T) {
		if _, err := svc.GetPublishedBySlug(context.Background(), "draft-post"); !errors.Is(err, ErrPostNotFound) {
			t.Errorf("expected ErrPostNotFound, got %v", err)
		}
	})

	t.Run("published visible by slug", func(t *testing.T) {
		p, err := svc.GetPublishedBySlug(context.Background(), "live-post")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != published.ID {
			t.Error("got the wrong post")
		}
	})
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Buying Your First Turboprop": "buying-your-first-turboprop",
		"King Air 350i: A Review":     "king-air-350i-a-review",
		"  Spaces  Everywhere  ":      "spaces-everywhere",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
