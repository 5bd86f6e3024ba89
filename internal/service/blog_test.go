package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/rahulv/blog-platform/internal/apperror"
	"github.com/rahulv/blog-platform/internal/model"
)

// =========================================================================
// MOCK REPOSITORY
// =========================================================================
//
// mockBlogRepo implements repository.BlogRepository in memory. The service
// doesn't know or care which implementation it gets — that's the point of
// the interface. The mock also records author names so the view projection
// can be exercised without a real JOIN.

type mockBlogRepo struct {
	blogs       map[int64]*model.Blog
	authorNames map[int64]string // authorID → display name
	nextID      int64
	failCreate  error // when set, Create returns this error
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{
		blogs:       make(map[int64]*model.Blog),
		authorNames: make(map[int64]string),
	}
}

func (m *mockBlogRepo) Create(_ context.Context, blog *model.Blog) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	m.nextID++
	blog.ID = m.nextID
	stored := *blog
	m.blogs[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) GetByID(_ context.Context, id int64) (*model.Blog, error) {
	blog, ok := m.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	result := *blog
	return &result, nil
}

func (m *mockBlogRepo) GetViewByID(_ context.Context, id int64) (*model.BlogView, error) {
	blog, ok := m.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	return &model.BlogView{
		ID:      blog.ID,
		Title:   blog.Title,
		Content: blog.Content,
		Author:  model.Author{Name: m.authorNames[blog.AuthorID]},
	}, nil
}

func (m *mockBlogRepo) ListViews(_ context.Context) ([]model.BlogView, error) {
	views := make([]model.BlogView, 0, len(m.blogs))
	for id := int64(1); id <= m.nextID; id++ {
		blog, ok := m.blogs[id]
		if !ok {
			continue
		}
		views = append(views, model.BlogView{
			ID:      blog.ID,
			Title:   blog.Title,
			Content: blog.Content,
			Author:  model.Author{Name: m.authorNames[blog.AuthorID]},
		})
	}
	return views, nil
}

func (m *mockBlogRepo) Update(_ context.Context, blog *model.Blog) error {
	if _, ok := m.blogs[blog.ID]; !ok {
		return apperror.NotFound("blog", blog.ID)
	}
	stored := *blog
	m.blogs[blog.ID] = &stored
	return nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func newTestBlogService(t *testing.T) (*BlogService, *mockBlogRepo) {
	t.Helper()
	repo := newMockBlogRepo()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewBlogService(repo, logger)
	return svc, repo
}

func strPtr(s string) *string { return &s }

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestBlogCreate_Success(t *testing.T) {
	svc, repo := newTestBlogService(t)

	id, err := svc.Create(context.Background(), 7, "Hello", "World")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == 0 {
		t.Error("Create() returned id 0")
	}

	stored := repo.blogs[id]
	if stored == nil {
		t.Fatal("Create() did not persist the blog")
	}
	if stored.AuthorID != 7 {
		t.Errorf("AuthorID = %d, want 7 (the authenticated identity)", stored.AuthorID)
	}
	if stored.Title != "Hello" || stored.Content != "World" {
		t.Errorf("stored = %+v, want title Hello / content World", stored)
	}
}

func TestBlogCreate_MissingAuthor(t *testing.T) {
	svc, repo := newTestBlogService(t)

	_, err := svc.Create(context.Background(), 0, "Hello", "World")
	if err == nil {
		t.Fatal("Create() should error without an authenticated author")
	}
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
	if len(repo.blogs) != 0 {
		t.Error("Create() must not insert when the author is missing")
	}
}

func TestBlogCreate_RepositoryFailure(t *testing.T) {
	svc, repo := newTestBlogService(t)
	repo.failCreate = errors.New("disk on fire")

	_, err := svc.Create(context.Background(), 7, "Hello", "World")
	if err == nil {
		t.Fatal("Create() should propagate repository failures")
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestBlogUpdate_BothFields(t *testing.T) {
	svc, repo := newTestBlogService(t)
	id, _ := svc.Create(context.Background(), 7, "old title", "old body")

	gotID, err := svc.Update(context.Background(), id, strPtr("new title"), strPtr("new body"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if gotID != id {
		t.Errorf("Update() id = %d, want %d", gotID, id)
	}

	stored := repo.blogs[id]
	if stored.Title != "new title" || stored.Content != "new body" {
		t.Errorf("stored = %+v, want both fields updated", stored)
	}
}

func TestBlogUpdate_PartialPayloadKeepsOtherField(t *testing.T) {
	svc, repo := newTestBlogService(t)
	id, _ := svc.Create(context.Background(), 7, "keep me", "old body")

	// nil title means "leave unchanged"
	if _, err := svc.Update(context.Background(), id, nil, strPtr("new body")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stored := repo.blogs[id]
	if stored.Title != "keep me" {
		t.Errorf("Title = %q, want unchanged %q", stored.Title, "keep me")
	}
	if stored.Content != "new body" {
		t.Errorf("Content = %q, want %q", stored.Content, "new body")
	}
}

func TestBlogUpdate_PreservesAuthor(t *testing.T) {
	svc, repo := newTestBlogService(t)
	id, _ := svc.Create(context.Background(), 7, "t", "c")

	// A different authenticated user updates the post (no ownership rule);
	// the author must stay the original creator.
	if _, err := svc.Update(context.Background(), id, strPtr("t2"), strPtr("c2")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if repo.blogs[id].AuthorID != 7 {
		t.Errorf("AuthorID = %d, want the original author 7", repo.blogs[id].AuthorID)
	}
}

func TestBlogUpdate_NotFound(t *testing.T) {
	svc, _ := newTestBlogService(t)

	_, err := svc.Update(context.Background(), 424242, strPtr("x"), strPtr("y"))
	if err == nil {
		t.Fatal("Update() should error on nonexistent ID")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestBlogUpdate_BadID(t *testing.T) {
	svc, _ := newTestBlogService(t)

	_, err := svc.Update(context.Background(), 0, strPtr("x"), nil)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// GET / LIST TESTS
// =========================================================================

func TestBlogGet_Success(t *testing.T) {
	svc, repo := newTestBlogService(t)
	repo.authorNames[7] = "ada"
	id, _ := svc.Create(context.Background(), 7, "Hello", "World")

	view, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if view.Author.Name != "ada" {
		t.Errorf("Author.Name = %q, want %q", view.Author.Name, "ada")
	}
}

func TestBlogGet_NotFound(t *testing.T) {
	svc, _ := newTestBlogService(t)

	_, err := svc.Get(context.Background(), 99999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestBlogGet_NonPositiveIDIsNotFound(t *testing.T) {
	svc, _ := newTestBlogService(t)

	// Negative and zero ids are just ids no post has: they must surface as
	// the typed not-found (which the HTTP layer renders as a null blog),
	// never as a validation failure.
	for _, id := range []int64{-5, 0} {
		_, err := svc.Get(context.Background(), id)
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("Get(%d) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestBlogList_ReflectsCreatedPosts(t *testing.T) {
	svc, repo := newTestBlogService(t)
	repo.authorNames[7] = "ada"

	id1, _ := svc.Create(context.Background(), 7, "first", "a")
	id2, _ := svc.Create(context.Background(), 7, "second", "b")

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("List() returned %d views, want 2", len(views))
	}
	if views[0].ID != id1 || views[1].ID != id2 {
		t.Errorf("List() order = [%d %d], want [%d %d]", views[0].ID, views[1].ID, id1, id2)
	}
}

func TestBlogList_Empty(t *testing.T) {
	svc, _ := newTestBlogService(t)

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(views) != 0 {
		t.Errorf("List() returned %d views, want 0", len(views))
	}
}
