// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// The service accepts primitives and returns domain values and typed errors
// (apperror) — it has zero knowledge of HTTP. The handler translates domain
// errors into the wire contract's status codes.
//
// DEPENDENCY INJECTION:
// BlogService takes a repository.BlogRepository (interface), not a concrete
// *sqlite.DB. Tests inject an in-memory mock; production wiring in
// server.go injects the SQLite pool. The service doesn't import the sqlite
// package at all.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahulv/blog-platform/internal/apperror"
	"github.com/rahulv/blog-platform/internal/model"
	"github.com/rahulv/blog-platform/internal/repository"
)

// BlogService handles business logic for blog posts.
type BlogService struct {
	repo   repository.BlogRepository
	logger *slog.Logger
}

// NewBlogService creates a BlogService.
func NewBlogService(repo repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		repo:   repo,
		logger: logger,
	}
}

// Create publishes a new post and returns its database-assigned id.
//
// authorID is the verified identity from the request token — never anything
// the client put in the payload. The handler has already schema-checked the
// payload, so title and content arrive here present (possibly empty).
func (s *BlogService) Create(ctx context.Context, authorID int64, title, content string) (int64, error) {
	if authorID <= 0 {
		return 0, apperror.Unauthorized("missing authenticated author")
	}

	blog := &model.Blog{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.Int64("authorID", authorID),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("service/blog: creating blog: %w", err)
	}

	s.logger.Info("blog created",
		slog.Int64("id", blog.ID),
		slog.Int64("authorID", authorID),
	)

	return blog.ID, nil
}

// Update modifies an existing post's title and/or content.
//
// STRATEGY: fetch then update. The fetch confirms the post exists (yielding
// a typed not-found otherwise) and gives us the current values to merge the
// partial payload into — a nil title or content means "leave unchanged".
//
// There is deliberately NO ownership check here: any authenticated user may
// update any post by id. The author id stays untouched either way.
func (s *BlogService) Update(ctx context.Context, id int64, title, content *string) (int64, error) {
	if id <= 0 {
		return 0, apperror.ValidationFailed("id", "blog id must be positive")
	}

	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if title != nil {
		blog.Title = *title
	}
	if content != nil {
		blog.Content = *content
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		s.logger.Error("failed to update blog",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("service/blog: updating blog %d: %w", id, err)
	}

	s.logger.Info("blog updated", slog.Int64("id", id))

	return blog.ID, nil
}

// Get returns the detail projection (post + author name) for the given id.
//
// A missing post surfaces as apperror.ErrNotFound; the handler maps that to
// 200 with a null blog. Zero and negative ids take the same path — the
// lookup finds nothing and the caller gets the typed not-found, exactly as
// for any other absent id.
func (s *BlogService) Get(ctx context.Context, id int64) (*model.BlogView, error) {
	view, err := s.repo.GetViewByID(ctx, id)
	if err != nil {
		// not-found is a normal outcome here, not a failure — let the typed
		// error propagate without logging
		return nil, err
	}

	return view, nil
}

// List returns every post with its author's name attached.
// No pagination or filtering — the bulk endpoint serves the whole set.
func (s *BlogService) List(ctx context.Context) ([]model.BlogView, error) {
	views, err := s.repo.ListViews(ctx)
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service/blog: listing blogs: %w", err)
	}

	return views, nil
}
