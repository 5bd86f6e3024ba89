package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rahulv/blog-platform/internal/apperror"
	"github.com/rahulv/blog-platform/internal/auth"
	"github.com/rahulv/blog-platform/internal/model"
	"github.com/rahulv/blog-platform/internal/service"
	"github.com/rahulv/blog-platform/internal/validate"
)

// BlogHandler exposes the blog CRUD endpoints.
//
// Every route here sits behind auth.RequireAuth, so by the time a handler
// runs the request context is guaranteed to carry a verified user id. The
// handler's job is strictly translation: decode the body, run the schema
// check, call the service, map the result to the wire contract.
type BlogHandler struct {
	blogs     *service.BlogService
	validator *validate.Validator
	logger    *slog.Logger
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blogs *service.BlogService, validator *validate.Validator, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		blogs:     blogs,
		validator: validator,
		logger:    logger,
	}
}

// idResponse is the success body for create and update.
type idResponse struct {
	ID int64 `json:"id"`
}

// HandleCreate publishes a new post.
//
// HTTP: POST /api/v1/blog
// BODY: {"title": "...", "content": "..."}
//
// The author is the token's subject — an authorId in the payload is
// silently ignored, never trusted. A body that fails the schema (missing
// title or content, or not JSON at all) gets the 411 response without
// touching the database.
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth; kept so the handler is safe to
		// mount bare in tests.
		writeJSON(w, http.StatusForbidden, messageResponse{Message: msgNotLoggedIn})
		return
	}

	var input validate.CreateBlogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeInputsIncorrect(w)
		return
	}
	if err := h.validator.Check(input); err != nil {
		writeInputsIncorrect(w)
		return
	}

	id, err := h.blogs.Create(r.Context(), userID, *input.Title, *input.Content)
	if err != nil {
		h.logger.Error("blog create failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

// HandleUpdate edits an existing post.
//
// HTTP: PUT /api/v1/blog
// BODY: {"id": 1, "title": "...", "content": "..."} — title and content
// optional; absent fields keep their current value.
//
// Any persistence failure, a nonexistent id included, comes back as the
// same opaque 400.
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input validate.UpdateBlogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeInputsIncorrect(w)
		return
	}
	if err := h.validator.Check(input); err != nil {
		writeInputsIncorrect(w)
		return
	}

	id, err := h.blogs.Update(r.Context(), *input.ID, input.Title, input.Content)
	if err != nil {
		h.logger.Warn("blog update failed",
			slog.Int64("id", *input.ID),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgSomethingWentWrong})
		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

// blogsResponse wraps the bulk listing.
type blogsResponse struct {
	Blogs []model.BlogView `json:"blogs"`
}

// HandleList returns every post with its author's name.
//
// HTTP: GET /api/v1/blog/bulk
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.blogs.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgSomethingWentWrong})
		return
	}

	writeJSON(w, http.StatusOK, blogsResponse{Blogs: views})
}

// blogResponse wraps the single-post detail. The pointer matters: an
// unknown id serialises as {"blog": null} with a 200, not a 404.
type blogResponse struct {
	Blog *model.BlogView `json:"blog"`
}

// HandleGetByID returns one post by its numeric id.
//
// HTTP: GET /api/v1/blog/{id}
func (h *BlogHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgSomethingWentWrong})
		return
	}

	view, err := h.blogs.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, blogResponse{Blog: view})
	case errors.Is(err, apperror.ErrNotFound):
		writeJSON(w, http.StatusOK, blogResponse{Blog: nil})
	default:
		h.logger.Error("blog get failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgSomethingWentWrong})
	}
}
