package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portaldev/portal-admin/internal/content"
)

type postRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"cover_image"`
	HTMLContent string   `json:"html_content"`
}

func (req postRequest) toInput() content.PostInput {
	return content.PostInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Author:      req.Author,
		Tags:        req.Tags,
		CoverImage:  req.CoverImage,
		HTMLContent: req.HTMLContent,
	}
}

func blogErrorStatus(err error) int {
	switch {
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, content.ErrTitleRequired), errors.Is(err, content.ErrSlugTaken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ListPosts returns blog posts, optionally filtered by a search query.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	var posts []content.Post
	if q := r.URL.Query().Get("q"); q != "" {
		posts = h.posts.Search(q)
	} else {
		posts = h.posts.List()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"total": len(posts),
	})
}

// GetPost returns one post by ID or, with ?slug=, by slug.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, blogErrorStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// GetPostBySlug returns one post addressed by slug, bumping its view count.
func (h *Handlers) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, blogErrorStatus(err), err.Error())
		return
	}
	h.posts.RecordView(post.ID.String())
	respondJSON(w, http.StatusOK, post)
}

// CreatePost adds a new draft post.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	post, err := h.posts.Create(req.toInput())
	if err != nil {
		respondError(w, blogErrorStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// UpdatePost replaces a post's editable fields.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	post, err := h.posts.Update(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		respondError(w, blogErrorStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// PublishPost moves a post to published.
func (h *Handlers) PublishPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Publish(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, blogErrorStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// DeletePost removes a post.
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	h.posts.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
