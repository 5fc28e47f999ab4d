// Package content implements the portal's blog post management.
package content

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Post status constants
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusReview    = "review"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrSlugTaken     = errors.New("slug already in use")
	ErrNotFound      = errors.New("post not found")
)

// Post is a single blog entry.
type Post struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags,omitempty"`
	Status      string    `json:"status"`
	Views       int       `json:"views"`
	CoverImage  string    `json:"cover_image,omitempty"`
	HTMLContent string    `json:"html_content,omitempty"`
	ReadMinutes int       `json:"read_minutes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// PostInput holds the editable fields of a post.
type PostInput struct {
	Title       string
	Slug        string
	Excerpt     string
	Author      string
	Tags        []string
	CoverImage  string
	HTMLContent string
}

// BlogStore is the in-memory post repository. Safe for concurrent use.
type BlogStore struct {
	mu    sync.RWMutex
	posts []Post
	now   func() time.Time
}

// NewBlogStore creates an empty blog store.
func NewBlogStore() *BlogStore {
	return &BlogStore{now: time.Now}
}

// Create adds a new draft post. A missing slug is derived from the title;
// duplicate slugs are rejected.
func (s *BlogStore) Create(input PostInput) (*Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	slug := input.Slug
	if slug == "" {
		slug = Slugify(title)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return nil, ErrSlugTaken
		}
	}

	now := s.now()
	post := Post{
		ID:          uuid.New(),
		Title:       title,
		Slug:        slug,
		Excerpt:     input.Excerpt,
		Author:      input.Author,
		Tags:        input.Tags,
		Status:      StatusDraft,
		CoverImage:  input.CoverImage,
		HTMLContent: input.HTMLContent,
		ReadMinutes: ReadMinutes(input.HTMLContent),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.posts = append([]Post{post}, s.posts...)
	return &post, nil
}

// Update replaces the editable fields of a post. Status and views are
// untouched; the read time is recomputed.
func (s *BlogStore) Update(id string, input PostInput) (*Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID.String() != id {
			continue
		}
		p := &s.posts[i]
		p.Title = title
		if input.Slug != "" {
			p.Slug = input.Slug
		}
		p.Excerpt = input.Excerpt
		p.Author = input.Author
		p.Tags = input.Tags
		p.CoverImage = input.CoverImage
		p.HTMLContent = input.HTMLContent
		p.ReadMinutes = ReadMinutes(input.HTMLContent)
		p.UpdatedAt = s.now()
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

// Publish moves a post to published and stamps PublishedAt.
func (s *BlogStore) Publish(id string) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID.String() == id {
			now := s.now()
			s.posts[i].Status = StatusPublished
			s.posts[i].PublishedAt = &now
			s.posts[i].UpdatedAt = now
			cp := s.posts[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes a post. Deleting an absent ID is not an error.
func (s *BlogStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID.String() == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return
		}
	}
}

// Get returns a post by ID.
func (s *BlogStore) Get(id string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.posts {
		if s.posts[i].ID.String() == id {
			cp := s.posts[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// GetBySlug returns a post by its slug.
func (s *BlogStore) GetBySlug(slug string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.posts {
		if s.posts[i].Slug == slug {
			cp := s.posts[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List returns every post, newest first.
func (s *BlogStore) List() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Search matches the query against title, excerpt, author and tags,
// case-insensitively.
func (s *BlogStore) Search(query string) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		if matchPost(p, query) {
			out = append(out, p)
		}
	}
	return out
}

// RecordView bumps a post's view counter. Unknown IDs are ignored.
func (s *BlogStore) RecordView(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID.String() == id {
			s.posts[i].Views++
			return
		}
	}
}

// TotalViews sums view counters across all posts.
func (s *BlogStore) TotalViews() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, p := range s.posts {
		total += p.Views
	}
	return total
}

// Seed loads pre-existing posts. Intended for startup fixtures.
func (s *BlogStore) Seed(posts []Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, posts...)
}

func matchPost(p Post, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Excerpt), query) ||
		strings.Contains(strings.ToLower(p.Author), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-safe slug.
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

var tagStrip = regexp.MustCompile(`<[^>]*>`)

// ReadMinutes estimates reading time at roughly 200 words per minute,
// minimum one minute for non-empty content.
func ReadMinutes(htmlContent string) int {
	text := tagStrip.ReplaceAllString(htmlContent, " ")
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	minutes := (words + 199) / 200
	return minutes
}
