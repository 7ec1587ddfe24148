package cms

import (
	"net/url"
	"strconv"
	"time"
)

// Post is a blog post as served by the posts endpoints.
type Post struct {
	ID            int        `json:"id"                       yaml:"id"`
	Slug          string     `json:"slug"                     yaml:"slug"`
	Title         string     `json:"title"                    yaml:"title"`
	Excerpt       string     `json:"excerpt,omitempty"        yaml:"excerpt,omitempty"`
	Content       string     `json:"content,omitempty"        yaml:"content,omitempty"`
	FeaturedImage *Media     `json:"featured_image,omitempty" yaml:"featured_image,omitempty"`
	Author        string     `json:"author,omitempty"         yaml:"author,omitempty"`
	Category      string     `json:"category,omitempty"       yaml:"category,omitempty"`
	Tags          []string   `json:"tags,omitempty"           yaml:"tags,omitempty"`
	Status        string     `json:"status,omitempty"         yaml:"status,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"   yaml:"published_at,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"     yaml:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"     yaml:"updated_at,omitempty"`
}

// PostsParams filters GET /posts.
type PostsParams struct {
	Category string
	Tag      string
	Search   string
	Page     int
	Limit    int
}

// ToValues converts the params to query values.
func (p *PostsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Category != "" {
		values.Set("category", p.Category)
	}

	if p.Tag != "" {
		values.Set("tag", p.Tag)
	}

	if p.Search != "" {
		values.Set("search", p.Search)
	}

	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	return values
}

// PostsResponse is the body of GET /posts.
type PostsResponse struct {
	Data []Post          `json:"data"           yaml:"data"`
	Meta *PaginationMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}
