package cms

import (
	"net/url"
	"strconv"
	"time"
)

// AgendaEvent is an event as served by the agenda endpoints.
type AgendaEvent struct {
	ID          int        `json:"id"                    yaml:"id"`
	Slug        string     `json:"slug"                  yaml:"slug"`
	Title       string     `json:"title"                 yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Content     string     `json:"content,omitempty"     yaml:"content,omitempty"`
	Location    string     `json:"location,omitempty"    yaml:"location,omitempty"`
	Category    string     `json:"category,omitempty"    yaml:"category,omitempty"`
	Status      string     `json:"status,omitempty"      yaml:"status,omitempty"`
	StartDate   time.Time  `json:"start_date"            yaml:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"    yaml:"end_date,omitempty"`
	AllDay      bool       `json:"all_day,omitempty"     yaml:"all_day,omitempty"`
	Image       *Media     `json:"image,omitempty"       yaml:"image,omitempty"`
	URL         string     `json:"url,omitempty"         yaml:"url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"  yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"  yaml:"updated_at,omitempty"`
}

// AgendaEventsParams filters GET /agenda.
type AgendaEventsParams struct {
	Status   string
	Upcoming bool
	Category string
	// Limit is sent when non-nil, including zero.
	Limit *int
}

// ToValues converts the params to query values. Unset filters are omitted.
func (p *AgendaEventsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Status != "" {
		values.Set("status", p.Status)
	}

	if p.Upcoming {
		values.Set("upcoming", "1")
	}

	if p.Category != "" {
		values.Set("category", p.Category)
	}

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}

	return values
}

// AgendaEventsResponse is the body of GET /agenda.
type AgendaEventsResponse struct {
	Data []AgendaEvent   `json:"data"           yaml:"data"`
	Meta *PaginationMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// PaginationMeta describes the position of a list page.
type PaginationMeta struct {
	CurrentPage int `json:"current_page" yaml:"current_page"`
	LastPage    int `json:"last_page"    yaml:"last_page"`
	PerPage     int `json:"per_page"     yaml:"per_page"`
	Total       int `json:"total"        yaml:"total"`
}
