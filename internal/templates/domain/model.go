package domain

import "time"

// Template is a reusable document identified by its slug. The stored file
// name drives content-type and extension inference; Engine selects the
// renderer used by the merge pipeline.
type Template struct {
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Engine      string    `json:"engine"`
	Group       *string   `json:"group,omitempty"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	Content     []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListFilter narrows and orders template listings.
type ListFilter struct {
	Slug   string // exact match
	Search string // case-insensitive substring on description
}
