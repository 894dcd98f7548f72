package models

import (
	"encoding/json"
	"time"
)

// Post is one blog entry in the "posts" collection. Tags carries a
// JSON-encoded string array in a string field, matching the stored layout.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Tags        string    `json:"tags"`
	Images      []string  `json:"images,omitempty"`
	IsPublished bool      `json:"is_published"`
	Views       int64     `json:"views,omitempty"`
	AuthorIP    string    `json:"author_ip,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DecodedTags unpacks the JSON-encoded tag list. Malformed or empty tag
// data yields nil.
func (p *Post) DecodedTags() []string {
	if p.Tags == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(p.Tags), &tags); err != nil {
		return nil
	}
	return tags
}

// EncodeTags serializes a tag list into the stored string form.
func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}
