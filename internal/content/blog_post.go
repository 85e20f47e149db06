package content

import (
	"fmt"
	"strings"
)

type Author struct {
	Name      string `toml:"name" json:"name"`
	AvatarURL string `toml:"avatar_url" json:"avatarUrl"`
	Role      string `toml:"role" json:"role"`
}

type BlogPost struct {
	ID       int          `toml:"id" json:"id"`
	Title    string       `toml:"title" json:"title"`
	Summary  string       `toml:"summary" json:"summary"`
	Date     string       `toml:"date" json:"date"` // display only, never parsed
	ImageURL string       `toml:"image_url" json:"imageUrl"`
	Category BlogCategory `toml:"category" json:"category"`
	ReadTime string       `toml:"read_time" json:"readTime"`
	Content  string       `toml:"content" json:"content"` // markdown
	Author   Author       `toml:"author" json:"author"`
}

// BlogPostPreview is the blog section card: everything but the body.
type BlogPostPreview struct {
	ID       int          `json:"id"`
	Title    string       `json:"title"`
	Summary  string       `json:"summary"`
	Date     string       `json:"date"`
	ImageURL string       `json:"imageUrl"`
	Category BlogCategory `json:"category"`
	ReadTime string       `json:"readTime"`
	Author   Author       `json:"author"`
}

func (p BlogPost) RecordID() int {
	return p.ID
}

func (p BlogPost) RecordCategory() string {
	return string(p.Category)
}

// BlogPost holds no reference types, a value copy is a deep copy.
func (p BlogPost) clone() BlogPost {
	return p
}

func (p BlogPost) Preview() BlogPostPreview {
	return BlogPostPreview{
		ID:       p.ID,
		Title:    p.Title,
		Summary:  p.Summary,
		Date:     p.Date,
		ImageURL: p.ImageURL,
		Category: p.Category,
		ReadTime: p.ReadTime,
		Author:   p.Author,
	}
}

func (p BlogPost) validate() error {
	if !p.Category.Valid() {
		return fmt.Errorf("post %d: %w: %q", p.ID, ErrUnknownCategory, p.Category)
	}
	for _, f := range []requiredField{
		{"title", p.Title},
		{"summary", p.Summary},
		{"content", p.Content},
		{"author.name", p.Author.Name},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("post %d: %w: %s", p.ID, ErrMissingField, f.name)
		}
	}
	return nil
}
