package content

import (
	"fmt"
	"slices"
	"strings"
)

// previewTechnologies is how many technologies the portfolio cards show.
const previewTechnologies = 3

type Result struct {
	Title string `toml:"title" json:"title"`
	Value string `toml:"value" json:"value"` // "80%", "10K+", "3 weeks" ...
	Icon  string `toml:"icon" json:"icon"`
}

type ProcessStep struct {
	Step        int    `toml:"step" json:"step"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	Image       string `toml:"image" json:"image,omitempty"`
}

type Testimonial struct {
	Quote     string `toml:"quote" json:"quote"`
	Author    string `toml:"author" json:"author"`
	Role      string `toml:"role" json:"role"`
	Company   string `toml:"company" json:"company"`
	AvatarURL string `toml:"avatar_url" json:"avatarUrl"`
}

type CaseStudy struct {
	ID             int               `toml:"id" json:"id"`
	Title          string            `toml:"title" json:"title"`
	Description    string            `toml:"description" json:"description"`
	Category       CaseStudyCategory `toml:"category" json:"category"`
	Technologies   []string          `toml:"technologies" json:"technologies"`
	ThumbnailImage string            `toml:"thumbnail_image" json:"thumbnailImage"`
	HeroImage      string            `toml:"hero_image" json:"heroImage"`
	Client         string            `toml:"client" json:"client"`
	Duration       string            `toml:"duration" json:"duration"`
	Year           string            `toml:"year" json:"year"`
	Challenge      string            `toml:"challenge" json:"challenge"`
	Solution       string            `toml:"solution" json:"solution"`
	Results        []Result          `toml:"results" json:"results"`
	Process        []ProcessStep     `toml:"process" json:"process"`
	Testimonial    *Testimonial      `toml:"testimonial" json:"testimonial,omitempty"`
	NextSteps      string            `toml:"next_steps" json:"nextSteps,omitempty"`
	Gallery        []string          `toml:"gallery" json:"gallery,omitempty"`
}

// CaseStudyPreview is the portfolio section card.
type CaseStudyPreview struct {
	ID             int               `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Category       CaseStudyCategory `json:"category"`
	Technologies   []string          `json:"technologies"`
	ThumbnailImage string            `json:"thumbnailImage"`
}

func (cs CaseStudy) RecordID() int {
	return cs.ID
}

func (cs CaseStudy) RecordCategory() string {
	return string(cs.Category)
}

func (cs CaseStudy) clone() CaseStudy {
	c := cs
	c.Technologies = slices.Clone(cs.Technologies)
	c.Results = slices.Clone(cs.Results)
	c.Process = slices.Clone(cs.Process)
	c.Gallery = slices.Clone(cs.Gallery)
	if cs.Testimonial != nil {
		t := *cs.Testimonial
		c.Testimonial = &t
	}
	return c
}

func (cs CaseStudy) Preview() CaseStudyPreview {
	technologies := cs.Technologies
	if len(technologies) > previewTechnologies {
		technologies = technologies[:previewTechnologies]
	}
	return CaseStudyPreview{
		ID:             cs.ID,
		Title:          cs.Title,
		Description:    cs.Description,
		Category:       cs.Category,
		Technologies:   slices.Clone(technologies),
		ThumbnailImage: cs.ThumbnailImage,
	}
}

func (cs CaseStudy) validate() error {
	if !cs.Category.Valid() {
		return fmt.Errorf("case study %d: %w: %q", cs.ID, ErrUnknownCategory, cs.Category)
	}
	for _, f := range []requiredField{
		{"title", cs.Title},
		{"description", cs.Description},
		{"challenge", cs.Challenge},
		{"solution", cs.Solution},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("case study %d: %w: %s", cs.ID, ErrMissingField, f.name)
		}
	}
	for _, r := range cs.Results {
		if !resultIcons[r.Icon] {
			return fmt.Errorf("case study %d: result %q: %w: %q", cs.ID, r.Title, ErrUnknownIcon, r.Icon)
		}
	}
	return nil
}

// misnumberedSteps lists the process steps whose number does not match their 1-based position.
func (cs CaseStudy) misnumberedSteps() []string {
	var out []string
	for i, s := range cs.Process {
		if s.Step != i+1 {
			out = append(out, fmt.Sprintf("step %d at position %d (%s)", s.Step, i+1, s.Title))
		}
	}
	return out
}
