package content

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	BlogPostsFile   = "blog_posts.toml"
	CaseStudiesFile = "case_studies.toml"
)

//go:embed data/*.toml
var embeddedData embed.FS

// Library is the whole site content: blog posts and case studies.
type Library struct {
	Posts       *Store[BlogPost]
	CaseStudies *Store[CaseStudy]
}

type blogPostsDoc struct {
	Posts []BlogPost `toml:"posts"`
}

type caseStudiesDoc struct {
	CaseStudies []CaseStudy `toml:"case_studies"`
}

// LoadLibrary loads the content compiled into the binary.
func LoadLibrary() (*Library, error) {
	dataFS, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded content dir: %w", err)
	}
	return LoadLibraryFS(dataFS)
}

// LoadLibraryFS loads blog_posts.toml and case_studies.toml from fsys and
// validates them. All content problems found are returned together.
func LoadLibraryFS(fsys fs.FS) (*Library, error) {
	var postsDoc blogPostsDoc
	if err := decodeStrict(fsys, BlogPostsFile, &postsDoc); err != nil {
		return nil, err
	}
	var caseStudiesDoc caseStudiesDoc
	if err := decodeStrict(fsys, CaseStudiesFile, &caseStudiesDoc); err != nil {
		return nil, err
	}

	var validationErr error
	for _, p := range postsDoc.Posts {
		validationErr = multierr.Append(validationErr, p.validate())
	}
	for _, cs := range caseStudiesDoc.CaseStudies {
		validationErr = multierr.Append(validationErr, cs.validate())
		if misnumbered := cs.misnumberedSteps(); len(misnumbered) > 0 {
			log.Warnf("case study %d: process steps out of order: %s", cs.ID, strings.Join(misnumbered, "; "))
		}
	}

	posts, err := NewStore(postsDoc.Posts)
	validationErr = multierr.Append(validationErr, wrapIf(err, "posts"))
	caseStudies, err := NewStore(caseStudiesDoc.CaseStudies)
	validationErr = multierr.Append(validationErr, wrapIf(err, "case studies"))

	if validationErr != nil {
		return nil, fmt.Errorf("invalid content: %w", validationErr)
	}

	log.Debugf("content loaded: %d posts, %d case studies", posts.Len(), caseStudies.Len())

	return &Library{
		Posts:       posts,
		CaseStudies: caseStudies,
	}, nil
}

// decodeStrict decodes a TOML file and rejects keys that map to no field,
// so a typo in the content files fails loudly instead of silently dropping data.
func decodeStrict(fsys fs.FS, path string, v any) error {
	meta, err := toml.DecodeFS(fsys, path, v)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("decode %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func wrapIf(err error, what string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
