package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/2beens/portfolio/internal/content"
)

var errInvalidContent = errors.New("content check failed")

// contentFS returns nil for the embedded content.
func contentFS(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}

func runCheck(w io.Writer, fsys fs.FS) error {
	var (
		library *content.Library
		err     error
	)
	if fsys == nil {
		library, err = content.LoadLibrary()
	} else {
		library, err = content.LoadLibraryFS(fsys)
	}
	if err != nil {
		fmt.Fprintf(w, "%s:\n  %s\n", errInvalidContent, strings.ReplaceAll(err.Error(), "; ", "\n  "))
		return errInvalidContent
	}

	fmt.Fprintf(w, "posts: %d\n", library.Posts.Len())
	for _, c := range library.Posts.Categories() {
		fmt.Fprintf(w, "  %-12s %d\n", c, len(library.Posts.ListByCategory(c)))
	}
	printGaps(w, "posts", postIDs(library))

	fmt.Fprintf(w, "case studies: %d\n", library.CaseStudies.Len())
	for _, c := range library.CaseStudies.Categories() {
		fmt.Fprintf(w, "  %-12s %d\n", c, len(library.CaseStudies.ListByCategory(c)))
	}
	printGaps(w, "case studies", caseStudyIDs(library))

	return nil
}

func postIDs(library *content.Library) []int {
	var ids []int
	for _, p := range library.Posts.ListByCategory(content.CategoryAll) {
		ids = append(ids, p.ID)
	}
	return ids
}

func caseStudyIDs(library *content.Library) []int {
	var ids []int
	for _, cs := range library.CaseStudies.ListByCategory(content.CategoryAll) {
		ids = append(ids, cs.ID)
	}
	return ids
}

// printGaps lists the ids missing between 1 and the highest id. Runs longer
// than two ids are collapsed to a range. Previous/next navigation stops at
// each of them.
func printGaps(w io.Writer, collection string, ids []int) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	var gaps []string
	prev := 0
	for _, id := range slices.Compact(sorted) {
		switch missing := id - prev - 1; {
		case missing == 1:
			gaps = append(gaps, fmt.Sprint(prev+1))
		case missing == 2:
			gaps = append(gaps, fmt.Sprint(prev+1), fmt.Sprint(prev+2))
		case missing > 2:
			gaps = append(gaps, fmt.Sprintf("%d-%d", prev+1, id-1))
		}
		prev = id
	}
	if len(gaps) > 0 {
		fmt.Fprintf(w, "  WARNING: %s ids missing: %s\n", collection, strings.Join(gaps, ", "))
	}
}
