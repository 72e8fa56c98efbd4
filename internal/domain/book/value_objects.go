package book

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"library-circulation/internal/pkg/errs"
)

var (
	ErrInvalidISBN     = errs.Mark(errors.New("isbn must be 1-20 characters without whitespace"), errs.ErrInvalidInput)
	ErrInvalidTitle    = errs.Mark(errors.New("title must be 1-300 characters"), errs.ErrInvalidInput)
	ErrInvalidAuthors  = errs.Mark(errors.New("authors must contain at least one non-empty entry"), errs.ErrInvalidInput)
	ErrInvalidTag      = errs.Mark(errors.New("tags must be non-empty and at most 50 characters"), errs.ErrInvalidInput)
	ErrInvalidSynopsis = errs.Mark(errors.New("synopsis must be at most 4000 characters"), errs.ErrInvalidInput)
	ErrInvalidEdition  = errs.Mark(errors.New("edition must be at most 100 characters"), errs.ErrInvalidInput)
)

const (
	maxISBNLength     = 20
	maxTitleLength    = 300
	maxAuthors        = 20
	maxTags           = 30
	maxTagLength      = 50
	maxSynopsisLength = 4000
	maxEditionLength  = 100
)

// ISBN is the unique, immutable title identifier.
type ISBN string

func NewISBN(s string) (ISBN, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxISBNLength {
		return "", ErrInvalidISBN
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", ErrInvalidISBN
	}
	return ISBN(s), nil
}

func (i ISBN) String() string {
	return string(i)
}

// Metadata is the descriptive part of a book. It carries no inventory.
type Metadata struct {
	Title    string
	Authors  []string
	Edition  *string
	Synopsis *string
	Tags     []string
}

func NewMetadata(title string, authors []string, edition, synopsis *string, tags []string) (Metadata, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return Metadata{}, ErrInvalidTitle
	}

	cleanAuthors := make([]string, 0, len(authors))
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			cleanAuthors = append(cleanAuthors, a)
		}
	}
	if len(cleanAuthors) == 0 || len(cleanAuthors) > maxAuthors {
		return Metadata{}, ErrInvalidAuthors
	}

	if len(tags) > maxTags {
		return Metadata{}, ErrInvalidTag
	}
	cleanTags := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || utf8.RuneCountInString(t) > maxTagLength {
			return Metadata{}, ErrInvalidTag
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		cleanTags = append(cleanTags, t)
	}

	edition = trimOptional(edition)
	if edition != nil && utf8.RuneCountInString(*edition) > maxEditionLength {
		return Metadata{}, ErrInvalidEdition
	}
	synopsis = trimOptional(synopsis)
	if synopsis != nil && utf8.RuneCountInString(*synopsis) > maxSynopsisLength {
		return Metadata{}, ErrInvalidSynopsis
	}

	return Metadata{
		Title:    title,
		Authors:  cleanAuthors,
		Edition:  edition,
		Synopsis: synopsis,
		Tags:     cleanTags,
	}, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
