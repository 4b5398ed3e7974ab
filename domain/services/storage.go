package services

import (
	"errors"
	"fmt"
	"postboard/domain/entities"
	"strings"
)

// PostStore owns the collection of posts. Implementations hand out copies
// only, so a returned post can never be used to mutate the store.
type PostStore interface {
	ListPosts(opts ListOptions) []entities.Post
	StorePost(title, content string) (entities.Post, error)
	SearchPosts(query SearchQuery) []entities.Post
	EditPost(id int, patch entities.PostPatch) (entities.Post, error)
	DeletePost(id int) (entities.Post, error)
}

type SortField string

const (
	SortByTitle   SortField = "title"
	SortByContent SortField = "content"
)

// Valid reports whether posts can be sorted by f. Any other value leaves
// the listing in insertion order.
func (f SortField) Valid() bool {
	return f == SortByTitle || f == SortByContent
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type ListOptions struct {
	SortField SortField
	Direction Direction
}

// SearchQuery holds case-insensitive substring queries. An empty query never
// matches on its field.
type SearchQuery struct {
	Title   string
	Content string
}

var (
	ErrInvalidPost  = errors.New("invalid post")
	ErrPostNotFound = errors.New("post not found")
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing post fields: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPost
}

type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrPostNotFound
}

// ValidatePost checks the fields required to create a post.
func ValidatePost(title, content string) error {
	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
