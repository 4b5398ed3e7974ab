package memory

import (
	"postboard/domain/entities"
	"postboard/domain/services"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Storage keeps posts in insertion order in memory. It is safe for
// concurrent use.
type Storage struct {
	mu    sync.RWMutex
	posts []entities.Post
}

var _ services.PostStore = (*Storage)(nil)

func NewStorage() *Storage {
	return &Storage{
		posts: []entities.Post{},
	}
}

// fold lowercases s without regard to the process locale. A Caser keeps
// state between calls, so each call gets its own.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

func (s *Storage) ListPosts(opts services.ListOptions) []entities.Post {
	s.mu.RLock()
	posts := slices.Clone(s.posts)
	s.mu.RUnlock()

	if !opts.SortField.Valid() {
		return posts
	}

	type keyed struct {
		key  string
		post entities.Post
	}
	entries := make([]keyed, len(posts))
	for i, p := range posts {
		v := p.Title
		if opts.SortField == services.SortByContent {
			v = p.Content
		}
		entries[i] = keyed{fold(v), p}
	}

	desc := opts.Direction == services.Descending
	slices.SortStableFunc(entries, func(a, b keyed) int {
		if desc {
			return strings.Compare(b.key, a.key)
		}
		return strings.Compare(a.key, b.key)
	})

	for i, e := range entries {
		posts[i] = e.post
	}
	return posts
}

func (s *Storage) StorePost(title, content string) (entities.Post, error) {
	if err := services.ValidatePost(title, content); err != nil {
		return entities.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := entities.NewPost(s.nextID(), title, content)
	s.posts = append(s.posts, *post)
	return *post, nil
}

// nextID derives the id from the current maximum, so deleting the newest
// post frees its id for the next one.
func (s *Storage) nextID() int {
	highest := 0
	for _, p := range s.posts {
		if p.Id > highest {
			highest = p.Id
		}
	}
	return highest + 1
}

func (s *Storage) SearchPosts(query services.SearchQuery) []entities.Post {
	title := fold(query.Title)
	content := fold(query.Content)

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := []entities.Post{}
	for _, p := range s.posts {
		if (title != "" && strings.Contains(fold(p.Title), title)) ||
			(content != "" && strings.Contains(fold(p.Content), content)) {
			res = append(res, p)
		}
	}
	return res
}

func (s *Storage) EditPost(id int, patch entities.PostPatch) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return entities.Post{}, &services.NotFoundError{ID: id}
	}

	patch.Apply(&s.posts[i])
	return s.posts[i], nil
}

func (s *Storage) DeletePost(id int) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return entities.Post{}, &services.NotFoundError{ID: id}
	}

	post := s.posts[i]
	s.posts = slices.Delete(s.posts, i, i+1)
	return post, nil
}

func (s *Storage) indexOf(id int) int {
	return slices.IndexFunc(s.posts, func(p entities.Post) bool {
		return p.Id == id
	})
}
