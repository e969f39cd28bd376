package posts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store. Authors must be added before they post.
type memStore struct {
	mu      sync.Mutex
	authors map[uuid.UUID]Author
	posts   map[uuid.UUID]Post
	clock   time.Time
	failAll error
}

func newMemStore() *memStore {
	return &memStore{
		authors: make(map[uuid.UUID]Author),
		posts:   make(map[uuid.UUID]Post),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) addAuthor(name string) Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := Author{ID: uuid.New(), Name: name, Email: name + "@example.com"}
	s.authors[a.ID] = a
	return a
}

func (s *memStore) sorted(keep func(Post) bool) []Post {
	out := make([]Post, 0)
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memStore) List(context.Context) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	return s.sorted(func(Post) bool { return true }), nil
}

func (s *memStore) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	return s.sorted(func(p Post) bool { return p.Author.ID == authorID }), nil
}

func (s *memStore) Get(_ context.Context, id uuid.UUID) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return &p, nil
}

func (s *memStore) Create(_ context.Context, authorID uuid.UUID, content string) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	author, ok := s.authors[authorID]
	if !ok {
		return nil, ErrAuthorNotFound
	}
	s.clock = s.clock.Add(time.Minute)
	p := Post{
		ID:        uuid.New(),
		Content:   content,
		Author:    author,
		Likes:     []string{},
		CreatedAt: s.clock,
		UpdatedAt: s.clock,
	}
	s.posts[p.ID] = p
	return &p, nil
}

func (s *memStore) DeleteOwned(_ context.Context, id, authorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return s.failAll
	}
	p, ok := s.posts[id]
	if !ok {
		return ErrPostNotFound
	}
	if p.Author.ID != authorID {
		return ErrNotAuthor
	}
	delete(s.posts, id)
	return nil
}
