// Package drafts keeps each user's current draft in memory for the lifetime
// of the process.
package drafts

import (
	"sync"

	"github.com/vdracula/draft-bot/internal/ai"
)

// Draft is the text a user submitted plus the latest post generated from it.
type Draft struct {
	Text     string
	Style    ai.Style
	LastPost string
	HasPost  bool
}

type Store struct {
	mu    sync.RWMutex
	items map[int64]Draft
}

func NewStore() *Store {
	return &Store{items: make(map[int64]Draft)}
}

// Submit replaces any previous draft of the user, dropping its generated post.
func (s *Store) Submit(userID int64, text string) Draft {
	d := Draft{Text: text, Style: ai.StyleDefault}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = d
	return d
}

func (s *Store) Get(userID int64) (Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.items[userID]
	return d, ok
}

// SetLastPost records a successful generation. It reports false when the user
// has no draft.
func (s *Store) SetLastPost(userID int64, post string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.items[userID]
	if !ok {
		return false
	}
	d.LastPost = post
	d.HasPost = true
	s.items[userID] = d
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
