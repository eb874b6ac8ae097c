package preview

import (
	"sync"
)

// PageStore tracks the current page of each previewed document, keyed by file
// name. State is transient and lives for the preview session only; a file
// seen for the first time starts at page 1.
type PageStore struct {
	mu    sync.Mutex
	pages map[string]int
}

func NewPageStore() *PageStore {
	return &PageStore{pages: make(map[string]int)}
}

// Current returns the stored page for file, defaulting to 1.
func (s *PageStore) Current(file string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pages[file]; ok && p >= 1 {
		return p
	}
	return 1
}

// Prev moves one page back, clamped at page 1, and persists the result.
func (s *PageStore) Prev(file string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pages[file]
	if p < 1 {
		p = 1
	}
	if p > 1 {
		p--
	}
	s.pages[file] = p
	return p
}

// Next moves one page forward, clamped at total, and persists the result.
func (s *PageStore) Next(file string, total int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pages[file]
	if p < 1 {
		p = 1
	}
	if p < total {
		p++
	}
	s.pages[file] = p
	return p
}

// Select jumps directly to page, clamped into [1, total], and persists it.
func (s *PageStore) Select(file string, page, total int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if total >= 1 && page > total {
		page = total
	}
	s.pages[file] = page
	return page
}

// Reset drops the stored page for file.
func (s *PageStore) Reset(file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, file)
}
