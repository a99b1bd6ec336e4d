package pdfs

import (
	"slices"
	"sync"
)

// TemplateStore is a concurrency-safe registry of named templates
// T: Concrete Template Type -> e.g. a style preset
type TemplateStore[T any] struct {
	mu        sync.RWMutex
	templates map[string]T
}

func NewTemplateStore[T any]() *TemplateStore[T] {
	return &TemplateStore[T]{templates: make(map[string]T)}
}

func (s *TemplateStore[T]) Store(key string, template T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[key] = template
}

func (s *TemplateStore[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[key]
	return t, ok
}

func (s *TemplateStore[T]) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, key)
}

// Keys returns the stored keys in sorted order
func (s *TemplateStore[T]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.templates))
	for k := range s.templates {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *TemplateStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates)
}
