package main

import (
	"slices"
	"strconv"
	"sync"
	"time"
)

// Note is the demo's only resource.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// State is shared by every request. The router never locks it, so it
// guards its own data.
type State struct {
	mu     sync.RWMutex
	nextID int64
	notes  map[int64]Note
	events map[string]int
}

func NewState() *State {
	return &State{
		nextID: 1,
		notes:  map[int64]Note{},
		events: map[string]int{},
	}
}

func (s *State) Add(n Note) Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID
	n.CreatedAt = time.Now().UTC()
	s.nextID++
	s.notes[n.ID] = n
	return n
}

func (s *State) Get(id int64) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	return n, ok
}

func (s *State) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.notes[id]
	delete(s.notes, id)
	return ok
}

// List returns notes ordered by id, optionally filtered by tag.
func (s *State) List(tag string, limit int) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if tag == "" || slices.Contains(n.Tags, tag) {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b Note) int { return int(a.ID - b.ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Track counts an event by type and returns the new total.
func (s *State) Track(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[kind]++
	return s.events[kind]
}

func (s *State) Events() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.events))
	for k, v := range s.events {
		out[k] = strconv.Itoa(v)
	}
	return out
}
