package chessboard

import "sync"

// BoardStateStore holds the canonical board. The orchestrator is its only
// writer; any number of readers may subscribe to replacements.
type BoardStateStore struct {
	mu          sync.RWMutex
	board       Board
	version     uint64
	nextID      int
	subscribers map[int]func(Board)
}

func NewBoardStateStore(initial Board) *BoardStateStore {
	return &BoardStateStore{
		board:       initial,
		subscribers: make(map[int]func(Board)),
	}
}

func (s *BoardStateStore) Board() Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Version counts publications, starting at zero for the initial board.
func (s *BoardStateStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Publish replaces the whole board and notifies subscribers.
func (s *BoardStateStore) Publish(b Board) {
	s.mu.Lock()
	s.board = b
	s.version++
	subscribers := make([]func(Board), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(b)
	}
}

// Subscribe registers fn for every future publication.
func (s *BoardStateStore) Subscribe(fn func(Board)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
