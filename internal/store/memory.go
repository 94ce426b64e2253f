// internal/store/memory.go
//
// Results recording for finished runs.
// Only terminal outcomes (won / time expired) are recorded; game state itself
// always lives in the client-held token and is never stored here.
//
// Characteristics of the in-memory recorder:
//   - Results keyed by run ID; a repeated run ID is ignored.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNoRunID is returned when recording a result without a run ID.
var ErrNoRunID = errors.New("store: result has no run id")

// Result is one finished run.
type Result struct {
	RunID      string    `json:"runId"`
	Outcome    string    `json:"outcome"` // "victory" | "time_expired"
	Level      int       `json:"level"`   // 1-based level the run ended on
	Moves      int       `json:"moves"`   // moves on that level
	ElapsedMs  int64     `json:"elapsedMs,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Recorder defines the results sink.
// Implementations may be backed by memory (this file) or SQLite (sqlite.go).
type Recorder interface {
	// Record stores r once; later records with the same RunID are ignored.
	Record(ctx context.Context, r Result) error

	// Top returns the best victories: fewest moves first, then earliest.
	Top(ctx context.Context, limit int) ([]Result, error)
}

// memory is an in-memory map-based Recorder implementation.
type memory struct {
	mu      sync.RWMutex      // guards results
	results map[string]Result // keyed by RunID
}

// NewMemoryRecorder constructs a new in-memory Recorder.
func NewMemoryRecorder() Recorder {
	return &memory{results: make(map[string]Result)}
}

func (m *memory) Record(ctx context.Context, r Result) error {
	if r.RunID == "" {
		return ErrNoRunID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[r.RunID]; !ok {
		m.results[r.RunID] = r
	}
	return nil
}

func (m *memory) Top(ctx context.Context, limit int) ([]Result, error) {
	m.mu.RLock()
	out := make([]Result, 0, len(m.results))
	for _, r := range m.results {
		if r.Outcome == OutcomeVictory {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Moves != out[j].Moves {
			return out[i].Moves < out[j].Moves
		}
		return out[i].FinishedAt.Before(out[j].FinishedAt)
	})
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

const (
	// OutcomeVictory is the outcome string Top filters on.
	OutcomeVictory = "victory"
	// DefaultLimit applies when Top is called with limit <= 0.
	DefaultLimit = 20
)
