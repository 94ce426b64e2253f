// internal/game/types.go
//
// Core type definitions for the maze game engine.
// Defines:
//   - Action: a player input (direction, continue, restart).
//   - Outcome: the coarse result of a transition (in progress/cleared/won/expired).
//   - State: the value round-tripped with the client in the state token.
//   - Result: a state plus its evaluated outcome.

package game

import (
	"time"

	"github.com/i-deepakkumar/Minimaze/internal/maze"
)

// Action is a single player input.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionContinue
	ActionRestart
)

// Delta returns the unit step for a direction action and (0, 0) for anything else.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	}
	return 0, 0
}

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionContinue:
		return "continue"
	case ActionRestart:
		return "restart"
	}
	return "none"
}

// Outcome is the evaluation of a state after a transition.
type Outcome string

const (
	OutcomeInProgress   Outcome = "in_progress"
	OutcomeLevelCleared Outcome = "level_cleared"
	OutcomeVictory      Outcome = "victory"
	OutcomeTimeExpired  Outcome = "time_expired"
)

// Terminal reports whether the run is over and no state token should follow.
func (o Outcome) Terminal() bool {
	return o == OutcomeVictory || o == OutcomeTimeExpired
}

// Palette holds the marker colours; State.Color indexes into it.
var Palette = []string{
	"#F59E0B",
	"#8B5CF6",
	"#3B82F6",
	"#EC4899",
	"#14B8A6",
	"#F97316",
}

// State is the full game state held by the client between requests.
type State struct {
	Pos       maze.Position // current cell, never a wall
	Moves     int           // accepted moves on the current level
	Level     int           // index into the level sequence
	Color     int           // index into Palette
	StartedAt int64         // unix ms when the current level began; 0 when untimed
	RunID     string        // identifies one play-through for result records
}

// Result is a state together with its outcome.
type Result struct {
	State     State
	Outcome   Outcome
	Timed     bool          // a time limit is active
	Remaining time.Duration // time left on the current level when Timed
}
