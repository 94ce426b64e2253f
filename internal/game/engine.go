// internal/game/engine.go
//
// State transition engine for the maze game.
// Responsibilities:
//   - Build fresh states and repair decoded ones.
//   - Apply an action to a state (move, continue, restart).
//   - Evaluate outcomes: time expired > goal reached > in progress.
//   - Map frame button indices to actions.
//
// Notes:
//   - The engine holds only immutable configuration; every method is a pure
//     function of its arguments apart from the run ID source used by Fresh.
//   - Level progression is a two-step confirm by default: reaching a non-final
//     goal reports LevelCleared and the player stays on the goal until
//     ActionContinue. WithAutoAdvance skips the confirmation.

package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/i-deepakkumar/Minimaze/internal/maze"
)

// ErrNoLevels is returned by NewEngine for an empty level sequence.
var ErrNoLevels = errors.New("game: no levels")

// Engine applies actions to states for a fixed level sequence.
type Engine struct {
	levels      maze.Levels
	duration    time.Duration
	autoAdvance bool
	newID       func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithDuration enables the time limit per level. Zero disables it.
func WithDuration(d time.Duration) Option {
	return func(e *Engine) { e.duration = d }
}

// WithAutoAdvance moves to the next level as soon as a goal is reached.
func WithAutoAdvance(on bool) Option {
	return func(e *Engine) { e.autoAdvance = on }
}

// WithIDSource overrides run ID generation (tests).
func WithIDSource(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine constructs an engine over levels.
func NewEngine(levels maze.Levels, opts ...Option) (*Engine, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	e := &Engine{levels: levels, newID: uuid.NewString}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Levels returns the level sequence.
func (e *Engine) Levels() maze.Levels { return e.levels }

// Timed reports whether a time limit is active.
func (e *Engine) Timed() bool { return e.duration > 0 }

// Duration is the per-level time limit (zero when untimed).
func (e *Engine) Duration() time.Duration { return e.duration }

// Fresh returns the initial state: start of level 0, nothing counted yet.
func (e *Engine) Fresh(now time.Time) State {
	s := State{
		Pos:   e.levels[0].Grid.Start(),
		RunID: e.newID(),
	}
	if e.Timed() {
		s.StartedAt = now.UnixMilli()
	}
	return s
}

// Sanitize repairs each field of a decoded state independently so that a
// partly bad token keeps whatever is still usable.
func (e *Engine) Sanitize(s State, now time.Time) State {
	if e.levels.Get(s.Level) == nil {
		s.Level = 0
	}
	if g := e.levels[s.Level].Grid; !maze.IsLegal(g, s.Pos) {
		s.Pos = g.Start()
	}
	if s.Moves < 0 {
		s.Moves = 0
	}
	if s.Color < 0 {
		s.Color = 0
	}
	s.Color %= len(Palette)
	if e.Timed() && (s.StartedAt <= 0 || s.StartedAt > now.UnixMilli()) {
		s.StartedAt = now.UnixMilli()
	}
	if s.RunID == "" {
		s.RunID = e.newID()
	}
	return s
}

// Resume decodes a client token and sanitizes it. Missing fields come back
// as zero values and are filled in by Sanitize. On any decode failure it
// returns a fresh state together with the error so callers can log it.
func (e *Engine) Resume(token string, now time.Time) (State, error) {
	s, err := Decode(token, State{})
	if err != nil {
		return e.Fresh(now), err
	}
	return e.Sanitize(s, now), nil
}

// Evaluate computes the outcome of s without changing it.
func (e *Engine) Evaluate(s State, now time.Time) Result {
	res := Result{State: s, Outcome: OutcomeInProgress}
	if e.Timed() {
		res.Timed = true
		elapsed := now.Sub(time.UnixMilli(s.StartedAt))
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed >= e.duration {
			res.Outcome = OutcomeTimeExpired
			return res
		}
		res.Remaining = e.duration - elapsed
	}
	res.Outcome = e.Screen(s)
	return res
}

// Screen is the screen a token for s was issued with. Only the position
// counts: tokens are only ever issued while time remains.
func (e *Engine) Screen(s State) Outcome {
	lvl := e.levels.Get(s.Level)
	switch {
	case lvl == nil || !lvl.Grid.IsGoal(s.Pos):
		return OutcomeInProgress
	case e.levels.IsLast(s.Level):
		return OutcomeVictory
	}
	return OutcomeLevelCleared
}

// Transition applies a to prior and evaluates the resulting state.
//
// Rules:
//   - ActionRestart always yields a fresh state.
//   - ActionContinue advances only from a LevelCleared state; otherwise it is a no-op.
//   - Direction actions move one cell when the target is legal: Moves+1 and
//     Color+1 (mod palette). Illegal moves leave the state untouched.
//   - ActionNone evaluates prior as is.
func (e *Engine) Transition(prior State, a Action, now time.Time) Result {
	switch a {
	case ActionRestart:
		return e.Evaluate(e.Fresh(now), now)
	case ActionContinue:
		res := e.Evaluate(prior, now)
		if res.Outcome != OutcomeLevelCleared {
			return res
		}
		return e.Evaluate(e.advance(prior, now), now)
	}

	next := prior
	if dx, dy := a.Delta(); dx != 0 || dy != 0 {
		if lvl := e.levels.Get(prior.Level); lvl != nil {
			if cand := prior.Pos.Shift(dx, dy); maze.IsLegal(lvl.Grid, cand) {
				next.Pos = cand
				next.Moves++
				next.Color = (next.Color + 1) % len(Palette)
			}
		}
	}

	res := e.Evaluate(next, now)
	if e.autoAdvance && res.Outcome == OutcomeLevelCleared {
		return e.Evaluate(e.advance(next, now), now)
	}
	return res
}

// advance moves s to the start of the following level, keeping its colour.
func (e *Engine) advance(s State, now time.Time) State {
	s.Level++
	s.Pos = e.levels[s.Level].Grid.Start()
	s.Moves = 0
	if e.Timed() {
		s.StartedAt = now.UnixMilli()
	}
	return s
}

// ActionFor maps a frame button index to an action given the screen the
// player was looking at. On the grid 1..4 are Up/Down/Left/Right; on a
// LevelCleared screen button 1 confirms; on terminal screens button 1
// starts a new run.
func ActionFor(screen Outcome, button int) Action {
	switch screen {
	case OutcomeLevelCleared:
		if button == 1 {
			return ActionContinue
		}
		return ActionNone
	case OutcomeVictory, OutcomeTimeExpired:
		if button == 1 {
			return ActionRestart
		}
		return ActionNone
	}
	switch button {
	case 1:
		return ActionUp
	case 2:
		return ActionDown
	case 3:
		return ActionLeft
	case 4:
		return ActionRight
	}
	return ActionNone
}
