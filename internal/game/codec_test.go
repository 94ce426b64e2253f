package game

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-deepakkumar/Minimaze/internal/maze"
)

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestCodecRoundTrip(t *testing.T) {
	states := []State{
		{},
		{Pos: maze.Position{X: 11, Y: 5}, Moves: 42, Level: 2, Color: 5, StartedAt: 1709294400000, RunID: "c0ffee"},
		{Pos: maze.Position{X: 1, Y: 1}, RunID: "x"},
	}
	defaults := State{Pos: maze.Position{X: 9, Y: 9}, Moves: 99, Level: 1, Color: 3, StartedAt: 1, RunID: "default"}
	for _, s := range states {
		got, err := Decode(Encode(s), defaults)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestDecodeBackfillsMissingFields(t *testing.T) {
	defaults := State{Pos: maze.Position{X: 1, Y: 1}, Color: 2, RunID: "fresh"}

	// Older tokens only carried x, y and moves.
	got, err := Decode(b64(`{"x":3,"y":1,"moves":2}`), defaults)
	require.NoError(t, err)
	assert.Equal(t, State{Pos: maze.Position{X: 3, Y: 1}, Moves: 2, Color: 2, RunID: "fresh"}, got)
}

func TestDecodeIgnoresBadFieldsIndividually(t *testing.T) {
	defaults := State{Pos: maze.Position{X: 1, Y: 1}, Moves: 0, Level: 0, RunID: "fresh"}

	got, err := Decode(b64(`{"x":"three","y":2,"moves":null,"level":1,"future":{"a":1}}`), defaults)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Pos.X, "ill-typed x keeps default")
	assert.Equal(t, 2, got.Pos.Y)
	assert.Equal(t, 0, got.Moves, "null keeps default")
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, "fresh", got.RunID)
}

func TestDecodeAcceptsURLSafeTokens(t *testing.T) {
	s := State{Pos: maze.Position{X: 2, Y: 3}, Moves: 1, RunID: "r?>"}
	raw := base64.StdEncoding.EncodeToString([]byte(`{"x":2,"y":3,"moves":1,"level":0,"color":0,"start":0,"run":"r?>"}`))
	urlSafe := base64.RawURLEncoding.EncodeToString([]byte(`{"x":2,"y":3,"moves":1,"level":0,"color":0,"start":0,"run":"r?>"}`))

	for _, tok := range []string{raw, urlSafe} {
		got, err := Decode(tok, State{})
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestDecodeStructurallyInvalid(t *testing.T) {
	defaults := State{Pos: maze.Position{X: 1, Y: 1}, RunID: "fresh"}
	for name, tok := range map[string]string{
		"empty":      "",
		"not base64": "!!!",
		"not json":   b64("hello"),
		"array":      b64(`[1,2,3]`),
		"null":       b64(`null`),
		"number":     b64(`17`),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(tok, defaults)
			assert.ErrorIs(t, err, ErrInvalidStateToken)
			assert.Equal(t, defaults, got)
		})
	}
}
