// internal/game/codec.go
//
// State token codec.
//
// Wire format: base64(JSON object) with keys
//   x, y, moves, level, color, start, run
//
// Decoding is lenient per field: unknown keys are ignored and each missing or
// ill-typed key falls back to the matching field of the supplied defaults.
// Only input that is not base64 of a JSON object is an error.

package game

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStateToken is returned when a token is not structurally decodable.
var ErrInvalidStateToken = errors.New("invalid state token")

type wireState struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Moves int    `json:"moves"`
	Level int    `json:"level"`
	Color int    `json:"color"`
	Start int64  `json:"start"`
	Run   string `json:"run"`
}

// Encode serialises s into a transport-safe token.
func Encode(s State) string {
	// wireState holds only ints and a string, so Marshal cannot fail.
	b, _ := json.Marshal(wireState{
		X:     s.Pos.X,
		Y:     s.Pos.Y,
		Moves: s.Moves,
		Level: s.Level,
		Color: s.Color,
		Start: s.StartedAt,
		Run:   s.RunID,
	})
	return base64.StdEncoding.EncodeToString(b)
}

// Decode parses a token produced by Encode, backfilling absent fields from defaults.
func Decode(token string, defaults State) (State, error) {
	raw, err := decodeBase64(strings.TrimSpace(token))
	if err != nil {
		return defaults, fmt.Errorf("%w: %v", ErrInvalidStateToken, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return defaults, fmt.Errorf("%w: %v", ErrInvalidStateToken, err)
	}
	if fields == nil {
		return defaults, fmt.Errorf("%w: not an object", ErrInvalidStateToken)
	}

	s := defaults
	field(fields, "x", &s.Pos.X)
	field(fields, "y", &s.Pos.Y)
	field(fields, "moves", &s.Moves)
	field(fields, "level", &s.Level)
	field(fields, "color", &s.Color)
	field(fields, "start", &s.StartedAt)
	field(fields, "run", &s.RunID)
	return s, nil
}

// field unmarshals fields[key] into dst, leaving dst alone when the key is
// missing, null, or of the wrong type.
func field[T any](fields map[string]json.RawMessage, key string, dst *T) {
	v, ok := fields[key]
	if !ok || string(v) == "null" {
		return
	}
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		return
	}
	*dst = out
}

// decodeBase64 accepts standard and URL-safe alphabets, padded or not.
func decodeBase64(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("empty token")
	}
	var err error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	} {
		var b []byte
		if b, err = enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, err
}
