// internal/maze/levels.go
//
// Level sequence loading.
//
// Responsibilities:
//   - Read level definitions from a file (LEVELS_FILE) or fall back to the
//     embedded defaults in assets/levels.txt.
//   - Split the text into levels and validate each one with Parse.
//
// Level file format:
//   - Levels are separated by one or more blank lines.
//   - Lines starting with ';' are comments.
//   - "; name: <text>" names the level that follows.
//
// The resulting sequence is fixed at startup and never mutated.

package maze

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/i-deepakkumar/Minimaze/assets"
)

// Levels is the ordered, immutable sequence of stages.
type Levels []*Level

// Get returns level i, or nil if i is out of range.
func (ls Levels) Get(i int) *Level {
	if i < 0 || i >= len(ls) {
		return nil
	}
	return ls[i]
}

// IsLast reports whether i is the final level.
func (ls Levels) IsLast(i int) bool { return i == len(ls)-1 }

var (
	defaultOnce   sync.Once
	defaultLevels Levels
	defaultErr    error
)

// Default returns the embedded level set, parsed once.
func Default() (Levels, error) {
	defaultOnce.Do(func() {
		data, err := assets.LevelsFile()
		if err != nil {
			defaultErr = err
			return
		}
		defaultLevels, defaultErr = ParseLevels(data)
	})
	return defaultLevels, defaultErr
}

// Load reads levels from path, or returns the embedded defaults when path is empty.
func Load(path string) (Levels, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels %s: %w", path, err)
	}
	return ParseLevels(data)
}

// ParseLevels splits level-file text into validated levels.
func ParseLevels(data []byte) (Levels, error) {
	var (
		out  Levels
		rows []string
		name string
	)
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		n := name
		if n == "" {
			n = fmt.Sprintf("Level %d", len(out)+1)
		}
		lvl, err := Parse(n, rows)
		if err != nil {
			return err
		}
		out = append(out, lvl)
		rows, name = nil, ""
		return nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, ";"):
			if v, ok := strings.CutPrefix(strings.TrimSpace(line[1:]), "name:"); ok {
				name = strings.TrimSpace(v)
			}
		case strings.TrimSpace(line) == "":
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			rows = append(rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no levels defined", ErrInvalidLevel)
	}
	return out, nil
}
