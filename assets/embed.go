package assets

import (
	"embed"
)

//go:embed levels.txt
var FS embed.FS

// LevelsFile returns the built-in level definitions.
func LevelsFile() ([]byte, error) {
	return FS.ReadFile("levels.txt")
}
