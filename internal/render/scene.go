// internal/render/scene.go
//
// Declarative scene construction for game frames.
// Responsibilities:
//   - Grid scene: title row, one rect per cell, player marker, status line.
//   - Banner scene: full-frame title/subtitle for cleared, won and expired runs.
//
// Render is pure: equal inputs produce equal scenes, and therefore equal
// image bytes once encoded.

package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/i-deepakkumar/Minimaze/internal/game"
	"github.com/i-deepakkumar/Minimaze/internal/maze"
)

const (
	CellSize     = 50
	BannerWidth  = 800
	BannerHeight = 418
)

// Cell and banner colours.
const (
	ColorWall   = "#1E293B"
	ColorFloor  = "#FFFFFF"
	ColorStart  = "#10B981"
	ColorGoal   = "#EF4444"
	ColorStroke = "#334155"
	ColorPage   = "#F1F5F9"
	ColorText   = "#1E293B"
	ColorWin    = "#28A745"
	ColorLose   = "#DC3545"
	ColorBanner = "#FFFFFF"
)

// Rect is a filled rectangle in pixel space.
type Rect struct {
	X, Y, W, H int
	Fill       string
	Stroke     string
}

// Circle is a filled circle in pixel space.
type Circle struct {
	CX, CY, R int
	Fill      string
}

// Text is a single centred line of text.
type Text struct {
	X, Y    int
	Content string
	Size    int
	Bold    bool
	Fill    string
}

// Scene describes one frame image.
type Scene struct {
	Width      int
	Height     int
	Background string
	Rects      []Rect
	Marker     *Circle
	Texts      []Text
	// Caption is a plain-text rendition for text-only image services.
	Caption []string
}

// Render builds the scene for res on levels.
func Render(res game.Result, levels maze.Levels) Scene {
	switch res.Outcome {
	case game.OutcomeVictory:
		return banner(ColorWin, "You Won!", fmt.Sprintf("Total Moves: %d", res.State.Moves))
	case game.OutcomeLevelCleared:
		return banner(ColorWin,
			fmt.Sprintf("Level %d Cleared!", res.State.Level+1),
			fmt.Sprintf("Moves: %d · Press Continue", res.State.Moves))
	case game.OutcomeTimeExpired:
		return banner(ColorLose, "Time's Up!",
			fmt.Sprintf("Reached level %d of %d", res.State.Level+1, len(levels)))
	}
	return gridScene(res, levels)
}

func banner(bg, title, subtitle string) Scene {
	return Scene{
		Width:      BannerWidth,
		Height:     BannerHeight,
		Background: bg,
		Texts: []Text{
			{X: BannerWidth / 2, Y: BannerHeight * 45 / 100, Content: title, Size: 60, Bold: true, Fill: ColorBanner},
			{X: BannerWidth / 2, Y: BannerHeight * 60 / 100, Content: subtitle, Size: 30, Fill: ColorBanner},
		},
		Caption: []string{title, subtitle},
	}
}

func gridScene(res game.Result, levels maze.Levels) Scene {
	s := res.State
	lvl := levels.Get(s.Level)
	if lvl == nil {
		return Scene{}
	}
	g := lvl.Grid
	w, h := g.Width()*CellSize, (g.Height()+2)*CellSize
	top := CellSize

	sc := Scene{Width: w, Height: h, Background: ColorPage}
	rows := g.Rows()
	caption := make([]string, 0, len(rows)+2)
	for y, row := range rows {
		line := []byte(row)
		for x := range row {
			sc.Rects = append(sc.Rects, Rect{
				X: x * CellSize, Y: top + y*CellSize, W: CellSize, H: CellSize,
				Fill: cellColor(maze.Cell(row[x])), Stroke: ColorStroke,
			})
			if line[x] == byte(maze.Floor) {
				line[x] = '.'
			}
		}
		if y == s.Pos.Y && s.Pos.X >= 0 && s.Pos.X < len(line) {
			line[s.Pos.X] = '@'
		}
		caption = append(caption, string(line))
	}

	sc.Marker = &Circle{
		CX:   s.Pos.X*CellSize + CellSize/2,
		CY:   top + s.Pos.Y*CellSize + CellSize/2,
		R:    CellSize * 3 / 10,
		Fill: game.Palette[s.Color%len(game.Palette)],
	}

	title := fmt.Sprintf("Level %d/%d · %s", s.Level+1, len(levels), lvl.Name)
	status := statusLine(res)
	sc.Texts = []Text{
		{X: w / 2, Y: top / 2, Content: title, Size: 24, Bold: true, Fill: ColorText},
		{X: w / 2, Y: h - CellSize/2, Content: status, Size: 30, Fill: ColorText},
	}
	sc.Caption = append([]string{title}, append(caption, status)...)
	return sc
}

func statusLine(res game.Result) string {
	parts := []string{fmt.Sprintf("Moves: %d", res.State.Moves)}
	if res.Timed {
		parts = append(parts, fmt.Sprintf("Time: %ds", int(math.Ceil(res.Remaining.Seconds()))))
	}
	return strings.Join(parts, "  ")
}

func cellColor(c maze.Cell) string {
	switch c {
	case maze.Wall:
		return ColorWall
	case maze.Start:
		return ColorStart
	case maze.Goal:
		return ColorGoal
	}
	return ColorFloor
}
