package frame

import (
	"bytes"
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-deepakkumar/Minimaze/internal/game"
	"github.com/i-deepakkumar/Minimaze/internal/maze"
)

var opts = Options{PostURL: "https://minimaze.example/api/maze"}

func render(t *testing.T, f Frame) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.WriteHTML(&buf))
	return html.UnescapeString(buf.String())
}

func TestComposeInProgress(t *testing.T) {
	st := game.State{Pos: maze.Position{X: 2, Y: 1}, Moves: 1, RunID: "r"}
	f := Compose(game.Result{State: st, Outcome: game.OutcomeInProgress}, "data:image/svg+xml;base64,AAA=", opts)

	require.Len(t, f.Buttons, 4)
	assert.Equal(t, "⬆️ Up", f.Buttons[0].Label)
	assert.Equal(t, "➡️ Right", f.Buttons[3].Label)

	tok, ok := f.Next.Token()
	require.True(t, ok)
	assert.Equal(t, game.Encode(st), tok)
	_, done := f.Next.Terminal()
	assert.False(t, done)

	out := render(t, f)
	assert.Contains(t, out, `<meta property="fc:frame" content="vNext" />`)
	assert.Contains(t, out, `<meta property="fc:frame:image" content="data:image/svg+xml;base64,AAA=" />`)
	assert.Contains(t, out, `<meta property="og:image" content="data:image/svg+xml;base64,AAA=" />`)
	assert.Contains(t, out, `<meta property="fc:frame:state" content="`+tok+`" />`)
	assert.Contains(t, out, `<meta property="fc:frame:button:4" content="➡️ Right" />`)
	assert.Contains(t, out, `<meta property="fc:frame:post_url" content="https://minimaze.example/api/maze" />`)
	assert.Contains(t, out, `<title>MiniMaze</title>`)
}

func TestComposeLevelCleared(t *testing.T) {
	st := game.State{Pos: maze.Position{X: 3, Y: 1}, Moves: 2}
	f := Compose(game.Result{State: st, Outcome: game.OutcomeLevelCleared}, "img", opts)

	require.Len(t, f.Buttons, 1)
	assert.Equal(t, "Continue ▶️", f.Buttons[0].Label)
	tok, ok := f.Next.Token()
	require.True(t, ok, "cleared screens keep the token pointing at the goal")
	assert.Equal(t, game.Encode(st), tok)
}

func TestComposeTerminal(t *testing.T) {
	for _, o := range []game.Outcome{game.OutcomeVictory, game.OutcomeTimeExpired} {
		t.Run(string(o), func(t *testing.T) {
			f := Compose(game.Result{Outcome: o}, "img", opts)

			_, ok := f.Next.Token()
			assert.False(t, ok)
			reason, done := f.Next.Terminal()
			assert.True(t, done)
			assert.Equal(t, o, reason)

			require.Len(t, f.Buttons, 1)
			assert.Equal(t, "Play Again", f.Buttons[0].Label)

			out := render(t, f)
			assert.NotContains(t, out, "fc:frame:state")
			assert.Contains(t, out, `<meta property="fc:frame:button:1" content="Play Again" />`)
		})
	}
}

func TestComposeTerminalLinkButton(t *testing.T) {
	o := opts
	o.LinkURL = "https://github.com/i-deepakkumar/Minimaze"
	f := Compose(game.Result{Outcome: game.OutcomeVictory}, "img", o)

	require.Len(t, f.Buttons, 2)
	assert.Equal(t, Button{Label: "Learn More", Action: "link", Target: o.LinkURL}, f.Buttons[1])

	out := render(t, f)
	assert.Contains(t, out, `<meta property="fc:frame:button:2:action" content="link" />`)
	assert.Contains(t, out, `<meta property="fc:frame:button:2:target" content="https://github.com/i-deepakkumar/Minimaze" />`)
	assert.Contains(t, out, `<title>MiniMaze - You Won!</title>`)
}

func TestWriteHTMLEscapes(t *testing.T) {
	f := Frame{Title: `<script>"x"</script>`, Image: `a"b`, PostURL: "/p", Next: Terminal(game.OutcomeVictory)}
	var buf bytes.Buffer
	require.NoError(t, f.WriteHTML(&buf))
	assert.NotContains(t, buf.String(), "<script>")
	assert.NotContains(t, buf.String(), `content="a"b"`)
}
