// internal/frame/frame.go
//
// Response composition for the frame protocol.
// Responsibilities:
//   - Choose the buttons for a transition result.
//   - Decide whether a next-state token follows (Continuing) or not (Terminal).
//   - Write the HTML document carrying the fc:frame meta tags.
//
// Notes:
//   - Terminal results never carry a token; the next request starts fresh.
//   - Button indices are 1-based in the protocol.

package frame

import (
	"html/template"
	"io"

	"github.com/i-deepakkumar/Minimaze/internal/game"
)

// Version is the fc:frame protocol marker.
const Version = "vNext"

// Button is one interactive control.
type Button struct {
	Label  string
	Action string // "" (post) or "link"
	Target string // URL for link buttons
}

// Next says what follows the frame: another round with a token, or the end of the run.
type Next struct {
	token  string
	reason game.Outcome
	done   bool
}

// Continuing carries the token for the next request.
func Continuing(token string) Next { return Next{token: token} }

// Terminal ends the run for reason; no token is emitted.
func Terminal(reason game.Outcome) Next { return Next{reason: reason, done: true} }

// Token returns the next-state token and whether there is one.
func (n Next) Token() (string, bool) { return n.token, !n.done }

// Terminal reports whether the run ended, and why.
func (n Next) Terminal() (game.Outcome, bool) { return n.reason, n.done }

// Options are the deployment-specific parts of every frame.
type Options struct {
	PostURL   string
	Title     string
	LinkURL   string // optional second button on terminal screens
	LinkLabel string
}

// Frame is a composed response.
type Frame struct {
	Title   string
	Image   string
	Buttons []Button
	Next    Next
	PostURL string
}

var directionButtons = []Button{
	{Label: "⬆️ Up"},
	{Label: "⬇️ Down"},
	{Label: "⬅️ Left"},
	{Label: "➡️ Right"},
}

// Compose assembles the frame for res around an already encoded image.
func Compose(res game.Result, image string, opts Options) Frame {
	f := Frame{
		Title:   opts.Title,
		Image:   image,
		PostURL: opts.PostURL,
	}
	if f.Title == "" {
		f.Title = "MiniMaze"
	}

	switch res.Outcome {
	case game.OutcomeLevelCleared:
		f.Buttons = []Button{{Label: "Continue ▶️"}}
		f.Next = Continuing(game.Encode(res.State))
	case game.OutcomeVictory, game.OutcomeTimeExpired:
		if res.Outcome == game.OutcomeVictory {
			f.Title += " - You Won!"
		} else {
			f.Title += " - Time's Up!"
		}
		f.Buttons = []Button{{Label: "Play Again"}}
		if opts.LinkURL != "" {
			label := opts.LinkLabel
			if label == "" {
				label = "Learn More"
			}
			f.Buttons = append(f.Buttons, Button{Label: label, Action: "link", Target: opts.LinkURL})
		}
		f.Next = Terminal(res.Outcome)
	default:
		f.Buttons = append([]Button(nil), directionButtons...)
		f.Next = Continuing(game.Encode(res.State))
	}
	return f
}

var page = template.Must(template.New("frame").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html><html><head>
<title>{{.Title}}</title>
<meta property="fc:frame" content="{{.Version}}" />
<meta property="fc:frame:image" content="{{.Image}}" />
<meta property="og:image" content="{{.Image}}" />
{{- if .HasState}}
<meta property="fc:frame:state" content="{{.State}}" />
{{- end}}
{{- range $i, $b := .Buttons}}
<meta property="fc:frame:button:{{inc $i}}" content="{{$b.Label}}" />
{{- if $b.Action}}
<meta property="fc:frame:button:{{inc $i}}:action" content="{{$b.Action}}" />
<meta property="fc:frame:button:{{inc $i}}:target" content="{{$b.Target}}" />
{{- end}}
{{- end}}
<meta property="fc:frame:post_url" content="{{.PostURL}}" />
</head></html>
`))

type pageData struct {
	Frame
	Version  string
	State    string
	HasState bool
}

// WriteHTML renders f as the frame HTML document.
func (f Frame) WriteHTML(w io.Writer) error {
	tok, ok := f.Next.Token()
	return page.Execute(w, pageData{
		Frame:    f,
		Version:  Version,
		State:    tok,
		HasState: ok,
	})
}
