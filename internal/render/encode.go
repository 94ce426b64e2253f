package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// ErrEmptyScene is returned when asked to encode a scene with no area.
var ErrEmptyScene = errors.New("render: empty scene")

// SVG serialises sc as an SVG document.
func SVG(sc Scene) []byte {
	var buf bytes.Buffer
	c := svg.New(&buf)
	c.Start(sc.Width, sc.Height)
	c.Rect(0, 0, sc.Width, sc.Height, "fill:"+sc.Background)
	for _, r := range sc.Rects {
		c.Rect(r.X, r.Y, r.W, r.H, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", r.Fill, r.Stroke))
	}
	if m := sc.Marker; m != nil {
		c.Circle(m.CX, m.CY, m.R, "fill:"+m.Fill)
	}
	for _, t := range sc.Texts {
		style := fmt.Sprintf("text-anchor:middle;dominant-baseline:middle;font-family:sans-serif;font-size:%dpx;fill:%s", t.Size, t.Fill)
		if t.Bold {
			style += ";font-weight:bold"
		}
		c.Text(t.X, t.Y, t.Content, style)
	}
	c.End()
	return buf.Bytes()
}

// Encoder turns a scene into the image reference placed in the frame.
type Encoder interface {
	ImageRef(sc Scene) (string, error)
}

// DataURI embeds the SVG in a data: URI.
type DataURI struct{}

func (DataURI) ImageRef(sc Scene) (string, error) {
	if sc.Width <= 0 || sc.Height <= 0 {
		return "", ErrEmptyScene
	}
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(SVG(sc)), nil
}

// Placeholder points at a remote placeholder-image service that draws the
// scene caption as text, e.g. https://placehold.co/650x450/F1F5F9/1E293B/png?text=...
type Placeholder struct {
	Base string
}

func (p Placeholder) ImageRef(sc Scene) (string, error) {
	if sc.Width <= 0 || sc.Height <= 0 {
		return "", ErrEmptyScene
	}
	fg := ColorText
	if sc.Background == ColorWin || sc.Background == ColorLose {
		fg = ColorBanner
	}
	return fmt.Sprintf("%s/%dx%d/%s/%s/png?text=%s",
		strings.TrimRight(p.Base, "/"),
		sc.Width, sc.Height,
		strings.TrimPrefix(sc.Background, "#"),
		strings.TrimPrefix(fg, "#"),
		url.QueryEscape(strings.Join(sc.Caption, "\\n")),
	), nil
}

// NewEncoder picks an encoder by mode: "datauri" (default) or "placeholder".
func NewEncoder(mode, placeholderBase string) (Encoder, error) {
	switch strings.ToLower(mode) {
	case "", "datauri":
		return DataURI{}, nil
	case "placeholder":
		if placeholderBase == "" {
			return nil, errors.New("render: placeholder mode needs a base URL")
		}
		return Placeholder{Base: placeholderBase}, nil
	}
	return nil, fmt.Errorf("render: unknown image mode %q", mode)
}
