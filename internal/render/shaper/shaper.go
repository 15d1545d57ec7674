// Package shaper turns single-cell text into drawable glyph runs.
//
// Shaping output is cached here, keyed by text, font and size; callers treat
// Shape as cheap and call it every frame.
package shaper

import (
	"errors"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Errors returned by shaping.
var (
	// ErrNoFace indicates no font face is registered for the request and no
	// default face is available.
	ErrNoFace = errors.New("no font face available")
)

// Run is a shaped glyph run ready for drawing. It carries the face it was
// shaped with so the canvas can draw it without re-resolving fonts.
type Run struct {
	// Text is the source grapheme cluster.
	Text string
	// Face is the resolved font face.
	Face font.Face
	// Advance is the horizontal advance in pixels.
	Advance float64
	// Ascent is the baseline offset from the top of the line in pixels.
	Ascent float64
	// Cells is the monospace width in cells (2 for wide glyphs).
	Cells int
}

// Shaper shapes one cell's text into a drawable run.
type Shaper interface {
	Shape(text, fontName string, size float64) (*Run, error)
}

type runKey struct {
	text string
	font string
	size float64
}

// Caching is a Shaper over x/image font faces with a run cache.
type Caching struct {
	mu    sync.Mutex
	faces map[string]font.Face
	runs  map[runKey]*Run
	def   font.Face
}

// NewCaching creates a caching shaper whose default face is the built-in
// fixed 7x13 face. Named faces may be registered on top.
func NewCaching() *Caching {
	return &Caching{
		faces: make(map[string]font.Face),
		runs:  make(map[runKey]*Run),
		def:   basicfont.Face7x13,
	}
}

// RegisterFace associates a face with a font name.
func (s *Caching) RegisterFace(name string, face font.Face) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faces[name] = face
}

// Shape returns the cached run for (text, fontName, size), shaping it on
// first use. An unknown font name falls back to the default face; the size
// participates only in the cache key for fixed-size faces.
func (s *Caching) Shape(text, fontName string, size float64) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := runKey{text: text, font: fontName, size: size}
	if run, ok := s.runs[key]; ok {
		return run, nil
	}

	face, ok := s.faces[fontName]
	if !ok {
		face = s.def
	}
	if face == nil {
		return nil, ErrNoFace
	}

	metrics := face.Metrics()
	run := &Run{
		Text:    text,
		Face:    face,
		Advance: fixedToFloat(font.MeasureString(face, text)),
		Ascent:  fixedToFloat(metrics.Ascent),
		Cells:   max(runewidth.StringWidth(text), 1),
	}
	s.runs[key] = run
	return run, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
