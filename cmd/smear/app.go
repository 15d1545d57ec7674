package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/smear/internal/config"
	"github.com/dshills/smear/internal/editor"
	"github.com/dshills/smear/internal/editor/session"
	"github.com/dshills/smear/internal/render/canvas"
	"github.com/dshills/smear/internal/render/cursor"
	"github.com/dshills/smear/internal/render/shaper"
	"github.com/dshills/smear/internal/theme"
)

const frameInterval = 16 * time.Millisecond

var sampleLines = []string{
	"package main",
	"",
	"func main() {",
	"    fmt.Println(\"the cursor smears between cells\")",
	"}",
	"",
	"Move with the arrow keys or hjkl.",
	"Switch modes: n normal, i insert, r replace.",
}

// app owns the terminal, the session state, and the render pipeline.
type app struct {
	cfg      config.Config
	screen   tcell.Screen
	sess     *session.Session
	renderer *cursor.Renderer
	shaper   *shaper.Caching
	surface  *canvas.Image
	rows     uint32
	cols     uint32
	blinking bool
}

func newApp(cfg config.Config) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		screen:   screen,
		renderer: cursor.New(cursor.Options{FontName: cfg.Font.Name, FontSize: cfg.Font.Size}),
		shaper:   shaper.NewCaching(),
	}

	width, height := screen.Size()
	a.resize(width, height)
	if err := a.seed(); err != nil {
		a.shutdown()
		return nil, err
	}
	return a, nil
}

func (a *app) shutdown() {
	a.screen.Fini()
}

// resize rebuilds the grid and canvas for a terminal size.
func (a *app) resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 2 {
		height = 2
	}
	a.cols = uint32(width)
	a.rows = uint32(height - 1) // bottom row is the status line
	a.surface = canvas.NewImage(
		int(float64(a.cols)*a.cfg.Surface.CellWidth),
		int(float64(a.rows)*a.cfg.Surface.CellHeight),
	)
	if a.sess == nil {
		a.sess = session.New(a.rows, a.cols)
	} else {
		_ = a.sess.Apply(session.Batch(session.GridResize(a.rows, a.cols)))
	}
}

// seed installs the mode table and the sample text.
func (a *app) seed() error {
	a.blinking = true
	normal := a.cfg.Cursor
	events := []string{a.modeTable(), session.ModeChange("normal", 0)}
	if !normal.Enabled {
		events = append(events, session.OptionSet("cursor_enabled", false))
	}
	for row, line := range sampleLines {
		if uint32(row) >= a.rows {
			break
		}
		cells := make([]string, 0, len(line))
		for _, r := range line {
			cells = append(cells, string(r))
		}
		events = append(events, session.GridLine(uint32(row), 0, cells))
	}
	return a.sess.Apply(session.Batch(events...))
}

// modeTable builds the mode_info_set event for the demo's three modes. With
// blinking off, every timing is zero, which pins the cursor steady visible.
func (a *app) modeTable() string {
	base := a.cfg.Cursor
	if !a.blinking {
		zero := editor.Uint64(0)
		base.Blinkwait, base.Blinkon, base.Blinkoff = zero, zero, zero
	}
	modes := []session.ModeInfo{
		{
			Name:           "normal",
			CursorShape:    base.Shape,
			CellPercentage: base.CellPercentage,
			Blinkwait:      base.Blinkwait,
			Blinkon:        base.Blinkon,
			Blinkoff:       base.Blinkoff,
		},
		{
			Name:           "insert",
			CursorShape:    "vertical",
			CellPercentage: editor.Float64(0.25),
			Blinkwait:      base.Blinkwait,
			Blinkon:        base.Blinkon,
			Blinkoff:       base.Blinkoff,
		},
		{
			Name:           "replace",
			CursorShape:    "horizontal",
			CellPercentage: editor.Float64(0.2),
			Blinkwait:      base.Blinkwait,
			Blinkon:        base.Blinkon,
			Blinkoff:       base.Blinkoff,
		},
	}
	return session.ModeInfoSet(modes)
}

// loop runs input handling and the frame ticker until quit.
func (a *app) loop() error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			done, err := a.handleEvent(ev)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case <-ticker.C:
			if err := a.frame(time.Now()); err != nil {
				return err
			}
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.resize(w, h)
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false, nil
}

func (a *app) handleKey(ev *tcell.EventKey) (bool, error) {
	pos := a.sess.Cursor().Position
	row, col := int64(pos.Row), int64(pos.Col)

	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
		return true, nil
	case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
		row--
	case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
		row++
	case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
		col--
	case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
		col++
	case ev.Rune() == 'n':
		return false, a.sess.Apply(session.Batch(session.ModeChange("normal", 0)))
	case ev.Rune() == 'i':
		return false, a.sess.Apply(session.Batch(session.ModeChange("insert", 1)))
	case ev.Rune() == 'r':
		return false, a.sess.Apply(session.Batch(session.ModeChange("replace", 2)))
	case ev.Rune() == 'b':
		a.blinking = !a.blinking
		return false, a.sess.Apply(session.Batch(a.modeTable()))
	default:
		return false, nil
	}

	row = clamp(row, 0, int64(a.rows)-1)
	col = clamp(col, 0, int64(a.cols)-1)
	return false, a.sess.Apply(session.Batch(session.CursorGoto(uint32(row), uint32(col))))
}

// frame renders one animation frame and presents it.
func (a *app) frame(now time.Time) error {
	a.surface.Fill(theme.Color{}) // transparent; only the cursor marks pixels

	_, err := a.renderer.Render(cursor.Frame{
		Cursor:     a.sess.Cursor(),
		Defaults:   a.sess.Defaults(),
		CellWidth:  a.cfg.Surface.CellWidth,
		CellHeight: a.cfg.Surface.CellHeight,
		Grid:       a.sess.Grid(),
		Shaper:     a.shaper,
		Canvas:     a.surface,
		Now:        now,
	})
	if errors.Is(err, editor.ErrGridBusy) {
		return nil // contended frame, retry on the next tick
	}
	if err != nil {
		return err
	}

	a.present()
	return nil
}

// present maps the rasterized cursor back onto terminal cells: each cell's
// background blends toward the cursor color by the cursor's pixel coverage
// over that cell.
func (a *app) present() {
	defaults := a.sess.Defaults()
	base := tcell.StyleDefault.
		Foreground(toTcell(defaults.Foreground)).
		Background(toTcell(defaults.Background))

	for row := uint32(0); row < a.rows; row++ {
		for col := uint32(0); col < a.cols; col++ {
			cell, err := a.sess.Grid().CellAt(row, col)
			if err != nil {
				continue // contended cell keeps its previous content
			}
			text := cell.Text
			if text == "" {
				text = " "
			}

			style := base
			coverage, color := a.coverage(row, col)
			if coverage > 0.01 {
				bg := defaults.Background.Blend(color, coverage)
				style = style.Background(toTcell(bg))
				if coverage > 0.5 {
					style = style.Foreground(toTcell(defaults.Background))
				}
			}

			runes := []rune(text)
			a.screen.SetContent(int(col), int(row), runes[0], runes[1:], style)
		}
	}

	a.status()
	a.screen.Show()
}

// coverage returns the cursor's mean pixel coverage over a cell and the
// average drawn color.
func (a *app) coverage(row, col uint32) (float64, theme.Color) {
	img := a.surface.RGBA()
	x0 := int(float64(col) * a.cfg.Surface.CellWidth)
	y0 := int(float64(row) * a.cfg.Surface.CellHeight)
	x1 := int(float64(col+1) * a.cfg.Surface.CellWidth)
	y1 := int(float64(row+1) * a.cfg.Surface.CellHeight)

	var sumA, sumR, sumG, sumB, n uint64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px := img.RGBAAt(x, y)
			sumA += uint64(px.A)
			sumR += uint64(px.R)
			sumG += uint64(px.G)
			sumB += uint64(px.B)
			n++
		}
	}
	if n == 0 || sumA == 0 {
		return 0, theme.Color{}
	}
	// Pixels are alpha-premultiplied; un-premultiply the average.
	color := theme.RGB(
		uint8(min(sumR*255/sumA, 255)),
		uint8(min(sumG*255/sumA, 255)),
		uint8(min(sumB*255/sumA, 255)),
	)
	return float64(sumA) / float64(n*255), color
}

func (a *app) status() {
	pos := a.sess.Cursor().Position
	text := fmt.Sprintf(" smear  %s  (%d, %d)  q to quit", a.sess.Cursor().Shape, pos.Row, pos.Col)
	style := tcell.StyleDefault.Reverse(true)

	width, height := a.screen.Size()
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(text) {
			r = rune(text[x])
		}
		a.screen.SetContent(x, height-1, r, nil, style)
	}
}

func toTcell(c theme.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
