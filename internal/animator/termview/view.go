// Package termview renders an animator scene into a terminal with tcell.
// Scene coordinates are pixels; each terminal cell covers CellWidth x
// CellHeight of them.
package termview

import (
	"context"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/animator"
	"github.com/Zachkp/portfolio/internal/animator/prefs"
)

const (
	CellWidth  = 8
	CellHeight = 16

	defaultFrameDelay = 33 * time.Millisecond
)

// View drives a scene on a tcell screen.
type View struct {
	screen tcell.Screen
	scene  *animator.Scene
	prefs  *prefs.Store // optional

	frameDelay time.Duration

	events   chan tcell.Event
	pollDone chan struct{}
}

// New binds scene to an initialised screen. store may be nil.
func New(screen tcell.Screen, scene *animator.Scene, store *prefs.Store) *View {
	return &View{
		screen:     screen,
		scene:      scene,
		prefs:      store,
		frameDelay: defaultFrameDelay,
		events:     make(chan tcell.Event, 16),
		pollDone:   make(chan struct{}),
	}
}

// SceneSize converts a terminal size into scene pixels.
func SceneSize(cols, rows int) (float64, float64) {
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

// Run renders frames until ctx ends or the user quits. The screen is
// finalised and the scene closed before Run returns.
func (v *View) Run(ctx context.Context) error {
	v.screen.EnableMouse(tcell.MouseMotionEvents)
	v.screen.HideCursor()
	go v.pollEvents()
	defer v.close()

	ticker := time.NewTicker(v.frameDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-v.events:
			if quit := v.handleEvent(ev); quit {
				return nil
			}
		case <-ticker.C:
			v.Frame()
		}
	}
}

// Frame ticks and draws once.
func (v *View) Frame() {
	v.scene.Tick()
	v.scene.Draw(&canvas{screen: v.screen})
	v.screen.Show()
}

// pollEvents forwards screen events until the screen is finalised, at which
// point PollEvent returns nil.
func (v *View) pollEvents() {
	defer close(v.pollDone)
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		v.events <- ev
	}
}

func (v *View) close() {
	v.scene.Close()
	v.screen.Fini()
	select {
	case <-v.pollDone:
	case <-time.After(100 * time.Millisecond):
	}
}

// handleEvent applies one screen event and reports whether to quit.
func (v *View) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		v.scene.Resize(SceneSize(cols, rows))
		v.screen.Sync()
	case *tcell.EventMouse:
		col, row := ev.Position()
		v.scene.PointerMoved(float64(col*CellWidth+CellWidth/2), float64(row*CellHeight+CellHeight/2))
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	f := v.scene.Features()
	switch ev.Rune() {
	case 'q':
		return true
	case 'g':
		f.Grid = !f.Grid
	case 'l':
		f.Links = !f.Links
	case 't':
		f.Trail = !f.Trail
	case 's':
		v.scene.SpawnShootingStar()
		return false
	default:
		return false
	}
	v.scene.SetFeatures(f)
	v.savePrefs(f)
	return false
}

func (v *View) savePrefs(f animator.Features) {
	if v.prefs == nil {
		return
	}
	p := v.prefs.Get()
	p.Grid, p.Links, p.Trail = f.Grid, f.Links, f.Trail
	v.prefs.Set(p)
	// a failed save only loses the toggle across restarts
	_ = v.prefs.Save()
}

// canvas rasterises scene primitives onto terminal cells.
type canvas struct {
	screen tcell.Screen
}

func (c *canvas) Clear() {
	c.screen.Clear()
}

func (c *canvas) cell(x, y float64) (int, int, bool) {
	cols, rows := c.screen.Size()
	col, row := int(math.Floor(x/CellWidth)), int(math.Floor(y/CellHeight))
	return col, row, col >= 0 && row >= 0 && col < cols && row < rows
}

func (c *canvas) set(col, row int, r rune, clr color.Color) {
	c.screen.SetContent(col, row, r, nil, styleFor(clr))
}

func (c *canvas) FillCircle(x, y, radius float64, clr color.Color) {
	col, row, ok := c.cell(x, y)
	if !ok || brightness(clr) < 0.08 {
		return
	}
	r := '·'
	switch {
	case radius >= 6:
		r = '●'
	case radius >= 2:
		r = '•'
	}
	c.set(col, row, r, clr)
}

// StrokeLine walks the line cell by cell and only marks empty cells, so
// stars and particles stay on top of links and grid.
func (c *canvas) StrokeLine(x0, y0, x1, y1, _ float64, clr color.Color) {
	if brightness(clr) < 0.02 {
		return
	}
	dx, dy := (x1-x0)/CellWidth, (y1-y0)/CellHeight
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	r := lineRune(x1-x0, y1-y0)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row, ok := c.cell(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if !ok {
			continue
		}
		if cur, _, _, _ := c.screen.GetContent(col, row); cur != ' ' && cur != 0 {
			continue
		}
		c.set(col, row, r, clr)
	}
}

func (c *canvas) DrawGlyph(x, y, _, _ float64, glyph string, clr color.Color) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	col -= len([]rune(glyph)) / 2
	for i, r := range []rune(glyph) {
		c.set(col+i, row, r, clr)
	}
}

func lineRune(dx, dy float64) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// styleFor blends clr over black, since terminals have no alpha.
func styleFor(clr color.Color) tcell.Style {
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	a := int32(n.A)
	return tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.NewRGBColor(int32(n.R)*a/255, int32(n.G)*a/255, int32(n.B)*a/255))
}

func brightness(clr color.Color) float64 {
	_, _, _, a := clr.RGBA()
	return float64(a) / 0xffff
}
