// Package preview plays the animation in a terminal using half-block cells,
// two pixels per cell.
package preview

import (
	"context"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iconify-tray/iconify/internal/animation"
	"github.com/iconify-tray/iconify/internal/logging"
)

var log = logging.L("preview")

const upperHalf = '▀'

// alphaCutoff below which a pixel is drawn as terminal background.
const alphaCutoff = 64

// Draw paints img with its top-left corner at cell (x0, y0). Each cell shows
// the pixel pair (x, 2y) over (x, 2y+1). Returns the number of rows used.
func Draw(s tcell.Screen, img *image.NRGBA, x0, y0 int) int {
	b := img.Bounds()
	rows := (b.Dy() + 1) / 2
	for row := 0; row < rows; row++ {
		py := b.Min.Y + row*2
		for col := 0; col < b.Dx(); col++ {
			px := b.Min.X + col
			top := pixelColor(img, px, py)
			bottom := tcell.ColorDefault
			if py+1 < b.Max.Y {
				bottom = pixelColor(img, px, py+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			r := upperHalf
			if top == tcell.ColorDefault {
				// Foreground cannot be transparent; draw the lower pixel
				// with a space over its background instead.
				r = ' '
			}
			s.SetContent(x0+col, y0+row, r, nil, style)
		}
	}
	return rows
}

func pixelColor(img *image.NRGBA, x, y int) tcell.Color {
	c := img.NRGBAAt(x, y)
	if c.A < alphaCutoff {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Player steps an animation on a screen at the animator's interval.
type Player struct {
	Screen tcell.Screen
	// Next returns the next frame with a reference for the player, or nil.
	Next func() *animation.Frame
	// Interval is consulted after every tick so speed changes apply at once.
	Interval func() time.Duration
	// Caption is printed under the frame.
	Caption func() string
	// OnKey handles keys other than quit. May be nil.
	OnKey func(ev *tcell.EventKey)
}

// Run plays until ctx is done or the user presses q, Esc or Ctrl-C. The
// screen must already be initialised; Run does not finalise it.
func (p *Player) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := p.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					log.Debug("preview closed by user")
					return nil
				}
				if p.OnKey != nil {
					p.OnKey(ev)
				}
			case *tcell.EventResize:
				p.Screen.Sync()
			}
		case <-timer.C:
			p.tick()
			timer.Reset(p.Interval())
		}
	}
}

func (p *Player) tick() {
	f := p.Next()
	if f == nil {
		return
	}
	defer f.Release()

	img := f.Image()
	if img == nil {
		return
	}
	p.Screen.Clear()
	rows := Draw(p.Screen, img, 1, 1)
	if p.Caption != nil {
		drawText(p.Screen, 1, rows+2, p.Caption())
	}
	drawText(p.Screen, 1, rows+3, "q quit  r runner  t theme  s speed")
	p.Screen.Show()
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func drawText(s tcell.Screen, x, y int, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
