// Package display adapts the virtual machine's I/O port to a windowed
// character-cell display using ebiten.
package display

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/smoynes/coder/internal/vm"
)

type cell struct {
	text string
	fg   vm.Color
}

// Display realizes vm.Port as an ebiten.Game: a resizable window showing
// a grid of character cells. It is driven entirely from ebiten's own
// Update/Draw loop, so every vm.Port method it implements is only ever
// called from that single goroutine -- the same goroutine that runs the
// VM, once ProcessMessages starts the game.
type Display struct {
	geometry vm.Geometry
	bg       vm.Color
	cells    map[point]cell

	onTick func()
	onKey  func(code int)
	quit   bool
}

type point struct{ x, y int }

var _ vm.Port = (*Display)(nil)
var _ ebiten.Game = (*Display)(nil)

// New configures the ebiten window to geometry's pixel dimensions and
// returns a Display ready to be driven by ProcessMessages.
func New(geometry vm.Geometry) *Display {
	ebiten.SetWindowSize(geometry.Width, geometry.Height)
	ebiten.SetWindowTitle("Coder")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return &Display{
		geometry: geometry,
		bg:       vm.ColorWhite,
		cells:    make(map[point]cell),
	}
}

// ReadKey reports the first key ebiten saw go down this frame, or
// vm.NoKey. Safe to call only from the goroutine driving ebiten, which
// is always true during a VM Step initiated by onTick.
func (d *Display) ReadKey() int {
	keys := inpututil.AppendJustPressedKeys(nil)
	if len(keys) == 0 {
		return vm.NoKey
	}

	return keyCode(keys[0])
}

// OutputText records one character cell to be drawn on the next Draw.
// SCREEN writes every cell of a frame before the VM calls Refresh, so
// cells accumulate here across a whole interrupt dispatch.
func (d *Display) OutputText(text string, px, py int, fg vm.Color) error {
	d.cells[point{px, py}] = cell{text: text, fg: fg}
	return nil
}

// Color sets the background fill used on the next Draw.
func (d *Display) Color(bg vm.Color) error {
	d.bg = bg
	return nil
}

// Refresh is a no-op: ebiten's Draw already renders whatever is in
// d.cells once per frame, after Update (and so after the VM step that
// produced them) completes.
func (d *Display) Refresh() error { return nil }

// Timeout sleeps ebiten's driving goroutine synchronously, matching the
// VM's documented TIMEOUT semantics; a long delay will stall rendering
// for its duration.
func (d *Display) Timeout(ms int) {
	ebiten.ScheduleFrame()
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// ProcessMessages stores the event-loop callbacks and blocks running the
// ebiten game until the window is closed.
func (d *Display) ProcessMessages(onTick func(), onKey func(code int)) {
	d.onTick = onTick
	d.onKey = onKey

	if err := ebiten.RunGame(d); err != nil {
		fmt.Println("display:", err)
	}
}

// Close requests that the next Update end the game loop, letting
// ProcessMessages return. Safe to call from any goroutine.
func (d *Display) Close() error {
	d.quit = true
	return nil
}

// Update implements ebiten.Game. It runs onTick, advancing the VM, and
// forwards any newly pressed key to onKey.
func (d *Display) Update() error {
	if d.quit {
		return ebiten.Termination
	}

	if d.onTick != nil {
		d.onTick()
	}

	if d.onKey != nil {
		for _, k := range inpututil.AppendJustPressedKeys(nil) {
			if code := keyCode(k); code != vm.NoKey {
				d.onKey(code)
			}
		}
	}

	return nil
}

// Draw implements ebiten.Game.
func (d *Display) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: d.bg.R, G: d.bg.G, B: d.bg.B, A: 0xff})

	face := basicfont.Face7x13

	for pt, c := range d.cells {
		col := color.RGBA{R: c.fg.R, G: c.fg.G, B: c.fg.B, A: 0xff}
		text.Draw(screen, c.text, face, pt.x, pt.y+face.Height, col)
	}
}

// Layout implements ebiten.Game, pinning the logical screen size to the
// configured geometry regardless of window resizing.
func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.geometry.Width, d.geometry.Height
}

func keyCode(k ebiten.Key) int {
	switch {
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return int('A') + int(k-ebiten.KeyA)
	case k >= ebiten.Key0 && k <= ebiten.Key9:
		return int('0') + int(k-ebiten.Key0)
	case k == ebiten.KeySpace:
		return vm.KeySpace
	case k == ebiten.KeyEnter:
		return vm.KeyEnter
	case k == ebiten.KeyTab:
		return vm.KeyTab
	case k == ebiten.KeyBackspace:
		return vm.KeyBackspace
	case k == ebiten.KeyDelete:
		return vm.KeyDelete
	default:
		return vm.NoKey
	}
}
