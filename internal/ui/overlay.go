//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"oncolattice/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// marginProvider is implemented by sims that grow their domain at runtime
// and want the border region that triggers growth visualized.
type marginProvider interface {
	ExtensionMargin() int
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim   core.Sim
	scale int

	showMargin bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance for sim, drawn at scale
// pixels per grid cell.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update allows the overlay to react to input between frames.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showMargin = !o.showMargin
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showMargin {
		return
	}
	provider, ok := o.sim.(marginProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	o.drawMarginBand(screen, provider.ExtensionMargin(), size, scale)
}

// drawMarginBand outlines the border region that triggers a domain
// extension once a live cell enters it, so the growth rule in action is
// visible rather than a surprise jump in grid size.
func (o *Overlay) drawMarginBand(screen *ebiten.Image, margin int, size core.Size, scale int) {
	if margin <= 0 || o.pixel == nil {
		return
	}
	thickness := float64(margin) * float64(scale)
	tint := color.RGBA{R: 220, G: 60, B: 60, A: 90}

	w := float64(size.W) * float64(scale)
	h := float64(size.H) * float64(scale)

	o.drawRect(screen, 0, 0, w, thickness, tint)
	o.drawRect(screen, 0, h-thickness, w, thickness, tint)
	o.drawRect(screen, 0, 0, thickness, h, tint)
	o.drawRect(screen, w-thickness, 0, thickness, h, tint)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(math.Max(w, 1), math.Max(h, 1))
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
