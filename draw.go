package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/acengine/project"
	"github.com/milk9111/acengine/render"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	defaultFill    = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	defaultOutline = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	defaultSky     = color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	bannerBg       = color.NRGBA{A: 200}
)

// Renderer draws render snapshots with flat shapes and the built-in font.
type Renderer struct {
	face  ebtext.Face
	debug bool
}

func NewRenderer(debug bool) *Renderer {
	return &Renderer{
		face:  ebtext.NewGoXFace(basicfont.Face7x13),
		debug: debug,
	}
}

func (r *Renderer) Draw(screen *ebiten.Image, snap render.Snapshot) {
	screen.Fill(render.Color(snap.Background, defaultSky))

	for _, it := range snap.Items {
		if it.Hidden {
			continue
		}
		fill := render.Color(it.Fill, defaultFill)
		outline := render.Color(it.Outline, defaultOutline)
		x, y, w, h := float32(it.X), float32(it.Y), float32(it.W), float32(it.H)

		switch it.Shape {
		case project.ShapeOval:
			path := ellipse(x, y, w, h)
			fillPath(screen, path, fill)
			strokePath(screen, path, outline)
		case project.ShapeTriangle:
			var path vector.Path
			path.MoveTo(x+w/2, y)
			path.LineTo(x+w, y+h)
			path.LineTo(x, y+h)
			path.Close()
			fillPath(screen, &path, fill)
			strokePath(screen, &path, outline)
		default:
			vector.FillRect(screen, x, y, w, h, fill, false)
			vector.StrokeRect(screen, x, y, w, h, 1, outline, false)
		}

		if it.Label != "" {
			r.drawText(screen, it.Label, float64(it.X+it.W/2), float64(it.Y+it.H/2), colornames.White, true)
		}
		if r.debug {
			r.drawText(screen, it.Name, float64(it.X), float64(it.Y)-14, colornames.Yellow, false)
		}
	}

	hudX := snap.Width - 110
	r.drawText(screen, snap.HUD.ScoreText, hudX, 8, colornames.White, false)
	r.drawText(screen, snap.HUD.LivesText, hudX, 24, colornames.White, false)
	r.drawText(screen, snap.HUD.FrameText, hudX, 40, colornames.White, false)
}

func (r *Renderer) DrawBanner(screen *ebiten.Image, msg string) {
	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	vector.FillRect(screen, 0, h/2-30, w, 60, bannerBg, false)
	r.drawText(screen, msg, float64(w/2), float64(h/2), colornames.White, true)
}

func (r *Renderer) DrawStatus(screen *ebiten.Image, msg string) {
	b := screen.Bounds()
	r.drawText(screen, msg, 8, float64(b.Dy())-20, colornames.Yellow, false)
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color, centered bool) {
	op := &ebtext.DrawOptions{}
	if centered {
		op.PrimaryAlign = ebtext.AlignCenter
		op.SecondaryAlign = ebtext.AlignCenter
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, r.face, op)
}

func ellipse(x, y, w, h float32) *vector.Path {
	const segments = 32
	cx, cy := x+w/2, y+h/2
	rx, ry := w/2, h/2
	var path vector.Path
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		px := cx + rx*float32(math.Cos(a))
		py := cy + ry*float32(math.Sin(a))
		if i == 0 {
			path.MoveTo(px, py)
			continue
		}
		path.LineTo(px, py)
	}
	path.Close()
	return &path
}

func fillPath(screen *ebiten.Image, path *vector.Path, clr color.Color) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(screen, path, nil, op)
}

func strokePath(screen *ebiten.Image, path *vector.Path, clr color.Color) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.StrokePath(screen, path, &vector.StrokeOptions{Width: 1}, op)
}
