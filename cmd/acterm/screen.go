package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/acengine/project"
	"github.com/milk9111/acengine/render"
)

// cellSize is how many world pixels one terminal cell covers.
type cellSize struct {
	W, H float64
}

func (c cellSize) toWorld(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * c.W, (float64(row) + 0.5) * c.H
}

// span returns the cell range covered by [x, x+w), never empty.
func (c cellSize) span(x, w, unit float64) (int, int) {
	start := int(math.Floor(x / unit))
	end := int(math.Ceil((x + w) / unit))
	if end <= start {
		end = start + 1
	}
	return start, end
}

type screenRenderer struct {
	screen tcell.Screen
	cell   cellSize
	status string
}

func glyph(it render.Item) rune {
	switch it.Type {
	case project.TypePlayer:
		return '@'
	case project.TypeEnemy:
		return 'E'
	case project.TypeCoin:
		return '$'
	case project.TypePlatform, project.TypeBackdrop:
		return '='
	}
	switch it.Shape {
	case project.ShapeOval:
		return 'o'
	case project.ShapeTriangle:
		return '^'
	}
	return '#'
}

var (
	defaultFill = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	defaultSky  = color.NRGBA{A: 0xff}
)

func tcellColor(hex string, fallback color.NRGBA) tcell.Color {
	c := render.Color(hex, fallback)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (r *screenRenderer) Render(snap render.Snapshot) {
	s := r.screen
	s.Clear()
	cols, rows := s.Size()
	base := tcell.StyleDefault.Background(tcellColor(snap.Background, defaultSky))
	for y := 0; y < rows-1; y++ {
		for x := 0; x < cols; x++ {
			s.SetContent(x, y, ' ', nil, base)
		}
	}

	for _, it := range snap.Items {
		if it.Hidden {
			continue
		}
		style := base.Foreground(tcellColor(it.Fill, defaultFill))
		ch := glyph(it)
		x0, x1 := r.cell.span(it.X, it.W, r.cell.W)
		y0, y1 := r.cell.span(it.Y, it.H, r.cell.H)
		for y := max(y0, 0); y < min(y1, rows-1); y++ {
			for x := max(x0, 0); x < min(x1, cols); x++ {
				s.SetContent(x, y, ch, nil, style)
			}
		}
		if it.Label != "" && len(it.Label) > 1 {
			drawString(s, x0, y0, it.Label, style.Bold(true), cols)
		}
	}

	hud := snap.HUD.ScoreText + "  " + snap.HUD.LivesText + "  " + snap.HUD.FrameText
	if snap.Paused {
		hud += "  [paused]"
	}
	if r.status != "" {
		hud += "  " + r.status
	}
	drawString(s, 0, rows-1, hud, tcell.StyleDefault.Reverse(true), cols)
	s.Show()
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style, limit int) {
	for _, r := range str {
		if x >= limit {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
