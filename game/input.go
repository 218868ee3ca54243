package game

import (
	"math"

	"github.com/mogaika/fray/geom"
	"github.com/mogaika/fray/viewport"
)

// ViewportInputHandler routes pointer and keyboard input onto the
// viewport tree: hover follows the mouse, left click focuses, V/H/M
// split and merge the focused region.
type ViewportInputHandler struct {
	Base
}

func (h *ViewportInputHandler) pickerPos(g *G, x, y float64) geom.Vec2u {
	px := uint32(math.Round(x))
	// The window reports y top-down; the tree lives bottom-up.
	py := uint32(math.Round(y))
	if py > g.CanvasSize.H {
		py = g.CanvasSize.H
	}
	return geom.Vec2u{X: px, Y: g.CanvasSize.H - py}
}

func (h *ViewportInputHandler) OnMouseMotion(g *G, x, y float64) {
	g.Cursor = CursorHand

	picker := &viewport.Picker{Pos: h.pickerPos(g, x, y)}
	g.Viewports.Visit(g.CanvasRect(), picker)
	if id, ok := picker.Found(); ok {
		g.Viewports.Hover(id)
	} else {
		g.Viewports.ClearHover()
	}
}

func (h *ViewportInputHandler) OnMouseLeave(g *G) {
	g.Viewports.ClearHover()
	g.Cursor = CursorDefault
}

func (h *ViewportInputHandler) OnMouseButton(g *G, btn MouseButton, down bool) {
	if btn == MouseButtonLeft && down {
		if hovered, ok := g.Viewports.Hovered(); ok {
			g.Viewports.Focus(hovered)
		}
	}
}

func (h *ViewportInputHandler) OnKey(g *G, key Key, down bool) {
	if !down {
		return
	}
	switch key {
	case KeyV:
		g.Viewports.SplitV()
	case KeyH:
		g.Viewports.SplitH()
	case KeyM:
		g.Viewports.Merge()
	case KeyEscape:
		g.RequestQuit()
	}
}
