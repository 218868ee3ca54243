// Package game ties the engine together: the shared single-threaded
// state G, the System interface, and the event dispatch. Everything
// here runs on the main thread; worker results only arrive through
// the asset streamer's poll handshake.
package game

import (
	"time"

	"github.com/mogaika/fray/asset"
	"github.com/mogaika/fray/frametime"
	"github.com/mogaika/fray/geom"
	"github.com/mogaika/fray/mt"
	"github.com/mogaika/fray/render"
	"github.com/mogaika/fray/scene"
	"github.com/mogaika/fray/viewport"
)

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorHand
)

// G is the shared game state passed to every system.
type G struct {
	T time.Duration

	Scene     *scene.Scene
	Viewports *viewport.DB
	Registry  *render.Registry
	Assets    *asset.Streamer
	Pool      *mt.Pool
	FrameTime *frametime.Manager

	CanvasSize geom.Extent2u
	MouseX     float64
	MouseY     float64
	Cursor     Cursor

	// Refreshed by the asset pump system every frame.
	PendingAssets []asset.PendingStatus

	LastFps frametime.FpsStats
	HasFps  bool

	quitRequested bool
}

func (g *G) RequestQuit() { g.quitRequested = true }

func (g *G) QuitRequested() bool { return g.quitRequested }

func (g *G) PushFps(stats frametime.FpsStats) {
	g.LastFps = stats
	g.HasFps = true
}

// CanvasRect is the root rectangle the viewport tree is mapped onto.
func (g *G) CanvasRect() geom.Rect {
	return geom.NewRect(0, 0, g.CanvasSize.W, g.CanvasSize.H)
}
