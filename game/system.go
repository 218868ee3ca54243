package game

import "time"

// Tick is fixed-step simulation timing.
type Tick struct {
	T          time.Duration
	DtDuration time.Duration
	Dt         float32
}

// Draw is per-render-frame timing.
type Draw struct {
	T            time.Duration
	DtDuration   time.Duration
	Dt           float32
	SmoothDt     float32
	TickProgress float64
}

// System is one engine component. Systems run single-threaded in a
// fixed, explicitly ordered list, once per frame; embed Base to get
// no-op defaults for the hooks you don't care about.
type System interface {
	Tick(g *G, t *Tick)
	Draw(g *G, d *Draw)

	OnQuit(g *G)
	OnMouseMotion(g *G, x, y float64)
	OnMouseLeave(g *G)
	OnMouseButton(g *G, btn MouseButton, down bool)
	OnCanvasResized(g *G, w, h uint32)
	OnKey(g *G, key Key, down bool)
	OnTextChar(g *G, ch rune)
}

// Base provides no-op implementations of every System hook.
type Base struct{}

func (Base) Tick(*G, *Tick) {}

func (Base) Draw(*G, *Draw) {}

func (Base) OnQuit(*G) {}

func (Base) OnMouseMotion(*G, float64, float64) {}

func (Base) OnMouseLeave(*G) {}

func (Base) OnMouseButton(*G, MouseButton, bool) {}

func (Base) OnCanvasResized(*G, uint32, uint32) {}

func (Base) OnKey(*G, Key, bool) {}

func (Base) OnTextChar(*G, rune) {}
