package game

// Key is a backend-independent key symbol. The platform layer maps
// its native codes onto these before events enter the engine.
type Key int

const (
	KeyUnknown Key = iota
	KeyV
	KeyH
	KeyM
	KeyEscape
)

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Event is a tagged variant of everything the platform layer can
// deliver. Dispatch pattern-matches it onto the typed System hooks.
type Event interface{ isEvent() }

type QuitEvent struct{}

type MouseMotionEvent struct{ X, Y float64 }

type MouseLeaveEvent struct{}

type MouseButtonEvent struct {
	Button MouseButton
	Down   bool
}

type CanvasResizedEvent struct{ W, H uint32 }

type KeyEvent struct {
	Key  Key
	Down bool
}

type TextCharEvent struct{ Char rune }

func (QuitEvent) isEvent()          {}
func (MouseMotionEvent) isEvent()   {}
func (MouseLeaveEvent) isEvent()    {}
func (MouseButtonEvent) isEvent()   {}
func (CanvasResizedEvent) isEvent() {}
func (KeyEvent) isEvent()           {}
func (TextCharEvent) isEvent()      {}

// ApplyEvent updates G's input snapshot before systems see the event.
func (g *G) ApplyEvent(ev Event) {
	switch e := ev.(type) {
	case MouseMotionEvent:
		g.MouseX, g.MouseY = e.X, e.Y
	case CanvasResizedEvent:
		g.CanvasSize.W, g.CanvasSize.H = e.W, e.H
	case QuitEvent:
		g.RequestQuit()
	}
}

// Dispatch routes one event to one system's typed handler.
func Dispatch(g *G, s System, ev Event) {
	switch e := ev.(type) {
	case QuitEvent:
		s.OnQuit(g)
	case MouseMotionEvent:
		s.OnMouseMotion(g, e.X, e.Y)
	case MouseLeaveEvent:
		s.OnMouseLeave(g)
	case MouseButtonEvent:
		s.OnMouseButton(g, e.Button, e.Down)
	case CanvasResizedEvent:
		s.OnCanvasResized(g, e.W, e.H)
	case KeyEvent:
		s.OnKey(g, e.Key, e.Down)
	case TextCharEvent:
		s.OnTextChar(g, e.Char)
	}
}
