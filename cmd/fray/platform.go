package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mogaika/fray/game"
)

// eventQueue buffers window events between PollEvents and dispatch so
// systems always see a whole frame's worth at once.
type eventQueue struct {
	events []game.Event
}

func (q *eventQueue) push(ev game.Event) { q.events = append(q.events, ev) }

func (q *eventQueue) drain() []game.Event {
	evs := q.events
	q.events = nil
	return evs
}

func translateKey(k glfw.Key) game.Key {
	switch k {
	case glfw.KeyV:
		return game.KeyV
	case glfw.KeyH:
		return game.KeyH
	case glfw.KeyM:
		return game.KeyM
	case glfw.KeyEscape:
		return game.KeyEscape
	}
	return game.KeyUnknown
}

func translateMouseButton(b glfw.MouseButton) (game.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return game.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return game.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return game.MouseButtonMiddle, true
	}
	return 0, false
}

func installCallbacks(window *glfw.Window, q *eventQueue) {
	window.SetCloseCallback(func(w *glfw.Window) {
		q.push(game.QuitEvent{})
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		q.push(game.MouseMotionEvent{X: x, Y: y})
	})
	window.SetCursorEnterCallback(func(w *glfw.Window, entered bool) {
		if !entered {
			q.push(game.MouseLeaveEvent{})
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		btn, ok := translateMouseButton(button)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			q.push(game.MouseButtonEvent{Button: btn, Down: true})
		case glfw.Release:
			q.push(game.MouseButtonEvent{Button: btn, Down: false})
		}
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width < 0 || height < 0 {
			return
		}
		q.push(game.CanvasResizedEvent{W: uint32(width), H: uint32(height)})
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			q.push(game.KeyEvent{Key: translateKey(key), Down: true})
		case glfw.Release:
			q.push(game.KeyEvent{Key: translateKey(key), Down: false})
		}
	})
	window.SetCharCallback(func(w *glfw.Window, char rune) {
		q.push(game.TextCharEvent{Char: char})
	})
}

// cursors owns the standard glfw cursor shapes the engine can request.
type cursors struct {
	hand    *glfw.Cursor
	current game.Cursor
}

func newCursors() *cursors {
	return &cursors{hand: glfw.CreateStandardCursor(glfw.HandCursor)}
}

func (c *cursors) apply(window *glfw.Window, want game.Cursor) {
	if want == c.current {
		return
	}
	c.current = want
	if want == game.CursorHand {
		window.SetCursor(c.hand)
	} else {
		window.SetCursor(nil)
	}
}
