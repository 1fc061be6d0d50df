// Package router maps game screens to their screen models and keeps a
// stack of overlay screens (such as history) pushed above them.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/screen"
)

// PushScreenMsg requests the router to push an overlay screen.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the top overlay.
type PopScreenMsg struct{}

// Router follows the controller's current screen. Overlays sit above it
// until popped.
type Router struct {
	screens  map[progression.Screen]screen.Screen
	current  progression.Screen
	overlays []screen.Screen
}

// New creates a Router over the registered screens. No screen is current
// until the first Sync.
func New(screens map[progression.Screen]screen.Screen) *Router {
	return &Router{screens: screens}
}

// Current returns the game screen the router last synced to.
func (r *Router) Current() progression.Screen {
	return r.current
}

// Sync makes s the current game screen, calling its Init when it changes.
// Overlays belong to the screen that pushed them and are dropped on a
// change.
func (r *Router) Sync(s progression.Screen) tea.Cmd {
	if s == r.current {
		return nil
	}
	r.current = s
	r.overlays = nil
	if scr := r.screens[s]; scr != nil {
		return scr.Init()
	}
	return nil
}

// Push adds an overlay on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.overlays = append(r.overlays, s)
	return s.Init()
}

// Pop removes the top overlay. No-op when there is none.
func (r *Router) Pop() tea.Cmd {
	if len(r.overlays) == 0 {
		return nil
	}
	r.overlays = r.overlays[:len(r.overlays)-1]
	return nil
}

// Active returns the top overlay, or the current game screen.
func (r *Router) Active() screen.Screen {
	if n := len(r.overlays); n > 0 {
		return r.overlays[n-1]
	}
	return r.screens[r.current]
}

// Depth returns the current game screen plus the number of overlays.
func (r *Router) Depth() int {
	return 1 + len(r.overlays)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	if n := len(r.overlays); n > 0 {
		r.overlays[n-1] = updated
	} else {
		r.screens[r.current] = updated
	}
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
