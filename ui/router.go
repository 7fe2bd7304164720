package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// Route names a page the router can mount.
type Route string

const (
	RouteLogin  Route = "/login"
	RouteSignup Route = "/signup"
)

// PageBuilder builds a fresh page each time its route is mounted, so state
// typed into a page is dropped when the user navigates away.
type PageBuilder func() fyne.CanvasObject

// Router swaps the content of a single window between pages.
type Router struct {
	win     fyne.Window
	pages   map[Route]PageBuilder
	current Route
}

func NewRouter(win fyne.Window) *Router {
	return &Router{
		win:   win,
		pages: make(map[Route]PageBuilder),
	}
}

// Handle registers build for route, replacing any previous builder.
func (r *Router) Handle(route Route, build PageBuilder) {
	r.pages[route] = build
}

// Navigate unmounts the current page and mounts route. Must be called on
// the UI goroutine.
func (r *Router) Navigate(route Route) error {
	build, ok := r.pages[route]
	if !ok {
		return fmt.Errorf("no page registered for route %q", route)
	}
	r.current = route
	r.win.SetContent(build())
	return nil
}

// Mount shows content that has no route of its own, such as the welcome view.
func (r *Router) Mount(content fyne.CanvasObject) {
	r.current = ""
	r.win.SetContent(content)
}

// Current returns the mounted route, or "" for unrouted content.
func (r *Router) Current() Route {
	return r.current
}
